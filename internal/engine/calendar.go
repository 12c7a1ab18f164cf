package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-biorhythm/internal/config"
)

// CalendarBuilder renders upcoming critical days as an iCalendar document.
type CalendarBuilder struct {
	Clock Clock

	// FormatSummary lets the UI inject localized event titles.
	// name may be empty when the reference date is not a saved profile.
	FormatSummary func(name, labels string) string
}

// Build emits one all-day VEVENT per critical day in [today, today+days).
// It returns the encoded calendar and the number of events.
func (b *CalendarBuilder) Build(name string, reference time.Time, days int) ([]byte, int, error) {
	now := b.Clock.Now()
	today := CivilDate(now)
	events := ScanCriticalDays(reference, today, 0, days)

	if len(events) == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	uidBase := calendarUIDBase(name, reference)
	for _, e := range events {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID,
			fmt.Sprintf(config.FormatUID, uidBase, e.Date.Format(config.DateFormatFullBasic), config.ICalDomain))
		event.Props.SetText(config.PropSummary, b.summary(name, e.LabelText()))
		event.Props.SetText(config.PropCategories, config.ICalCategory)

		start := ical.NewProp(config.PropDTStart)
		start.SetDate(e.Date)
		event.Props.Set(start)
		event.Props.Set(dtStamp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug("Critical-day calendar built",
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDate, FormatReferenceDate(reference),
		config.LogKeyHorizon, days,
		config.LogKeyCount, len(events))
	return buf.Bytes(), len(events), nil
}

func (b *CalendarBuilder) summary(name, labels string) string {
	if b.FormatSummary != nil {
		if s := b.FormatSummary(name, labels); s != "" {
			return s
		}
	}
	if name == "" {
		return fmt.Sprintf(config.FallbackSummary, labels)
	}
	return fmt.Sprintf(config.FallbackSummaryName, name, labels)
}

// calendarUIDBase is stable for a given profile so calendar clients update
// events in place across refreshes.
func calendarUIDBase(name string, reference time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, FormatReferenceDate(reference), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

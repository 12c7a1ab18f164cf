package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
)

// MockClock allows freezing time for deterministic tests.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func uidLines(ics string) []string {
	var uids []string
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, config.PropUID+":") {
			uids = append(uids, line)
		}
	}
	return uids
}

func TestCalendarBuilder_Build(t *testing.T) {
	ref := date(2000, 1, 1)
	clock := MockClock{CurrentTime: time.Date(2000, 2, 10, 9, 30, 0, 0, time.Local)}
	b := &engine.CalendarBuilder{Clock: clock}

	data, count, err := b.Build("Alice", ref, 30)
	require.NoError(t, err)

	want := engine.ScanCriticalDays(ref, date(2000, 2, 10), 0, 30)
	require.NotEmpty(t, want)
	assert.Equal(t, len(want), count)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, config.ICalProdid)
	assert.Equal(t, count, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "Alice: critical day")
	assert.Contains(t, ics, "20000220", "intellectual zero ten days ahead")
	assert.Len(t, uidLines(ics), count)
}

func TestCalendarBuilder_EmptyHorizon(t *testing.T) {
	b := &engine.CalendarBuilder{Clock: MockClock{CurrentTime: time.Now()}}

	data, count, err := b.Build("", date(1990, 5, 17), 0)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, config.StubVCalendar, string(data))
}

// TestCalendarBuilder_StableUIDs: the same profile yields the same UIDs at a
// different time of day, so subscribers update events in place.
func TestCalendarBuilder_StableUIDs(t *testing.T) {
	ref := date(1985, 12, 1)
	morning := &engine.CalendarBuilder{Clock: MockClock{CurrentTime: time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)}}
	evening := &engine.CalendarBuilder{Clock: MockClock{CurrentTime: time.Date(2024, 3, 1, 20, 0, 0, 0, time.Local)}}

	a, _, err := morning.Build("Bob", ref, 60)
	require.NoError(t, err)
	b, _, err := evening.Build("Bob", ref, 60)
	require.NoError(t, err)

	assert.NotEmpty(t, uidLines(string(a)))
	assert.Equal(t, uidLines(string(a)), uidLines(string(b)))

	other, _, err := morning.Build("Carol", ref, 60)
	require.NoError(t, err)
	assert.NotEqual(t, uidLines(string(a)), uidLines(string(other)), "UIDs depend on the profile name")
}

func TestCalendarBuilder_CustomSummary(t *testing.T) {
	b := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: time.Date(2000, 2, 10, 12, 0, 0, 0, time.Local)},
		FormatSummary: func(name, labels string) string {
			return "Jour critique " + labels
		},
	}

	data, _, err := b.Build("", date(2000, 1, 1), 30)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jour critique")
	assert.NotContains(t, string(data), "Critical day")
}

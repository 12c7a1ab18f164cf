package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
	"github.com/tartampluch/go-biorhythm/internal/render"
	"github.com/tartampluch/go-biorhythm/internal/server"
)

// BiorhythmApp wires the domain state (reference date, navigator, saved
// profiles) to the Fyne presentation layer.
type BiorhythmApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store   *engine.ProfileStore
	Fetcher engine.ContactFetcher
	Clock   engine.Clock // decides "today"; mocked in tests

	// Feed is nil while the localhost calendar feed is disabled.
	Feed     *server.FeedServer
	stopFeed context.CancelFunc

	SupportedLanguages []string

	// Domain state
	nav        *engine.Navigator
	dateText   string
	reference  time.Time
	refOK      bool // false while dateText does not parse
	activeName string

	// Rolling driver; driveRoll is replaced in tests to feed ticks by hand.
	stopRoll  context.CancelFunc
	driveRoll func(ctx context.Context)

	// Presentation
	cache    render.Cache
	renderer *render.ChartRenderer
	view     *mainView

	settingsWindow fyne.Window
	importWindow   fyne.Window
	profilesWindow fyne.Window
}

// NewBiorhythmApp constructs the application and wires dependencies.
func NewBiorhythmApp(a fyne.App, ctx context.Context, store *engine.ProfileStore, fetcher engine.ContactFetcher) *BiorhythmApp {
	if icon, err := render.Icon(config.IconSize); err == nil {
		a.SetIcon(fyne.NewStaticResource(config.IconFile, icon))
	} else {
		slog.Warn(config.ErrIconRender, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
	}

	app := &BiorhythmApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              store,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		nav:                engine.NewNavigator(),
		renderer:           render.NewChartRenderer(),
	}
	app.driveRoll = app.rollDriver
	return app
}

// Run launches the optional feed, builds the main window and blocks in the
// Fyne event loop.
func (app *BiorhythmApp) Run() {
	app.SetupI18n()
	app.Store.Load()
	app.restartFeed()

	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildMainView())
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.Window.SetMaster()

	app.restoreLastSession()
	app.Window.Show()
	app.App.Run()
}

// restoreLastSession fills the profile bar with the last used name and date,
// or today's date on first launch.
func (app *BiorhythmApp) restoreLastSession() {
	text := app.Preferences.StringWithFallback(config.PrefLastDate,
		engine.FormatReferenceDate(engine.Today(app.Clock)))
	app.view.nameEntry.SetText(app.Preferences.String(config.PrefLastName))
	app.view.dateEntry.SetText(text)
	app.setReferenceText(text)
}

// -----------------------------------------------------------------------------
// Domain state mutations
// -----------------------------------------------------------------------------

// Offset returns the current day offset.
func (app *BiorhythmApp) Offset() int {
	return app.nav.Offset()
}

// Reference returns the parsed reference date and whether it is valid.
func (app *BiorhythmApp) Reference() (time.Time, bool) {
	return app.reference, app.refOK
}

// setReferenceText parses the date field. Unparseable text hides the chart
// and the sidebar; it is not an error.
func (app *BiorhythmApp) setReferenceText(text string) {
	if text == app.dateText && app.dateText != "" {
		return
	}
	app.dateText = text

	ref, err := engine.ParseReferenceDate(text)
	if err != nil {
		slog.Debug(config.MsgDateInvalid, config.LogKeyComponent, config.CompUI, config.LogKeyValue, text)
		app.reference, app.refOK = time.Time{}, false
	} else {
		app.reference, app.refOK = ref, true
		app.Preferences.SetString(config.PrefLastDate, text)
	}

	app.invalidate()
	app.publishFeed()
}

// setActiveName records whose date is shown; it only labels exports and the feed.
func (app *BiorhythmApp) setActiveName(name string) {
	if name == app.activeName {
		return
	}
	app.activeName = name
	app.Preferences.SetString(config.PrefLastName, name)
	app.publishFeed()
}

// setOffset jumps to an absolute offset (slider, sidebar, jump entry).
func (app *BiorhythmApp) setOffset(v int) {
	if app.nav.SetOffset(v) {
		app.invalidate()
	}
}

// shiftOffset applies a relative discrete step (week buttons).
func (app *BiorhythmApp) shiftOffset(delta int) {
	if app.nav.Shift(delta) {
		app.invalidate()
	}
}

func (app *BiorhythmApp) resetOffset() {
	if app.nav.Reset() {
		app.invalidate()
	}
}

func (app *BiorhythmApp) wheel(delta float64) {
	if app.nav.Wheel(delta) {
		app.invalidate()
	}
}

// invalidate drops the cached chart and refreshes every view of the state.
// It must run on the UI goroutine.
func (app *BiorhythmApp) invalidate() {
	app.cache.Invalidate()
	if app.view != nil {
		app.view.refresh()
	}
}

// currentFrame snapshots what the chart depends on.
func (app *BiorhythmApp) currentFrame() render.Frame {
	return render.Frame{
		Reference:    app.reference,
		Today:        engine.Today(app.Clock),
		Offset:       app.nav.Offset(),
		HasReference: app.refOK,
	}
}

// chartImage is the raster generator: every paint goes through the cache.
func (app *BiorhythmApp) chartImage(w, h int, scale float64) image.Image {
	frame := app.currentFrame()
	return app.cache.GetOrRender(image.Pt(w, h), func(w, h int) image.Image {
		app.renderer.Scale = scale
		return app.renderer.Render(frame, w, h)
	})
}

// criticalDays lists the sidebar entries for the current state.
func (app *BiorhythmApp) criticalDays() []engine.CriticalEvent {
	ref, ok := app.Reference()
	if !ok {
		return nil
	}
	return engine.CriticalWindow(ref, engine.Today(app.Clock), app.nav.Offset())
}

// -----------------------------------------------------------------------------
// Rolling (press-and-hold stepping)
// -----------------------------------------------------------------------------

// startRolling enters Rolling and starts the frame driver. The driver runs
// only while rolling.
func (app *BiorhythmApp) startRolling(dir engine.Direction) {
	app.stopRollDriver()
	app.nav.StartRolling(dir, time.Now())
	if !app.nav.IsRolling() {
		return
	}
	ctx, cancel := context.WithCancel(app.Ctx)
	app.stopRoll = cancel
	go app.driveRoll(ctx)
}

// stopRolling returns to Idle; a press released before the first step still
// moves one day.
func (app *BiorhythmApp) stopRolling() {
	app.stopRollDriver()
	if app.nav.StopRolling() {
		app.invalidate()
	}
}

func (app *BiorhythmApp) stopRollDriver() {
	if app.stopRoll != nil {
		app.stopRoll()
		app.stopRoll = nil
	}
}

// rollTick handles one display frame while rolling.
func (app *BiorhythmApp) rollTick(now time.Time) {
	if app.nav.Tick(now) {
		app.invalidate()
	}
}

// rollDriver emits frame ticks until ctx is cancelled and hands each one to
// the UI goroutine.
func (app *BiorhythmApp) rollDriver(ctx context.Context) {
	ticker := time.NewTicker(config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fyne.Do(func() {
				if ctx.Err() == nil {
					app.rollTick(now)
				}
			})
		}
	}
}

// -----------------------------------------------------------------------------
// Profiles
// -----------------------------------------------------------------------------

// saveProfile stores the name/date pair from the profile bar. An invalid date
// or a duplicate pair leaves the list untouched.
func (app *BiorhythmApp) saveProfile(name, dateText string) bool {
	date, err := engine.ParseReferenceDate(dateText)
	if err != nil {
		return false
	}
	p := engine.Profile{Name: name, Date: date}
	if !app.Store.Add(p) {
		return false
	}
	app.setActiveName(name)
	if app.view != nil {
		app.view.refreshProfiles()
	}
	return true
}

// selectProfile loads a saved profile into the profile bar.
func (app *BiorhythmApp) selectProfile(p engine.Profile) {
	text := engine.FormatReferenceDate(p.Date)
	if app.view != nil {
		app.view.nameEntry.SetText(p.Name)
		app.view.dateEntry.SetText(text)
	}
	app.setActiveName(p.Name)
	app.setReferenceText(text)
}

// -----------------------------------------------------------------------------
// Critical-day calendar (export and feed)
// -----------------------------------------------------------------------------

func (app *BiorhythmApp) feedHorizon() int {
	days := app.Preferences.IntWithFallback(config.PrefFeedHorizon, config.DefaultFeedHorizon)
	if days < config.MinFeedHorizon || days > config.MaxFeedHorizon {
		return config.DefaultFeedHorizon
	}
	return days
}

// buildCalendar renders the upcoming critical days of the active reference date.
func (app *BiorhythmApp) buildCalendar() ([]byte, int, error) {
	ref, ok := app.Reference()
	if !ok {
		return nil, 0, errors.New(config.ErrNoReferenceDate)
	}
	b := &engine.CalendarBuilder{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}
	return b.Build(app.activeName, ref, app.feedHorizon())
}

// publishFeed refreshes the localhost feed after the reference date changed.
func (app *BiorhythmApp) publishFeed() {
	if app.Feed == nil {
		return
	}
	data, count, err := app.buildCalendar()
	if err != nil {
		app.Feed.Withdraw()
		return
	}
	slog.Debug(config.MsgFeedPublish,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyName, app.activeName,
		config.LogKeyCount, count)
	app.Feed.Publish(app.activeName, data, count)
}

// restartFeed applies the feed preferences: it stops any running server and
// starts a new one when enabled.
func (app *BiorhythmApp) restartFeed() {
	if app.stopFeed != nil {
		app.stopFeed()
		app.stopFeed = nil
	}
	app.Feed = nil

	enabled := app.Preferences.Bool(config.PrefFeedEnabled)
	if !enabled {
		slog.Info(config.MsgFeedDisabled, config.LogKeyComponent, config.CompUI)
		return
	}

	port := app.Preferences.StringWithFallback(config.PrefFeedPort, config.DefaultPort)
	if _, err := strconv.Atoi(port); err != nil {
		port = config.DefaultPort
	}

	feed := server.NewFeedServer(port)
	ctx, cancel := context.WithCancel(app.Ctx)
	app.Feed = feed
	app.stopFeed = cancel

	go func() {
		if err := feed.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyPort, port,
				config.LogKeyError, err)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, port)))
		}
	}()

	app.publishFeed()
}

// buildSummaryFormatter returns a closure that localizes event titles.
func (app *BiorhythmApp) buildSummaryFormatter() func(name, labels string) string {
	return func(name, labels string) string {
		if app.Localizer == nil {
			return ""
		}
		lc := &i18n.LocalizeConfig{
			MessageID:    config.TKeyEvtSummary,
			TemplateData: map[string]interface{}{"Labels": labels},
		}
		if name != "" {
			lc = &i18n.LocalizeConfig{
				MessageID:    config.TKeyEvtSummaryName,
				TemplateData: map[string]interface{}{"Name": name, "Labels": labels},
			}
		}
		msg, err := app.Localizer.Localize(lc)
		if err != nil {
			return ""
		}
		return msg
	}
}

// severityImportance maps simultaneous crossings to button emphasis.
func severityImportance(severity int) widget.Importance {
	switch {
	case severity >= 3:
		return widget.DangerImportance
	case severity == 2:
		return widget.WarningImportance
	default:
		return widget.LowImportance
	}
}

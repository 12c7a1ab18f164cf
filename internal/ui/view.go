package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
)

// mainView holds the widgets of the main window that react to state changes.
type mainView struct {
	app *BiorhythmApp

	nameEntry     *widget.Entry
	dateEntry     *widget.Entry
	dateHint      *widget.Label
	profileSelect *widget.Select

	slider      *widget.Slider
	offsetEntry *NumericalEntry
	dayBack     *holdButton
	dayForward  *holdButton

	yearText   *canvas.Text
	chart      *chartView
	offsetText *widget.Label

	sidebar *fyne.Container

	// syncing is set while widgets are updated from state, so their change
	// callbacks do not feed back into the navigator.
	syncing bool
}

// buildMainView assembles the main window content.
func (app *BiorhythmApp) buildMainView() fyne.CanvasObject {
	v := &mainView{app: app}
	app.view = v

	top := container.NewVBox(v.buildProfileBar(), v.buildNavRow())

	v.yearText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	v.yearText.TextSize = config.HeaderTextSize
	v.yearText.Alignment = fyne.TextAlignCenter

	critical := canvas.NewText(app.GetMsg(config.TKeyLblCritical), theme.Color(theme.ColorNameForeground))
	critical.TextSize = config.HeaderTextSize
	critical.Alignment = fyne.TextAlignCenter

	header := container.New(newPortionLayout(config.ChartToSidebar, config.SidebarPortion), v.yearText, critical)

	v.chart = newChartView(app)
	chartColumn := container.NewBorder(nil, v.buildFooter(), nil, nil, v.chart)

	content := container.New(newPortionLayout(config.ChartToSidebar, config.SidebarPortion),
		chartColumn, v.buildSidebar())

	v.refresh()
	v.refreshProfiles()

	return container.NewPadded(container.NewBorder(container.NewVBox(top, header), nil, nil, nil, content))
}

// rebuildMainView recreates the main window content after a language change,
// keeping the profile bar text.
func (app *BiorhythmApp) rebuildMainView() {
	if app.Window == nil || app.view == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildMainView())
	app.view.nameEntry.SetText(app.activeName)
	app.view.dateEntry.SetText(app.dateText)
}

func (v *mainView) buildProfileBar() fyne.CanvasObject {
	app := v.app

	v.nameEntry = widget.NewEntry()
	v.nameEntry.SetPlaceHolder(app.GetMsg(config.TKeyPhName))
	v.nameEntry.OnChanged = app.setActiveName

	v.dateEntry = widget.NewEntry()
	v.dateEntry.SetPlaceHolder(app.GetMsg(config.TKeyPhDate))
	v.dateEntry.OnChanged = app.setReferenceText
	dateBox := container.NewGridWrap(fyne.NewSize(config.DateEntryWidth, v.dateEntry.MinSize().Height), v.dateEntry)

	v.dateHint = widget.NewLabel(app.GetMsg(config.TKeyLblInvalidDate))
	v.dateHint.Importance = widget.DangerImportance
	v.dateHint.Hide()

	save := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		app.saveProfile(v.nameEntry.Text, v.dateEntry.Text)
	})
	save.Importance = widget.HighImportance

	v.profileSelect = widget.NewSelect(nil, v.onProfileSelected)
	v.profileSelect.PlaceHolder = app.GetMsg(config.TKeyPhProfile)

	profiles := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnProfiles), theme.ListIcon(), app.ShowProfilesWindow)
	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.ContentAddIcon(), app.ShowImportWindow)
	exportBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DownloadIcon(), app.showExportDialog)
	settings := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	left := container.NewHBox(dateBox, save, v.dateHint)
	right := container.NewHBox(v.profileSelect, profiles, importBtn, exportBtn, settings)
	return container.NewBorder(nil, nil, nil, container.NewHBox(left, right), v.nameEntry)
}

func (v *mainView) buildNavRow() fyne.CanvasObject {
	app := v.app

	weekBack := widget.NewButton(app.GetMsg(config.TKeyBtnWeekBack), func() { app.shiftOffset(-config.WeekStep) })
	weekForward := widget.NewButton(app.GetMsg(config.TKeyBtnWeekFwd), func() { app.shiftOffset(config.WeekStep) })
	today := widget.NewButton(app.GetMsg(config.TKeyBtnToday), app.resetOffset)

	v.dayBack = newHoldButton(app.GetMsg(config.TKeyBtnDayBack), nil,
		func() { app.startRolling(engine.Backward) }, app.stopRolling)
	v.dayForward = newHoldButton(app.GetMsg(config.TKeyBtnDayFwd), nil,
		func() { app.startRolling(engine.Forward) }, app.stopRolling)

	v.slider = widget.NewSlider(config.MinDayOffset, config.MaxDayOffset)
	v.slider.Step = config.DayStep
	v.slider.OnChanged = func(val float64) {
		if v.syncing {
			return
		}
		app.setOffset(int(math.Round(val)))
	}

	v.offsetEntry = NewSignedNumericalEntry()
	v.offsetEntry.SetPlaceHolder(app.GetMsg(config.TKeyPhOffset))
	v.offsetEntry.Validator = func(s string) error {
		if _, err := strconv.Atoi(s); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrOffsetInvalid))
		}
		return nil
	}
	v.offsetEntry.OnSubmitted = v.jumpToOffset
	offsetBox := container.NewGridWrap(fyne.NewSize(config.OffsetEntryWidth, v.offsetEntry.MinSize().Height), v.offsetEntry)

	left := container.NewHBox(weekBack, v.dayBack)
	right := container.NewHBox(v.dayForward, weekForward, today, offsetBox)
	return container.NewBorder(nil, nil, left, right, v.slider)
}

func (v *mainView) buildFooter() fyne.CanvasObject {
	v.offsetText = widget.NewLabel("")

	legend := container.NewHBox()
	for _, c := range engine.Cycles {
		t := canvas.NewText(v.app.GetMsg(c.NameKey), c.Color)
		t.TextSize = config.FooterTextSize
		legend.Add(t)
	}
	return container.NewHBox(v.offsetText, legend)
}

func (v *mainView) buildSidebar() fyne.CanvasObject {
	subtitle := canvas.NewText(v.app.GetMsg(config.TKeyLblZeroCrossing), config.ColorSubtitle)
	subtitle.TextSize = config.SubtitleTextSize

	v.sidebar = container.NewVBox()
	scroll := container.NewVScroll(v.sidebar)
	scroll.SetMinSize(fyne.NewSize(config.SidebarMinWidth, 0))
	return container.NewBorder(subtitle, nil, nil, nil, scroll)
}

// jumpToOffset applies the typed offset; the navigator clamps it.
func (v *mainView) jumpToOffset(text string) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return
	}
	v.app.setOffset(n)
	v.offsetEntry.SetText(strconv.Itoa(v.app.Offset()))
}

func (v *mainView) onProfileSelected(label string) {
	if v.syncing {
		return
	}
	for _, p := range v.app.Store.Profiles() {
		if p.String() == label {
			v.app.selectProfile(p)
			return
		}
	}
}

// refresh brings every state-dependent widget up to date.
func (v *mainView) refresh() {
	app := v.app
	offset := app.Offset()

	v.syncing = true
	if v.slider.Value != float64(offset) {
		v.slider.SetValue(float64(offset))
	}
	v.syncing = false

	v.offsetText.SetText(app.GetMsgWith(config.TKeyLblOffset, map[string]interface{}{"Offset": offset}))

	if _, ok := app.Reference(); ok {
		v.yearText.Text = app.currentFrame().Target().Format(config.DateFormatYear)
		v.dateHint.Hide()
	} else {
		v.yearText.Text = ""
		if app.dateText != "" {
			v.dateHint.Show()
		}
	}
	v.yearText.Refresh()

	v.refreshSidebar()
	v.chart.Refresh()
}

// refreshSidebar rebuilds the critical-day list. It is cheap enough to redo
// on every state change.
func (v *mainView) refreshSidebar() {
	events := v.app.criticalDays()
	objects := make([]fyne.CanvasObject, 0, len(events))
	for _, e := range events {
		offset := e.Offset
		text := fmt.Sprintf("%s   %s", e.Date.Format(config.DateFormatSidebar), e.LabelText())
		btn := widget.NewButton(text, func() { v.app.setOffset(offset) })
		btn.Alignment = widget.ButtonAlignLeading
		btn.Importance = severityImportance(e.Severity())
		objects = append(objects, btn)
	}
	v.sidebar.Objects = objects
	v.sidebar.Refresh()
}

// refreshProfiles reloads the select options from the store.
func (v *mainView) refreshProfiles() {
	profiles := v.app.Store.Profiles()
	options := make([]string, 0, len(profiles))
	for _, p := range profiles {
		options = append(options, p.String())
	}
	v.syncing = true
	v.profileSelect.SetOptions(options)
	v.syncing = false
}

// showExportDialog saves the upcoming critical days as an .ics file.
func (app *BiorhythmApp) showExportDialog() {
	data, count, err := app.buildCalendar()
	if err != nil {
		dialog.ShowError(err, app.Window)
		return
	}

	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if w == nil {
			return
		}
		defer func() { _ = w.Close() }()

		if _, err := w.Write(data); err != nil {
			slog.Error(config.ErrExportWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, w.URI().String(),
				config.LogKeyError, err)
			dialog.ShowError(fmt.Errorf("%s: %w", config.ErrExportWrite, err), app.Window)
			return
		}

		slog.Info(config.MsgExportDone,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyFile, w.URI().String(),
			config.LogKeyCount, count)
		dialog.ShowInformation(config.AppName,
			app.GetMsgWith(config.TKeyMsgExported, map[string]interface{}{"Count": count}), app.Window)
	}, app.Window)

	d.SetFileName(config.ExportPrefix + app.dateText + config.ExtICS)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	d.Show()
}

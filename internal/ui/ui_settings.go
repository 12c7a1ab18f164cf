package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/server"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect   *widget.Select
	checkFeed    *widget.Check
	entryPort    *NumericalEntry
	entryHorizon *NumericalEntry
	feedURL      *widget.Label
}

// ShowSettingsWindow displays the preferences dialog: language and the
// localhost critical-day feed.
func (app *BiorhythmApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgFocusWindow, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.buildSettingsWidgets()

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang))

	// --- Feed ---
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	widHorizon := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblDaysSuffix)), sw.entryHorizon)
	itemHorizon := widget.NewFormItem(app.GetMsg(config.TKeyLblHorizon), widHorizon)
	itemHorizon.HintText = app.GetMsg(config.TKeyHelpHorizon)

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblFeedURL), sw.feedURL)

	feedForm := widget.NewForm(itemPort, itemHorizon, itemURL)
	feedCard := widget.NewCard(app.GetMsg(config.TKeyLblFeed), "", container.NewVBox(sw.checkFeed, feedForm))

	// --- Actions ---
	saveAction := func() {
		if err := app.validateSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(app.GetMsgWith(config.TKeyLblFooter, map[string]interface{}{"Version": config.Version}))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		feedCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// buildSettingsWidgets creates the inputs pre-filled from preferences.
func (app *BiorhythmApp) buildSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.checkFeed = widget.NewCheck(app.GetMsg(config.TKeyLblFeedEnable), nil)
	sw.checkFeed.Checked = app.Preferences.Bool(config.PrefFeedEnabled)

	// Port: digits only, strict range validation.
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefFeedPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.entryHorizon = NewNumericalEntry()
	sw.entryHorizon.SetText(strconv.Itoa(app.feedHorizon()))
	sw.entryHorizon.Validator = app.validateHorizon

	sw.feedURL = widget.NewLabel(server.NewFeedServer(sw.entryPort.Text).URL())
	sw.feedURL.TextStyle = fyne.TextStyle{Monospace: true}
	sw.entryPort.OnChanged = func(s string) {
		sw.feedURL.SetText(server.NewFeedServer(s).URL())
	}

	return sw
}

func (app *BiorhythmApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

func (app *BiorhythmApp) validateHorizon(s string) error {
	days, err := strconv.Atoi(s)
	if err != nil || days < config.MinFeedHorizon || days > config.MaxFeedHorizon {
		return errors.New(app.GetMsgWith(config.TKeyErrHorizonRange, map[string]interface{}{
			"Min": config.MinFeedHorizon,
			"Max": config.MaxFeedHorizon,
		}))
	}
	return nil
}

// validateSettings blocks saving while a feed field is invalid. Feed fields
// are only checked when the feed is enabled.
func (app *BiorhythmApp) validateSettings(sw *settingsWidgets) error {
	if !sw.checkFeed.Checked {
		return nil
	}
	if err := sw.entryPort.Validate(); err != nil {
		return err
	}
	if err := sw.entryHorizon.Validate(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrHorizonRange, err)
	}
	return nil
}

// saveSettings persists the preferences and applies them immediately.
func (app *BiorhythmApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaved,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyLang, sw.langSelect.Selected,
		config.LogKeyEnabled, sw.checkFeed.Checked)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetBool(config.PrefFeedEnabled, sw.checkFeed.Checked)

	if app.validatePort(sw.entryPort.Text) == nil {
		app.Preferences.SetString(config.PrefFeedPort, sw.entryPort.Text)
	}
	if days, err := strconv.Atoi(sw.entryHorizon.Text); err == nil && app.validateHorizon(sw.entryHorizon.Text) == nil {
		app.Preferences.SetInt(config.PrefFeedHorizon, days)
	}

	app.UpdateLocalizer()
	app.rebuildMainView()
	app.restartFeed()
}

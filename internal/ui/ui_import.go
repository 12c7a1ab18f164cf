package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
	"github.com/zalando/go-keyring"
)

// importWidgets holds the source inputs of the import dialog.
type importWidgets struct {
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
}

// ShowImportWindow lets the user pull birth dates from a vCard file or a
// CardDAV address book into the saved profiles.
func (app *BiorhythmApp) ShowImportWindow() {
	if app.importWindow != nil {
		slog.Debug(config.MsgFocusWindow, config.LogKeyComponent, config.CompUIImport)
		app.importWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenImport, config.LogKeyComponent, config.CompUIImport)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinImport))
	app.importWindow = w

	iw := app.buildImportWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}
	sourceCard := app.buildSourceCard(w, iw, onLayoutChange)

	var btnImport *widget.Button
	btnImport = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.DownloadIcon(), func() {
		cfg := app.saveImportSettings(iw)
		btnImport.Disable()
		app.runImport(cfg, func(added int, err error) {
			btnImport.Enable()
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation(config.AppName,
				app.GetMsgWith(config.TKeyMsgImported, map[string]interface{}{"Count": added}), w)
		})
	})
	btnImport.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	paddedContent := container.NewPadded(container.NewVBox(
		sourceCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnImport),
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.ImportWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.importWindow = nil })
	refreshLayout()
	w.Show()
}

// buildImportWidgets creates the inputs pre-filled from preferences and the keyring.
func (app *BiorhythmApp) buildImportWidgets() *importWidgets {
	iw := &importWidgets{}

	iw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	iw.urlEntry = widget.NewEntry()
	iw.urlEntry.SetText(app.Preferences.String(config.PrefImportURL))
	iw.urlEntry.PlaceHolder = config.PlaceholderURL

	iw.userEntry = widget.NewEntry()
	iw.userEntry.SetText(app.Preferences.String(config.PrefImportUser))

	iw.passEntry = widget.NewPasswordEntry()
	if user := iw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			iw.passEntry.SetText(pwd)
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompUIImport,
				config.LogKeyUser, user,
				config.LogKeyError, err)
		}
	}

	iw.pathEntry = widget.NewEntry()
	iw.pathEntry.SetText(app.Preferences.String(config.PrefImportPath))

	return iw
}

// buildSourceCard constructs the source selection UI.
func (app *BiorhythmApp) buildSourceCard(w fyne.Window, iw *importWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				iw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), iw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), iw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), iw.passEntry)
	webForm := widget.NewForm(itemURL, itemUser, itemPass)

	localForm := container.NewBorder(nil, nil, nil, browseBtn, iw.pathEntry)

	applyVisibility := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
	}
	iw.modeSelect.OnChanged = func(mode string) {
		applyVisibility(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if app.Preferences.String(config.PrefImportMode) == config.SourceModeLocal {
		iw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	} else {
		iw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	}
	applyVisibility(iw.modeSelect.Selected)

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(iw.modeSelect, webForm, localForm))
}

// saveImportSettings persists the source choice and returns the matching
// importer configuration. The password only goes to the keyring.
func (app *BiorhythmApp) saveImportSettings(iw *importWidgets) engine.ImportConfig {
	mode := config.SourceModeWeb
	if iw.modeSelect.Selected == app.GetMsg(config.TKeyModeLocal) {
		mode = config.SourceModeLocal
	}

	app.Preferences.SetString(config.PrefImportMode, mode)
	app.Preferences.SetString(config.PrefImportURL, iw.urlEntry.Text)
	app.Preferences.SetString(config.PrefImportUser, iw.userEntry.Text)
	app.Preferences.SetString(config.PrefImportPath, iw.pathEntry.Text)

	if iw.userEntry.Text != "" && iw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, iw.userEntry.Text, iw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUIImport)
		}
	}

	return engine.ImportConfig{
		Mode:      mode,
		LocalPath: iw.pathEntry.Text,
		WebURL:    iw.urlEntry.Text,
		WebUser:   iw.userEntry.Text,
		WebPass:   iw.passEntry.Text,
	}
}

// runImport reads contacts off the UI goroutine, merges them into the store
// and reports back on the UI goroutine.
func (app *BiorhythmApp) runImport(cfg engine.ImportConfig, done func(added int, err error)) {
	importer := &engine.ProfileImporter{Fetcher: app.Fetcher}

	go func() {
		profiles, err := importer.Import(app.Ctx, cfg)
		if err != nil {
			slog.Error(config.ErrImportFailed,
				config.LogKeyComponent, config.CompUIImport,
				config.LogKeyMode, cfg.Mode,
				config.LogKeyError, err)
			fyne.Do(func() { done(0, fmt.Errorf("%s: %w", config.ErrImportFailed, err)) })
			return
		}

		added := app.Store.Merge(profiles)
		slog.Info(config.MsgImportDone,
			config.LogKeyComponent, config.CompUIImport,
			config.LogKeyFound, len(profiles),
			config.LogKeyCount, added)

		fyne.Do(func() {
			if app.view != nil {
				app.view.refreshProfiles()
			}
			done(added, nil)
		})
	}()
}

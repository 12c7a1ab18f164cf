package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"golang.org/x/text/language"
)

const localeDir = "locales"

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n loads every embedded active.<lang>.json. The languages offered in
// the settings window are exactly the files found.
func (app *BiorhythmApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		code, ok := localeCode(name)
		if !ok {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
			config.LogKeyFile, name,
		)
		langs = append(langs, code)
	}

	app.SupportedLanguages = langs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// localeCode extracts "fr" from "active.fr.json".
func localeCode(name string) (string, bool) {
	code, ok := strings.CutPrefix(name, "active.")
	if !ok {
		return "", false
	}
	code, ok = strings.CutSuffix(code, ".json")
	return code, ok && code != ""
}

// UpdateLocalizer follows the language preference; callers rebuild the
// visible widgets afterwards.
func (app *BiorhythmApp) UpdateLocalizer() {
	lang := app.Preferences.String(config.PrefLanguage)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates a key without template data.
func (app *BiorhythmApp) GetMsg(key string) string {
	return app.GetMsgWith(key, nil)
}

// GetMsgWith fills a templated message such as "Offset: {{.Offset}} days".
// An unknown key is returned as is.
func (app *BiorhythmApp) GetMsgWith(key string, data map[string]interface{}) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

package config

import (
	"image/color"
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for contact imports.
var UserAgent = "Go-Biorhythm/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Biorhythm Pro Forecast"
	AppID             = "com.github.tartampluch.go-biorhythm"
	KeyringService    = "com.github.tartampluch.go-biorhythm"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ProfilesFileName  = "profiles.yaml"
	IconFile          = "icon.png"
	IconSize          = 256
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagProfiles     = "profiles"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescProfiles = "Path of the saved profiles file (default: user config dir)"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Biorhythm Model
// -----------------------------------------------------------------------------

const (
	PeriodPhysical     = 23
	PeriodEmotional    = 28
	PeriodIntellectual = 33

	LabelPhysical     = "P"
	LabelEmotional    = "E"
	LabelIntellectual = "I"
)

// -----------------------------------------------------------------------------
// Navigation
// -----------------------------------------------------------------------------

const (
	// MinDayOffset is roughly 125 years back, MaxDayOffset 100 years forward.
	MinDayOffset = -45830
	MaxDayOffset = 36525

	WeekStep = 7
	DayStep  = 1

	// RollInterval gates continuous shifting to a fixed rate independent of
	// the display refresh rate.
	RollInterval = 60 * time.Millisecond

	// FrameInterval is the tick period of the rolling driver (about 60 Hz).
	FrameInterval = 16 * time.Millisecond

	// WheelStep is applied against the raw scroll delta sign:
	// a positive delta moves the view one day back.
	WheelStep = 1
)

// -----------------------------------------------------------------------------
// Chart Window & Sidebar Scan
// -----------------------------------------------------------------------------

const (
	WindowDays       = 30
	WindowLeadDays   = 15 // view starts this many days before the target
	LabelEveryDays   = 5
	CurveSegments    = 300
	NearZeroEpsilon  = 0.015
	SidebarLeadDays  = 5  // scan starts this many days before the offset
	SidebarTrailDays = 25 // scan ends (exclusive) this many days after it

	// Layout
	ChartPadLeft      = 60.0
	ChartPadTop       = 60.0
	ChartPadRightMul  = 1.5 // chart width = W - PadLeft*mul
	ChartPadBottomMul = 2.0 // chart height = H - PadTop*mul
	DayLabelGap       = 15.0
	BarWidthRatio     = 0.8
	BarInsetRatio     = 0.1
	CurveWidth        = 2.5
	CrossMarkSize     = 6.0
	ChartToSidebar    = 5 // proportional split of the content row
	SidebarPortion    = 1

	// Formats
	DateFormatInput   = "2006-01-02"
	DateFormatAxis    = "02/01"
	DateFormatSidebar = "Jan 02"
	DateFormatYear    = "2006"
	WeekdayFormat     = "Mon"
	CrossingJoiner    = " + "
)

// -----------------------------------------------------------------------------
// Chart Colors
// -----------------------------------------------------------------------------

var (
	ColorBackground   = color.NRGBA{R: 32, G: 33, B: 36, A: 255}
	ColorAxis         = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorMidline      = color.NRGBA{R: 102, G: 102, B: 102, A: 255}
	ColorGrid         = color.NRGBA{R: 255, G: 255, B: 255, A: 13}
	ColorTarget       = color.NRGBA{R: 255, G: 255, B: 0, A: 204}
	ColorTargetText   = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	ColorDayLabel     = color.NRGBA{R: 153, G: 153, B: 153, A: 255}
	ColorWeekday      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorSunday       = color.NRGBA{R: 255, G: 128, B: 128, A: 255}
	ColorTrendUp      = color.NRGBA{R: 51, G: 255, B: 128, A: 51}
	ColorTrendDown    = color.NRGBA{R: 255, G: 77, B: 77, A: 51}
	ColorCrossMark    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorPhysical     = color.NRGBA{R: 255, G: 80, B: 80, A: 255}
	ColorEmotional    = color.NRGBA{R: 80, G: 255, B: 80, A: 255}
	ColorIntellectual = color.NRGBA{R: 80, G: 80, B: 255, A: 255}
	ColorSubtitle     = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 1280
	MainWindowHeight    = 760
	SettingsWindowWidth = 480
	ImportWindowWidth   = 560
	DateEntryWidth      = 120
	OffsetEntryWidth    = 100
	HeaderTextSize      = 20
	FooterTextSize      = 14
	ChartMinWidth       = 320
	ChartMinHeight      = 240
	SidebarMinWidth     = 160
	SubtitleTextSize    = 12

	// Preference Keys
	PrefLanguage    = "language"
	PrefFeedEnabled = "feed_enabled"
	PrefFeedPort    = "feed_port"
	PrefFeedHorizon = "feed_horizon_days"
	PrefLastDate    = "last_date"
	PrefLastName    = "last_name"
	PrefImportMode  = "import_mode"
	PrefImportPath  = "import_path"
	PrefImportURL   = "import_url"
	PrefImportUser  = "import_user"
	PrefLastRun     = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle         = "win_title"
	TKeyWinSettings      = "win_settings_title"
	TKeyWinImport        = "win_import_title"
	TKeyWinProfiles      = "win_profiles_title"
	TKeyPhName           = "ph_name"
	TKeyPhDate           = "ph_date"
	TKeyPhProfile        = "ph_profile"
	TKeyPhOffset         = "ph_offset"
	TKeyBtnSave          = "btn_save"
	TKeyBtnCancel        = "btn_cancel"
	TKeyBtnWeekBack      = "btn_week_back"
	TKeyBtnDayBack       = "btn_day_back"
	TKeyBtnDayFwd        = "btn_day_forward"
	TKeyBtnWeekFwd       = "btn_week_forward"
	TKeyBtnToday         = "btn_today"
	TKeyBtnExport        = "btn_export"
	TKeyBtnImport        = "btn_import"
	TKeyBtnSettings      = "btn_settings"
	TKeyBtnBrowse        = "btn_browse"
	TKeyBtnProfiles      = "btn_profiles"
	TKeyColName          = "col_name"
	TKeyColDate          = "col_date"
	TKeyColDays          = "col_days_alive"
	TKeyColNext          = "col_next_critical"
	TKeyLblCritical      = "lbl_critical_days"
	TKeyLblZeroCrossing  = "lbl_zero_crossing"
	TKeyLblOffset        = "lbl_offset" // Requires Offset
	TKeyLblInvalidDate   = "lbl_invalid_date"
	TKeyLblPhysical      = "lbl_physical"
	TKeyLblEmotional     = "lbl_emotional"
	TKeyLblIntellectual  = "lbl_intellectual"
	TKeyLblLanguage      = "lbl_language"
	TKeyHelpLanguage     = "help_language"
	TKeyLblFeed          = "lbl_feed"
	TKeyLblFeedEnable    = "lbl_feed_enable"
	TKeyLblPort          = "lbl_server_port"
	TKeyHelpPort         = "help_port"
	TKeyLblFeedURL       = "lbl_feed_url"
	TKeyLblHorizon       = "lbl_horizon"
	TKeyHelpHorizon      = "help_horizon"
	TKeyLblDaysSuffix    = "lbl_days_suffix"
	TKeyLblGeneral       = "lbl_general"
	TKeyLblFooter        = "lbl_footer"
	TKeyLblSource        = "lbl_source"
	TKeyModeCardDAV      = "mode_carddav"
	TKeyModeLocal        = "mode_local"
	TKeyLblURL           = "lbl_url"
	TKeyHelpURL          = "help_carddav_url"
	TKeyLblUser          = "lbl_user"
	TKeyLblPass          = "lbl_pass"
	TKeyMsgImported      = "msg_imported"      // Requires Count
	TKeyMsgExported      = "msg_exported"      // Requires Count
	TKeyEvtSummary       = "event_summary"     // Requires Labels
	TKeyEvtSummaryName   = "event_summary_for" // Requires Name, Labels
	TKeyErrPortReq       = "err_port_required"
	TKeyErrPortNum       = "err_port_number"
	TKeyErrPortRange     = "err_port_range"
	TKeyErrHorizonRange  = "err_horizon_range"
	TKeyErrOffsetInvalid = "err_offset_invalid"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb      = "web"
	SourceModeLocal    = "local"
	DefaultPort        = "18081"
	DefaultLanguage    = "en"
	DefaultFeedHorizon = 90
	MinFeedHorizon     = 1
	MaxFeedHorizon     = 3660
	UIDSalt            = "go-biorhythm-v1-"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Biorhythm//Critical Days//EN"
	ICalCalName = "Biorhythm Critical Days"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gobiorhythm"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropCategories = "CATEGORIES"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour
	ICalCategory       = "Biorhythm"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"

	// File Extensions
	ExtVCF       = ".vcf"
	ExtVCard     = ".vcard"
	ExtICS       = ".ics"
	ExportPrefix = "critical-days-"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteFeed           = "/critical-days.ics"
	FormatFeedURL       = "http://%s:%s%s"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderCriticalDays    = "X-Critical-Days"
	HeaderFeedProfile     = "X-Feed-Profile"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "date does not match YYYY-MM-DD"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app directory"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrProfilesRead     = "failed to read profiles file"
	ErrProfilesDecode   = "failed to decode profiles file"
	ErrProfilesEncode   = "failed to encode profiles"
	ErrProfilesWrite    = "failed to write profiles file"
	ErrIconRender       = "failed to render application icon"
	ErrExportWrite      = "failed to write calendar export"
	ErrNoReferenceDate  = "no valid reference date"
	ErrKeyringSave      = "failed to save credentials to keyring"
	ErrImportFailed     = "contact import failed"
	ErrHorizonRange     = "feed horizon out of range"
	ErrRenderEmptyFrame = "chart area too small to render"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "No critical-day feed is published yet, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary     = "Critical day: %s"
	FallbackSummaryName = "%s: critical day %s"
	FallbackName        = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgProfilesLoaded = "Profiles loaded"
	MsgProfilesSaved  = "Profiles saved"
	MsgProfileDup     = "Profile already saved, skipping"
	MsgProfileAdded   = "Profile added"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping contact without full birth date"
	MsgImportDone     = "Contact import finished"
	MsgExportDone     = "Critical-day calendar exported"
	MsgRollStart      = "Rolling started"
	MsgRollStop       = "Rolling stopped"
	MsgChartRendered  = "Chart rendered"
	MsgFeedUpdated    = "Critical-day feed refreshed"
	MsgFeedDisabled   = "Critical-day feed disabled"
	MsgFeedWithdrawn  = "Critical-day feed withdrawn"
	MsgSettingsSaved  = "Saving preferences"
	MsgOpenSettings   = "Opening settings window"
	MsgOpenImport     = "Opening import window"
	MsgFocusWindow    = "Window already open, requesting focus"
	MsgOpenProfiles   = "Opening saved profiles window"
	MsgProfilesSorted = "Profiles table sorted"
	MsgFeedPublish    = "Publishing critical-day feed"
	MsgDateInvalid    = "Reference date text does not parse, chart hidden"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDate      = "date"
	LogKeyOffset    = "offset"
	LogKeyDirection = "direction"
	LogKeySteps     = "steps"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"
	LogKeyDuration  = "duration_ms"
	LogKeyHorizon   = "horizon_days"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "profiles_found"
	LogKeySortCol   = "sort_col"
	LogKeySortAsc   = "sort_asc"
	LogKeyEnabled   = "enabled"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompUIImport = "ui_import"
	CompEngine   = "engine"
	CompRender   = "render"
	CompServer   = "server"
	CompStore    = "store"
	CompImporter = "importer"
	CompFetcher  = "fetcher"
	CompNav      = "nav"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2

	// Saved profiles table
	ColIDName         = 0
	ColIDDate         = 1
	ColIDDays         = 2
	ColIDNext         = 3
	ColCount          = 4
	ColWidthName      = 220
	ColWidthDate      = 110
	ColWidthDays      = 110
	ColWidthNext      = 160
	ProfilesWinWidth  = 640
	ProfilesWinHeight = 420
	ProfileScanDays   = WindowDays
	TablePlaceholder  = "Placeholder"
	SortIconAsc       = " ▲"
	SortIconDesc      = " ▼"
	NoValue           = "-"
	PlaceholderURL    = "https://dav.example.com/addressbooks/me/contacts/"
)

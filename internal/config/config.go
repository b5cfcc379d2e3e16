package config

import (
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

// UserAgent identifies the HTTP client used by the contact relay.
var UserAgent = "SPLShield-Web/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "SPL Shield"
	AppID          = "com.github.splshield.splshield-web"
	KeyringService = "com.github.splshield.splshield-web"
	LogFileName    = "app.log"
	TokenSymbol    = "TDL"
	SupportEmail   = "support@splshield.com"
	SocialHandle   = "@splshield"
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
	FlagTray         = "tray"
	FlagEnvFile      = "env"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescTray     = "Run the desktop tray companion alongside the site server"
	FlagDescEnvFile  = "Optional .env file loaded before reading the environment"
	DefaultEnvFile   = ".env"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Countdown
// -----------------------------------------------------------------------------

const (
	// TickInterval is the refresh cadence of every countdown display.
	TickInterval = 1000 * time.Millisecond

	// DefaultPresaleAnnual is the yearly presale deadline: January 6, 18:00 UTC.
	DefaultPresaleAnnual = "01-06T18:00"

	// AnnualLayout parses the month/day/hour rule of a yearly deadline.
	AnnualLayout = "01-02T15:04"

	// DisplayPadded formats hours, minutes and seconds. Days are never padded.
	DisplayPadded = "%02d"
	DisplayDays   = "%d"

	// DeadlineDisplayLayout is used in the presale notes.
	DeadlineDisplayLayout = "January 2, 2006 at 15:04 UTC"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 480
	CountdownWinWidth   = 460
	CountdownWinHeight  = 220

	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefRelayUser  = "relay_user"
	PrefLastRun    = "last_run_version"

	LayoutColumnsCountdown = 4
	LayoutColumnsDouble    = 2

	IconFile        = "icon.svg"
	LocalSiteFormat = "http://localhost:%s%s?lang=%s"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyNavHome       = "nav_home"
	TKeyNavFeatures   = "nav_features"
	TKeyNavProducts   = "nav_products"
	TKeyNavTokenomics = "nav_tokenomics"
	TKeyNavRoadmap    = "nav_roadmap"
	TKeyNavWhitepaper = "nav_whitepaper"
	TKeyNavContact    = "nav_contact"
	TKeyNavLaunchApp  = "nav_launch_app"

	TKeyHeroTitle    = "hero_title"
	TKeyHeroSubtitle = "hero_subtitle"
	TKeyHeroScan     = "hero_cta_scan"
	TKeyHeroBuy      = "hero_cta_buy"

	TKeySecFeatures   = "section_features"
	TKeySecProducts   = "section_products"
	TKeySecTokenomics = "section_tokenomics"
	TKeySecRoadmap    = "section_roadmap"
	TKeySecWhitepaper = "section_whitepaper"
	TKeySecContact    = "section_contact"

	TKeyPresaleTitle   = "presale_title"
	TKeyPresaleActive  = "presale_active"  // Requires Deadline
	TKeyPresaleExpired = "presale_expired" // No data
	TKeyPresaleJoin    = "presale_join"

	TKeyUnitDays    = "unit_days"
	TKeyUnitHours   = "unit_hours"
	TKeyUnitMinutes = "unit_minutes"
	TKeyUnitSeconds = "unit_seconds"

	TKeyFormName      = "form_name"
	TKeyFormEmail     = "form_email"
	TKeyFormSubject   = "form_subject"
	TKeyFormMessage   = "form_message"
	TKeyFormSend      = "form_send"
	TKeyFormSent      = "form_sent"
	TKeyFormFailed    = "form_failed"
	TKeyDownloadCard  = "download_vcard"
	TKeySubscribeFeed = "subscribe_calendar"

	TKeyFooterProducts  = "footer_products"
	TKeyFooterResources = "footer_resources"
	TKeyFooterSupport   = "footer_support"
	TKeyFooterLegal     = "footer_legal"
	TKeyFooterRights    = "footer_rights" // Requires Year
	TKeyLegalUpdated    = "legal_updated" // Requires Date

	// Desktop companion
	TKeyTrayCountdown = "tray_countdown" // Requires Remaining
	TKeyTrayExpired   = "tray_expired"
	TKeyMenuOpenSite  = "menu_open_site"
	TKeyMenuCountdown = "menu_countdown"
	TKeyMenuSettings  = "menu_settings"
	TKeyWinSettings   = "win_settings_title"
	TKeyWinCountdown  = "win_countdown_title"
	TKeyLblLanguage   = "lbl_language"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblRelayUser  = "lbl_relay_user"
	TKeyLblRelayPass  = "lbl_relay_pass"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblRelay      = "lbl_relay"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyErrPortReq    = "err_port_required"
	TKeyErrPortNum    = "err_port_number"
	TKeyErrPortRange  = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultBindAddr     = "0.0.0.0"
	DefaultPort         = "8080"
	DefaultLanguage     = "en"
	DefaultScannerURL   = "https://app.splshield.com"
	DefaultExchangeURL  = "https://presale.splshield.com"
	DefaultAPIURL       = "https://api.splshield.com"
	DefaultTelegramURL  = "https://t.me/SPLShieldOfficial"
	DefaultDiscordURL   = "https://discord.gg/HWyURyg6uH"
	DefaultContactRate  = 1.0
	DefaultContactBurst = 3
	UIDSalt             = "splshield-web-v1-"
)

// SupportedLanguages lists the languages shipped in the locale bundle (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion       = "2.0"
	ICalProdid        = "-//SPL Shield//Presale//EN"
	ICalCalName       = "SPL Shield Presale & Roadmap"
	ICalMethod        = "PUBLISH"
	ICalScale         = "GREGORIAN"
	ICalDomain        = "splshield.com"
	ICalPresaleTitle  = "TDL Presale ends"
	ICalRoadmapPrefix = "SPL Shield roadmap: "

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"
	VCardName    = "SPL Shield Support"
	VCardOrg     = "SPL Shield"

	DefaultICalRefresh = 12 * time.Hour

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	// QuarterLayout matches roadmap labels such as "Q4 2025".
	QuarterLayout = "Q%d %d"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 15 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	PageRefreshInterval = 1 * time.Hour
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	AllowedPostMethods  = "POST"
	MaxContactBodySize  = 64 * 1024
	MaxRelayErrorBody   = 4 * 1024
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"
	RelayContactPath    = "/v1/contact"
	MinPort             = 1
	MaxPort             = 65535
	MetricsRoutePage    = "page"
)

// -----------------------------------------------------------------------------
// Routes
// -----------------------------------------------------------------------------

const (
	RouteRoot         = "/"
	RouteWhitepaper   = "/whitepaper"
	RouteContact      = "/contact"
	RoutePrivacy      = "/privacy-policy"
	RouteTerms        = "/terms-of-service"
	RouteCookies      = "/cookie-policy"
	RouteDisclaimer   = "/disclaimer"
	RouteCalendar     = "/presale.ics"
	RouteVCard        = "/contact.vcf"
	RouteAPICountdown = "/api/countdown"
	RouteAPIStream    = "/api/countdown/stream"
	RouteAPIContact   = "/api/contact"
	RouteHealth       = "/healthz"
	RouteMetrics      = "/metrics"
	QueryParamLang    = "lang"
	SSEEventTick      = "tick"
	SSEFormatEvent    = "event: %s\ndata: %s\n\n"
	SSEFormatRetry    = "retry: %d\n\n"
	SSERetryMillis    = 3000
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
	HeaderAcceptLanguage  = "Accept-Language"
	HeaderContentLanguage = "Content-Language"
	HeaderConnection      = "Connection"
	HeaderVary            = "Vary"

	MimeTextHTML        = "text/html; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeEventStream     = "text/event-stream"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPublic  = "public, no-cache"
	CacheControlNoStore = "no-store"
	ConnectionKeepAlive = "keep-alive"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrDeadlineParse    = "invalid presale deadline"
	ErrAnnualParse      = "invalid annual deadline rule"
	ErrQuarterParse     = "invalid roadmap quarter"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrTemplateParse    = "failed to parse page templates"
	ErrTemplateRender   = "failed to render page"
	ErrRender           = "failed to rebuild site"
	ErrSettingsLoad     = "failed to load settings"
	ErrEnvFile          = "failed to load env file"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrNoLocales        = "no locale files found"
	ErrRelaySend        = "failed to relay contact message"
	ErrRelayStatus      = "relay returned unexpected status"
	ErrRelayEncode      = "failed to encode contact message"
	ErrStreaming        = "streaming unsupported by response writer"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrOpenURL          = "failed to open URL"
	ErrKeyringSave      = "failed to store relay password"
	ErrAllocationSum    = "allocations must sum to 100 percent"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Site initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
	HTTPMsgInvalidBody  = "invalid request body"
	HTTPMsgTooMany      = "too many requests"
	HTTPMsgRelayFailed  = "failed to deliver message"
	HTTPMsgOK           = "ok"

	StatusOK    = "OK"
	StatusError = "Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel   = "SPL Shield"
	FallbackTrayFormat  = "Presale ends in %s"
	FallbackTrayExpired = "Presale has concluded"
	FormatTrayRemaining = "%sd %s:%s:%s"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgSiteRendered   = "Site pages rendered"
	MsgWorkerStart    = "Page refresh worker started"
	MsgWorkerStop     = "Page refresh worker stopping due to context cancellation"
	MsgStreamOpen     = "Countdown stream opened"
	MsgStreamClosed   = "Countdown stream closed"
	MsgTickerStart    = "Countdown subscription started"
	MsgTickerStop     = "Countdown subscription released"
	MsgTickerExpired  = "Countdown reached deadline"
	MsgContactOK      = "Contact message accepted"
	MsgContactInvalid = "Contact message rejected"
	MsgContactLimited = "Contact message rate limited"
	MsgRelayStub      = "Contact relay not configured, message logged only"
	MsgRelaySent      = "Contact message relayed"
	MsgRelayKeyring   = "Relay password read from keyring"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgOpenCountdown  = "Opening countdown window"
	MsgOpenSettings   = "Opening settings window"
	MsgSettingsSaved  = "Settings saved"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgTrayRestart    = "Tray countdown restarting for next deadline"
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
	LogKeyAddr      = "addr"
	LogKeyInterval  = "interval"
	LogKeyDeadline  = "deadline"
	LogKeyPages     = "pages"
	LogKeySizeBytes = "size_bytes"
	LogKeyID        = "message_id"
	LogKeySubject   = "subject"
	LogKeyRemote    = "remote"
	LogKeyUser      = "user"
	LogKeyDuration  = "duration_ms"

	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
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
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompCountdown = "countdown"
	CompServer    = "server"
	CompContact   = "contact"
	CompRelay     = "relay"
	CompFeeds     = "feeds"
	CompWorker    = "worker"
	CompMain      = "main"
	CompI18n      = "i18n"
)

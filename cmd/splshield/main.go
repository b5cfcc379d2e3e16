package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/content"
	"github.com/splshield/splshield-web/internal/countdown"
	"github.com/splshield/splshield-web/internal/locale"
	"github.com/splshield/splshield-web/internal/relay"
	"github.com/splshield/splshield-web/internal/site"
	"github.com/splshield/splshield-web/internal/ui"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	trayMode := flag.Bool(config.FlagTray, false, config.FlagDescTray)
	envFile := flag.String(config.FlagEnvFile, config.DefaultEnvFile, config.FlagDescEnvFile)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Settings & Logging
	// -------------------------------------------------------------------------
	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	logCloser := setupLogging(*debugMode, settings.LogToFile)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, settings, *trayMode); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires dependencies, renders the site and serves it until ctx ends.
// With tray enabled the fyne loop owns the main goroutine instead.
func run(ctx context.Context, settings *config.Settings, tray bool) error {
	cat, err := locale.NewCatalog(settings.Language)
	if err != nil {
		return err
	}

	// A bad deadline must stop startup rather than show a wrong countdown.
	sched, err := countdown.NewSchedule(settings.PresaleDeadline, settings.PresaleAnnual)
	if err != nil {
		return err
	}

	var a fyne.App
	port := settings.Port
	relayUser := settings.Relay.User
	if tray {
		a = app.NewWithID(config.AppID)
		prefs := a.Preferences()
		prefs.SetString(config.PrefLastRun, config.Version)
		port = prefs.StringWithFallback(config.PrefServerPort, port)
		if relayUser == "" {
			relayUser = prefs.String(config.PrefRelayUser)
		}
	}

	rel, err := newRelay(settings, relayUser)
	if err != nil {
		return err
	}

	srv, err := site.New(site.Options{
		BindAddr:     settings.BindAddr,
		Port:         port,
		Schedule:     sched,
		TickInterval: settings.TickInterval,
		Catalog:      cat,
		Site:         content.New(settings.Links),
		Relay:        rel,
		ContactRate:  settings.ContactRate,
		ContactBurst: settings.ContactBurst,
	})
	if err != nil {
		return err
	}

	if err := srv.Rebuild(); err != nil {
		return err
	}
	go srv.Refresh(ctx, config.PageRefreshInterval)

	if !tray {
		return srv.Start(ctx)
	}

	gui := ui.NewCompanionApp(a, ctx, srv, cat, sched)
	gui.Ticker.Interval = settings.TickInterval

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		fyne.Do(a.Quit)
	}()

	gui.Run()
	return nil
}

// newRelay forwards contact messages to the API when enabled and only logs
// them otherwise.
func newRelay(settings *config.Settings, user string) (relay.Relay, error) {
	if !settings.Relay.Enabled {
		return relay.LogRelay{}, nil
	}
	pass := relay.ResolvePassword(user, settings.Relay.Password)
	return relay.NewHTTPRelay(settings.Links.APIURL, user, pass)
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog handler on stdout and, when enabled, on a
// log file in the user cache dir.
func setupLogging(debugMode, toFile bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if toFile {
		if logPath, err := getLogFilePath(); err == nil {
			// O_TRUNC resets logs on restart to prevent indefinite growth.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				logFile = f
			} else {
				fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath returns the log file path in the platform cache directory.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

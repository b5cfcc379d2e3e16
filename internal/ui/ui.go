// Package ui is the desktop tray companion: it hosts the site server locally
// and shows the presale countdown in the system tray.
package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/countdown"
	"github.com/splshield/splshield-web/internal/locale"
	"github.com/splshield/splshield-web/internal/site"
)

//go:embed icon.svg
var appIconData []byte

// CompanionApp encapsulates the UI state, preferences and the countdown displays.
type CompanionApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Catalog     *locale.Catalog
	Ctx         context.Context

	Server   *site.Server
	Schedule countdown.Schedule
	Clock    countdown.Clock // Injected clock for testability
	Ticker   *countdown.Ticker

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem    *fyne.MenuItem
	TraySiteItem      *fyne.MenuItem
	TrayCountdownItem *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem

	countdownWindow fyne.Window
	countdownView   *countdownView
}

// NewCompanionApp constructs the application and wires dependencies.
func NewCompanionApp(a fyne.App, ctx context.Context, srv *site.Server, cat *locale.Catalog, sched countdown.Schedule) *CompanionApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &CompanionApp{
		App:         a,
		Preferences: a.Preferences(),
		Catalog:     cat,
		Ctx:         ctx,
		Server:      srv,
		Schedule:    sched,
		Clock:       countdown.RealClock{},
		Ticker:      countdown.NewTicker(),
	}
}

// Run starts the site server and the tray, then blocks in the UI loop.
func (app *CompanionApp) Run() {
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.trayWorker()
	app.App.Run()
}

// Lang returns the language chosen in the settings, or the catalog default.
func (app *CompanionApp) Lang() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, app.Catalog.Fallback())
}

// GetMsg translates key in the current language.
func (app *CompanionApp) GetMsg(key string) string {
	return app.Catalog.Msg(app.Lang(), key)
}

// Deadline resolves the presale deadline from the current time.
func (app *CompanionApp) Deadline() time.Time {
	return app.Schedule.Deadline(app.Clock.Now())
}

// setupTrayMenu constructs the system tray menu.
func (app *CompanionApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowCountdownWindow()
	})

	app.TraySiteItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpenSite), func() {
		app.OpenSite()
	})

	app.TrayCountdownItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCountdown), func() {
		app.ShowCountdownWindow()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TraySiteItem,
		app.TrayCountdownItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *CompanionApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TraySiteItem.Label = app.GetMsg(config.TKeyMenuOpenSite)
	app.TrayCountdownItem.Label = app.GetMsg(config.TKeyMenuCountdown)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// SiteURL is the address of the locally hosted site in the current language.
func (app *CompanionApp) SiteURL() (*url.URL, error) {
	return url.Parse(fmt.Sprintf(config.LocalSiteFormat, app.Server.Port, config.RouteRoot, app.Lang()))
}

// OpenSite opens the local site in the default browser.
func (app *CompanionApp) OpenSite() {
	u, err := app.SiteURL()
	if err == nil {
		err = app.App.OpenURL(u)
	}
	if err != nil {
		slog.Error(config.ErrOpenURL,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
	}
}

// trayWorker keeps the tray status in step with the countdown. An expired
// subscription ends by itself; the worker then waits for the schedule to
// produce a later deadline before subscribing again.
func (app *CompanionApp) trayWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	for {
		deadline := app.Deadline()
		sub := app.Ticker.Start(app.Ctx, deadline, func(r countdown.Remaining) {
			fyne.Do(func() { app.updateTrayStatus(r) })
		})

		select {
		case <-app.Ctx.Done():
			sub.Cancel()
			log.Info(config.MsgWorkerStop)
			return
		case <-sub.Done():
		}

		for !app.Deadline().After(deadline) {
			select {
			case <-app.Ctx.Done():
				log.Info(config.MsgWorkerStop)
				return
			case <-time.After(config.PageRefreshInterval):
			}
		}
		log.Info(config.MsgTrayRestart, config.LogKeyDeadline, app.Deadline().Format(time.RFC3339))
	}
}

// updateTrayStatus shows the time left in the first menu item.
func (app *CompanionApp) updateTrayStatus(r countdown.Remaining) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = app.trayLabel(r)
	app.Menu.Refresh()
}

func (app *CompanionApp) trayLabel(r countdown.Remaining) string {
	if r.Expired() {
		label := app.GetMsg(config.TKeyTrayExpired)
		if label == config.TKeyTrayExpired {
			return config.FallbackTrayExpired
		}
		return label
	}

	label := app.Catalog.MsgData(app.Lang(), config.TKeyTrayCountdown, map[string]any{"Remaining": r.String()})
	if label == config.TKeyTrayCountdown {
		return fmt.Sprintf(config.FallbackTrayFormat, r.String())
	}
	return label
}

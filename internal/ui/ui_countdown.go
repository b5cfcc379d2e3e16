package ui

import (
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/countdown"
)

// countdownView holds the labels refreshed on every tick.
type countdownView struct {
	days    *widget.Label
	hours   *widget.Label
	minutes *widget.Label
	seconds *widget.Label
	note    *widget.Label

	activeText  string
	expiredText string
}

func newValueLabel() *widget.Label {
	l := widget.NewLabel("")
	l.Alignment = fyne.TextAlignCenter
	l.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	return l
}

// set renders r. It must run on the UI goroutine.
func (v *countdownView) set(r countdown.Remaining) {
	d := r.Display()
	v.days.SetText(d.Days)
	v.hours.SetText(d.Hours)
	v.minutes.SetText(d.Minutes)
	v.seconds.SetText(d.Seconds)

	if r.Expired() {
		v.note.SetText(v.expiredText)
	} else {
		v.note.SetText(v.activeText)
	}
}

// ShowCountdownWindow opens the presale countdown. Only one window exists at a
// time; the tick subscription lives exactly as long as the window.
func (app *CompanionApp) ShowCountdownWindow() {
	if app.countdownWindow != nil {
		app.countdownWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenCountdown, config.LogKeyComponent, config.CompUI)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinCountdown))
	app.countdownWindow = w

	deadline := app.Deadline()
	lang := app.Lang()

	active := app.Catalog.MsgData(lang, config.TKeyPresaleActive, map[string]any{
		"Deadline": deadline.UTC().Format(config.DeadlineDisplayLayout),
	})

	view := &countdownView{
		days:        newValueLabel(),
		hours:       newValueLabel(),
		minutes:     newValueLabel(),
		seconds:     newValueLabel(),
		note:        widget.NewLabel(""),
		activeText:  active,
		expiredText: app.Catalog.Msg(lang, config.TKeyPresaleExpired),
	}
	app.countdownView = view
	view.note.Wrapping = fyne.TextWrapWord
	view.note.Alignment = fyne.TextAlignCenter

	card := func(value *widget.Label, unitKey string) fyne.CanvasObject {
		return widget.NewCard("", app.GetMsg(unitKey), value)
	}

	grid := container.NewGridWithColumns(config.LayoutColumnsCountdown,
		card(view.days, config.TKeyUnitDays),
		card(view.hours, config.TKeyUnitHours),
		card(view.minutes, config.TKeyUnitMinutes),
		card(view.seconds, config.TKeyUnitSeconds),
	)

	// First paint happens synchronously so the window never shows zeros
	// for a running presale.
	view.set(countdown.Calculate(deadline, app.Clock.Now()))

	w.SetContent(container.NewPadded(container.NewVBox(grid, view.note)))
	w.Resize(fyne.NewSize(config.CountdownWinWidth, config.CountdownWinHeight))

	sub := app.Ticker.Start(app.Ctx, deadline, func(r countdown.Remaining) {
		fyne.Do(func() { view.set(r) })
	})

	w.SetOnClosed(func() {
		sub.Cancel()
		app.countdownWindow = nil
		app.countdownView = nil
		slog.Debug(config.MsgTickerStop,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyDeadline, deadline.Format(time.RFC3339))
	})

	w.Show()
}

package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/relay"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	entryPort  *PortEntry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *CompanionApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.Window = w

	sw := app.buildSettingsWidgets()

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	// --- Relay ---
	relayForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblRelayUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblRelayPass), sw.passEntry),
	)
	relayCard := widget.NewCard(app.GetMsg(config.TKeyLblRelay), "", relayForm)

	// --- Actions ---
	saveAction := func() {
		// The port is the only field that blocks saving.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footer := widget.NewLabel(fmt.Sprintf("%s %s", config.AppName, config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		relayCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })
	w.Show()
}

// buildSettingsWidgets creates the inputs pre-filled from preferences and the keyring.
func (app *CompanionApp) buildSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.Catalog.Languages(), nil)
	sw.langSelect.SetSelected(app.Lang())

	sw.entryPort = NewPortEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, app.Server.Port))
	sw.entryPort.Validator = app.validatePort

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefRelayUser))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		sw.passEntry.SetText(relay.ResolvePassword(user, ""))
	}

	return sw
}

// validatePort wraps config.ValidatePort with translated messages.
func (app *CompanionApp) validatePort(s string) error {
	err := config.ValidatePort(s)
	if err == nil {
		return nil
	}

	switch err.Error() {
	case config.ErrPortRequired:
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	case config.ErrPortNumber:
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	default:
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
}

// saveSettings persists the values and refreshes the tray labels.
// A port change takes effect on the next start.
func (app *CompanionApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	app.Preferences.SetString(config.PrefRelayUser, sw.userEntry.Text)

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := relay.SavePassword(sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUISet)
		}
	}

	app.RefreshTrayMenu()
	w.Close()
}

package relay

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"

	"github.com/splshield/splshield-web/internal/config"
)

// ResolvePassword returns explicit when set, otherwise the password stored
// in the OS keyring for user. A missing entry yields an empty password.
func ResolvePassword(user, explicit string) string {
	if explicit != "" || user == "" {
		return explicit
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			slog.Warn(config.MsgPassFail,
				config.LogKeyComponent, config.CompRelay,
				config.LogKeyUser, user,
				config.LogKeyError, err,
			)
		}
		return ""
	}
	slog.Debug(config.MsgRelayKeyring,
		config.LogKeyComponent, config.CompRelay,
		config.LogKeyUser, user,
	)
	return pass
}

// SavePassword stores the relay password for user in the OS keyring.
func SavePassword(user, pass string) error {
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
	}
	return nil
}

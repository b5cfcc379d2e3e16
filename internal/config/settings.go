package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration read from the environment.
type Settings struct {
	BindAddr string `env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `env:"SERVER_PORT" env-default:"8080"`
	Language string `env:"DEFAULT_LANGUAGE" env-default:"en"`

	// PresaleDeadline pins the countdown to a fixed RFC 3339 instant.
	// When empty, PresaleAnnual ("MM-DDTHH:MM", UTC) is used instead.
	PresaleDeadline string        `env:"PRESALE_DEADLINE"`
	PresaleAnnual   string        `env:"PRESALE_ANNUAL" env-default:"01-06T18:00"`
	TickInterval    time.Duration `env:"TICK_INTERVAL" env-default:"1s"`

	ContactRate  float64 `env:"CONTACT_RATE" env-default:"1"`
	ContactBurst int     `env:"CONTACT_BURST" env-default:"3"`
	LogToFile    bool    `env:"LOG_TO_FILE" env-default:"true"`

	Links Links
	Relay Relay
}

// Links are the external destinations the site points to.
type Links struct {
	ScannerURL  string `env:"SCANNER_URL,APP_SCANNER_URL" env-default:"https://app.splshield.com"`
	ExchangeURL string `env:"EXCHANGE_URL,APP_EXCHANGE_URL" env-default:"https://presale.splshield.com"`
	APIURL      string `env:"API_URL,APP_API_URL" env-default:"https://api.splshield.com"`
	TelegramURL string `env:"TELEGRAM_URL" env-default:"https://t.me/SPLShieldOfficial"`
	DiscordURL  string `env:"DISCORD_URL" env-default:"https://discord.gg/HWyURyg6uH"`
}

// Relay configures forwarding of contact form messages.
type Relay struct {
	Enabled  bool   `env:"RELAY_ENABLED" env-default:"false"`
	User     string `env:"RELAY_USER"`
	Password string `env:"RELAY_PASSWORD"`
}

// Load reads an optional .env file, then the process environment.
// A missing env file is not an error; a malformed one is.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrEnvFile, err)
			}
		}
	}

	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}
	s.normalize()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// normalize trims values and restores defaults for blank links.
func (s *Settings) normalize() {
	trim := func(v *string, fallback string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			*v = fallback
		}
	}
	trim(&s.Links.ScannerURL, DefaultScannerURL)
	trim(&s.Links.ExchangeURL, DefaultExchangeURL)
	trim(&s.Links.APIURL, DefaultAPIURL)
	trim(&s.Links.TelegramURL, DefaultTelegramURL)
	trim(&s.Links.DiscordURL, DefaultDiscordURL)
	trim(&s.Port, DefaultPort)
	trim(&s.Language, DefaultLanguage)

	s.PresaleDeadline = strings.TrimSpace(s.PresaleDeadline)
	s.PresaleAnnual = strings.TrimSpace(s.PresaleAnnual)
	if s.TickInterval <= 0 {
		s.TickInterval = TickInterval
	}
}

// Validate checks the values that cannot be repaired with a default.
func (s *Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("unsupported language %q", s.Language)
	}
	if s.ContactRate <= 0 || s.ContactBurst <= 0 {
		return errors.New("contact rate and burst must be positive")
	}
	return nil
}

// ValidatePort reports whether p is a usable TCP port.
func ValidatePort(p string) error {
	if p == "" {
		return errors.New(ErrPortRequired)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if port < MinPort || port > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}

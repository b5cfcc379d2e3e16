// Package relay forwards accepted contact messages.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/splshield/splshield-web/internal/config"
)

// Message is a validated contact form submission.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Lang       string    `json:"lang,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// Relay delivers contact messages somewhere a human will read them.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// LogRelay only records the message. It is used when no relay is configured.
type LogRelay struct{}

// Send implements Relay.
func (LogRelay) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, config.MsgRelayStub,
		config.LogKeyComponent, config.CompRelay,
		config.LogKeyID, msg.ID,
		config.LogKeySubject, msg.Subject,
	)
	return nil
}

// HTTPRelay posts messages as JSON to the SPL Shield API.
type HTTPRelay struct {
	Client   *http.Client
	Endpoint string
	User     string
	Password string

	safeURL string
}

// NewHTTPRelay targets apiURL + "/v1/contact". Only http and https are accepted.
func NewHTTPRelay(apiURL, user, pass string) (*HTTPRelay, error) {
	u, err := url.Parse(strings.TrimRight(apiURL, "/") + config.RelayContactPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%s: missing host", config.ErrInvalidURL)
	}

	return &HTTPRelay{
		Client:   &http.Client{Timeout: config.HTTPTimeout},
		Endpoint: u.String(),
		User:     user,
		Password: pass,
		// Query strings may carry tokens and stay out of the logs.
		safeURL: u.Scheme + "://" + u.Host + u.Path,
	}, nil
}

// Send implements Relay. Any non-2xx answer is an error.
func (r *HTTPRelay) Send(ctx context.Context, msg Message) error {
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompRelay),
		slog.String(config.LogKeyURL, r.safeURL),
		slog.String(config.LogKeyID, msg.ID),
	)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRelayEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRelaySend, err)
	}
	req.Header.Set(config.HeaderContentType, config.MimeJSON)
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if r.User != "" || r.Password != "" {
		req.SetBasicAuth(r.User, r.Password)
	}

	start := time.Now()
	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRelaySend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, config.MaxRelayErrorBody))
		log.Warn(config.ErrRelayStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return fmt.Errorf("%s: %d %s", config.ErrRelayStatus, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	log.Info(config.MsgRelaySent,
		slog.Int(config.LogKeyStatus, resp.StatusCode),
		slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
	)
	return nil
}

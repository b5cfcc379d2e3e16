// Package site serves the SPL Shield landing pages, feeds and countdown API.
package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/content"
	"github.com/splshield/splshield-web/internal/countdown"
	"github.com/splshield/splshield-web/internal/feeds"
	"github.com/splshield/splshield-web/internal/locale"
	"github.com/splshield/splshield-web/internal/relay"
)

// Options configures a Server. Zero values fall back to sensible defaults
// except Schedule, Catalog and Site, which are required.
type Options struct {
	BindAddr     string
	Port         string
	Schedule     countdown.Schedule
	Clock        countdown.Clock
	TickInterval time.Duration
	Catalog      *locale.Catalog
	Site         *content.Site
	Relay        relay.Relay
	ContactRate  float64
	ContactBurst int
}

// Server renders the site into an in-memory snapshot and serves it.
type Server struct {
	BindAddr string
	Port     string

	// cache uses atomic.Pointer for lock-free reads. Pages are read on
	// every request but only replaced by Rebuild.
	cache atomic.Pointer[snapshot]

	schedule  countdown.Schedule
	clock     countdown.Clock
	ticker    *countdown.Ticker
	catalog   *locale.Catalog
	site      *content.Site
	relay     relay.Relay
	limiter   *rate.Limiter
	validate  *validator.Validate
	templates map[string]*template.Template
}

// New prepares a Server. Nothing is rendered until Rebuild is called.
func New(opts Options) (*Server, error) {
	if opts.Schedule == nil || opts.Catalog == nil || opts.Site == nil {
		return nil, errors.New("site: schedule, catalog and content are required")
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	if opts.BindAddr == "" {
		opts.BindAddr = config.DefaultBindAddr
	}
	if opts.Clock == nil {
		opts.Clock = countdown.RealClock{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = config.TickInterval
	}
	if opts.Relay == nil {
		opts.Relay = relay.LogRelay{}
	}
	if opts.ContactRate <= 0 {
		opts.ContactRate = config.DefaultContactRate
	}
	if opts.ContactBurst <= 0 {
		opts.ContactBurst = config.DefaultContactBurst
	}

	return &Server{
		BindAddr:  opts.BindAddr,
		Port:      opts.Port,
		schedule:  opts.Schedule,
		clock:     opts.Clock,
		ticker:    &countdown.Ticker{Clock: opts.Clock, Interval: opts.TickInterval},
		catalog:   opts.Catalog,
		site:      opts.Site,
		relay:     opts.Relay,
		limiter:   rate.NewLimiter(rate.Limit(opts.ContactRate), opts.ContactBurst),
		validate:  newValidator(),
		templates: templates,
	}, nil
}

// Handler returns the routing table of the site.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, instrument(config.MetricsRoutePage, s.handlePage))
	mux.HandleFunc(config.RouteCalendar, instrument(config.RouteCalendar, s.handleCalendar))
	mux.HandleFunc(config.RouteVCard, instrument(config.RouteVCard, s.handleCard))
	mux.HandleFunc(config.RouteAPICountdown, s.handleCountdown)
	mux.HandleFunc(config.RouteAPIStream, s.handleStream)
	mux.HandleFunc(config.RouteAPIContact, s.handleContact)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	mux.Handle(config.RouteMetrics, promhttp.Handler())
	return mux
}

// Start binds the listener and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	addr := s.BindAddr + config.AddrSeparator + s.Port
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: config.ServerReadTimeout,
		IdleTimeout: config.ServerIdleTimeout,
		// No WriteTimeout: countdown streams stay open for as long as the
		// visitor keeps the page.
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Deadline resolves the presale deadline for a new display.
func (s *Server) Deadline() time.Time {
	return s.schedule.Deadline(s.clock.Now())
}

// Rebuild renders every page in every language plus the feeds, then swaps
// the snapshot in one step. On error the previous snapshot stays live.
func (s *Server) Rebuild() error {
	start := time.Now()
	now := s.clock.Now()
	deadline := s.schedule.Deadline(now)

	segments, err := s.site.Tokenomics.Segments()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}

	snap := &snapshot{
		pages:    make(map[string]*cacheItem),
		deadline: deadline,
		builtAt:  now,
	}

	for _, lang := range s.catalog.Languages() {
		for _, p := range s.pages() {
			html, err := s.renderPage(p, lang, now, deadline, segments)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrRender, err)
			}
			snap.pages[pageKey(lang, p.route)] = newCacheItem(html, config.MimeTextHTML, lang, now)
		}
	}

	ics, err := feeds.PresaleCalendar(deadline, s.site.Roadmap, now)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	snap.calendar = newCacheItem(ics, config.MimeTextCalendar, "", now)

	vcf, err := feeds.SupportCard(feeds.CardInfo{
		Name:   config.VCardName,
		Org:    config.VCardOrg,
		Email:  config.SupportEmail,
		Social: []string{s.site.Links.TelegramURL, s.site.Links.DiscordURL},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	snap.card = newCacheItem(vcf, config.MimeTextVCard, "", now)

	s.cache.Store(snap)

	slog.Info(config.MsgSiteRendered,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPages, len(snap.pages),
		config.LogKeyDeadline, deadline.UTC().Format(time.RFC3339),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return nil
}

// Refresh re-renders the site every interval and right after the presale
// deadline passes, until ctx is cancelled. Failed rebuilds are logged and
// the previous snapshot keeps being served.
func (s *Server) Refresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.PageRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval.String())

	for {
		var expiry <-chan time.Time
		if snap := s.cache.Load(); snap != nil {
			if left := snap.deadline.Sub(s.clock.Now()); left > 0 && left < interval {
				expiry = time.After(left + time.Second)
			}
		}

		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
		case <-expiry:
		}

		if err := s.Rebuild(); err != nil {
			log.Error(config.ErrRender, config.LogKeyError, err)
		}
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	snap := s.cache.Load()
	if snap == nil {
		serveItem(w, r, nil)
		return
	}

	lang := s.catalog.Match(r.URL.Query().Get(config.QueryParamLang), r.Header.Get(config.HeaderAcceptLanguage))
	item, ok := snap.pages[pageKey(lang, r.URL.Path)]
	if !ok {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}
	serveItem(w, r, item)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	var item *cacheItem
	if snap := s.cache.Load(); snap != nil {
		item = snap.calendar
	}
	serveItem(w, r, item)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	var item *cacheItem
	if snap := s.cache.Load(); snap != nil {
		item = snap.card
	}
	serveItem(w, r, item)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.cache.Load() == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	_, _ = w.Write([]byte(config.HTTPMsgOK))
}

package site

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/content"
	"github.com/splshield/splshield-web/internal/countdown"
	"github.com/splshield/splshield-web/internal/locale"
	"github.com/splshield/splshield-web/internal/relay"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

var testDeadline = time.Date(2026, 1, 6, 18, 0, 0, 0, time.UTC)

// fixedClock always returns the same instant.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// steppingClock advances by step on every read.
type steppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newTestServer(t *testing.T, mutate func(*Options)) *Server {
	t.Helper()
	catalog, err := locale.NewCatalog(config.DefaultLanguage)
	require.NoError(t, err)

	opts := Options{
		Port:     "0",
		Schedule: countdown.Fixed(testDeadline),
		Clock:    fixedClock{t: testDeadline.Add(-(24*time.Hour + time.Second))},
		Catalog:  catalog,
		Site: content.New(config.Links{
			ScannerURL:  config.DefaultScannerURL,
			ExchangeURL: config.DefaultExchangeURL,
			APIURL:      config.DefaultAPIURL,
			TelegramURL: config.DefaultTelegramURL,
			DiscordURL:  config.DefaultDiscordURL,
		}),
		Relay:        relay.LogRelay{},
		ContactRate:  100,
		ContactBurst: 100,
	}
	if mutate != nil {
		mutate(&opts)
	}

	srv, err := New(opts)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, target string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// -----------------------------------------------------------------------------
// Construction
// -----------------------------------------------------------------------------

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	srv := newTestServer(t, func(o *Options) {
		o.BindAddr = ""
		o.Clock = nil
		o.Relay = nil
		o.ContactRate = 0
		o.ContactBurst = 0
	})

	assert.Equal(t, config.DefaultBindAddr, srv.BindAddr)
	assert.IsType(t, countdown.RealClock{}, srv.clock)
	assert.IsType(t, relay.LogRelay{}, srv.relay)
	assert.Equal(t, config.DefaultContactBurst, srv.limiter.Burst())
	assert.Equal(t, config.TickInterval, srv.ticker.Interval)
}

// -----------------------------------------------------------------------------
// Page cache
// -----------------------------------------------------------------------------

func TestHandler_Initializing(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	for _, route := range []string{config.RouteRoot, config.RouteCalendar, config.RouteVCard, config.RouteHealth} {
		resp := get(t, h, route, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, route)
		assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter), route)
	}
}

func TestRebuild_ServesEveryPage(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())
	h := srv.Handler()

	routes := []string{
		config.RouteRoot, config.RouteWhitepaper, config.RouteContact,
		config.RoutePrivacy, config.RouteTerms, config.RouteCookies, config.RouteDisclaimer,
	}
	for _, route := range routes {
		resp := get(t, h, route, nil)
		body := readBody(t, resp)

		assert.Equal(t, http.StatusOK, resp.StatusCode, route)
		assert.Equal(t, config.MimeTextHTML, resp.Header.Get(config.HeaderContentType), route)
		assert.Equal(t, "en", resp.Header.Get(config.HeaderContentLanguage), route)
		assert.NotEmpty(t, resp.Header.Get(config.HeaderETag), route)
		assert.Contains(t, body, "© 2026 SPL Shield", route)
	}

	snap := srv.cache.Load()
	require.NotNil(t, snap)
	assert.Len(t, snap.pages, len(routes)*len(config.SupportedLanguages))
	assert.Equal(t, testDeadline, snap.deadline)
}

func TestRebuild_HomeContent(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())

	body := readBody(t, get(t, srv.Handler(), config.RouteRoot, nil))

	assert.Contains(t, body, "The Complete Solana Security Ecosystem")
	assert.Contains(t, body, `<span id="cd-days">1</span>`)
	assert.Contains(t, body, `<span id="cd-seconds">01</span>`)
	assert.Contains(t, body, "January 6, 2026 at 18:00 UTC")
	assert.Contains(t, body, "0.1 SOL = 75,018.75 TDL")
	assert.Contains(t, body, "50,000+")
	assert.Contains(t, body, `data-start="25" data-end="45"`)
	assert.Contains(t, body, `data-status="in-progress"`, "Q1 2026 is running on January 5, 2026")
	assert.Contains(t, body, config.DefaultScannerURL)
}

func TestRebuild_ExpiredPresale(t *testing.T) {
	srv := newTestServer(t, func(o *Options) {
		o.Clock = fixedClock{t: testDeadline}
	})
	require.NoError(t, srv.Rebuild())

	body := readBody(t, get(t, srv.Handler(), config.RouteRoot, nil))
	assert.Contains(t, body, `<p id="cd-active" hidden>`)
	assert.Contains(t, body, `<p id="cd-expired">`)
	assert.Contains(t, body, `<span id="cd-hours">00</span>`)
}

func TestHandler_LanguageNegotiation(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())
	h := srv.Handler()

	tests := []struct {
		name    string
		target  string
		accept  string
		want    string
		snippet string
	}{
		{"Default", "/", "", "en", "Roadmap"},
		{"Query", "/?lang=fr", "", "fr", "Feuille de route"},
		{"Header", "/", "fr-FR,fr;q=0.9", "fr", "Feuille de route"},
		{"QueryBeatsHeader", "/?lang=en", "fr", "en", "Roadmap"},
		{"Unsupported", "/?lang=de", "ja", "en", "Roadmap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, h, tt.target, map[string]string{config.HeaderAcceptLanguage: tt.accept})
			body := readBody(t, resp)
			assert.Equal(t, tt.want, resp.Header.Get(config.HeaderContentLanguage))
			assert.Equal(t, config.HeaderAcceptLanguage, resp.Header.Get(config.HeaderVary))
			assert.Contains(t, body, tt.snippet)
			assert.Contains(t, body, `<html lang="`+tt.want+`">`)
		})
	}
}

func TestHandler_Caching(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())
	h := srv.Handler()

	first := get(t, h, config.RouteWhitepaper, nil)
	_ = first.Body.Close()
	etag := first.Header.Get(config.HeaderETag)
	lastMod := first.Header.Get(config.HeaderLastModified)
	require.NotEmpty(t, etag, "Server must provide an ETag")
	require.NotEmpty(t, lastMod)

	resp := get(t, h, config.RouteWhitepaper, map[string]string{config.HeaderIfNoneMatch: etag})
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, readBody(t, resp), "Body must be empty on 304 Not Modified")

	resp = get(t, h, config.RouteWhitepaper, map[string]string{config.HeaderIfModifiedSince: lastMod})
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	resp = get(t, h, config.RouteWhitepaper, map[string]string{config.HeaderIfNoneMatch: `"stale"`})
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())

	req := httptest.NewRequest(http.MethodHead, config.RouteRoot, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(config.HeaderETag))
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())
	h := srv.Handler()

	for _, route := range []string{config.RouteRoot, config.RouteCalendar, config.RouteAPICountdown, config.RouteAPIContact, config.RouteAPIStream} {
		method := http.MethodPost
		if route == config.RouteAPIContact {
			method = http.MethodGet
		}
		req := httptest.NewRequest(method, route, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, route)
		assert.NotEmpty(t, w.Header().Get(config.HeaderAllow), route)
	}
}

func TestHandler_NotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())

	resp := get(t, srv.Handler(), "/wp-admin", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Feeds(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())
	h := srv.Handler()

	resp := get(t, h, config.RouteCalendar, nil)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Empty(t, resp.Header.Get(config.HeaderContentLanguage))
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, config.ICalPresaleTitle)

	resp = get(t, h, config.RouteVCard, nil)
	body = readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextVCard, resp.Header.Get(config.HeaderContentType))
	assert.Contains(t, body, "BEGIN:VCARD")
	assert.Contains(t, body, config.SupportEmail)
}

func TestHandler_Health(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())

	resp := get(t, srv.Handler(), config.RouteHealth, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.HTTPMsgOK, readBody(t, resp))
}

func TestHandler_Metrics(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Rebuild())
	h := srv.Handler()

	before := testutil.ToFloat64(pageRequests.WithLabelValues(config.MetricsRoutePage, "200"))
	_ = get(t, h, config.RouteRoot, nil).Body.Close()
	after := testutil.ToFloat64(pageRequests.WithLabelValues(config.MetricsRoutePage, "200"))
	assert.Equal(t, before+1, after)

	body := readBody(t, get(t, h, config.RouteMetrics, nil))
	assert.Contains(t, body, "splshield_site_requests_total")
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RebuildRace swaps snapshots while readers hit the cache.
// Run this with `go test -race`.
func TestServer_RebuildRace(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()
	var wg sync.WaitGroup
	end := time.Now().Add(300 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for time.Now().Before(end) {
			if err := srv.Rebuild(); err != nil {
				t.Errorf("rebuild failed: %v", err)
				return
			}
		}
	}()

	for r := 0; r < 10; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Refresh worker
// -----------------------------------------------------------------------------

func TestRefresh_RebuildsUntilCancelled(t *testing.T) {
	clock := &steppingClock{now: testDeadline.Add(-48 * time.Hour), step: time.Minute}
	srv := newTestServer(t, func(o *Options) { o.Clock = clock })
	require.NoError(t, srv.Rebuild())
	first := srv.cache.Load()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Refresh(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return srv.cache.Load() != first }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Refresh did not stop on context cancellation")
	}
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := newTestServer(t, func(o *Options) {
		o.BindAddr = "127.0.0.1"
		o.Port = port
	})
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteHealth

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	require.NoError(t, srv.Rebuild())

	resp, err = http.Get("http://127.0.0.1:" + port + config.RouteRoot)
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<!DOCTYPE html>")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_StartRequiresPort(t *testing.T) {
	srv := newTestServer(t, func(o *Options) { o.Port = "" })
	assert.EqualError(t, srv.Start(context.Background()), config.ErrPortRequired)
}

// -----------------------------------------------------------------------------
// Countdown API
// -----------------------------------------------------------------------------

type countdownResponse struct {
	Status string           `json:"status"`
	Data   countdownPayload `json:"data"`
}

func TestHandler_Countdown(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	resp := get(t, h, config.RouteAPICountdown, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.CacheControlNoStore, resp.Header.Get(config.HeaderCacheControl))
	assert.Contains(t, resp.Header.Get(config.HeaderContentType), config.MimeJSON)

	var got countdownResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, config.StatusOK, got.Status)
	assert.Equal(t, countdown.Remaining{Active: true, Days: 1, Seconds: 1}, got.Data.Remaining)
	assert.Equal(t, countdown.Display{Days: "1", Hours: "00", Minutes: "00", Seconds: "01"}, got.Data.Display)
	assert.Equal(t, "2026-01-06T18:00:00Z", got.Data.Deadline)
}

func TestHandler_CountdownExpired(t *testing.T) {
	h := newTestServer(t, func(o *Options) {
		o.Clock = fixedClock{t: testDeadline.Add(time.Hour)}
	}).Handler()

	resp := get(t, h, config.RouteAPICountdown, nil)
	defer func() { _ = resp.Body.Close() }()

	var got countdownResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, countdown.Remaining{}, got.Data.Remaining)
	assert.Equal(t, "0", got.Data.Display.Days)
}

// readEvents collects the data lines of "tick" events until the stream ends.
func readEvents(t *testing.T, body io.Reader) []countdownPayload {
	t.Helper()
	var out []countdownPayload
	scanner := bufio.NewScanner(body)
	event := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: ") && event == config.SSEEventTick:
			var p countdownPayload
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &p))
			out = append(out, p)
		}
	}
	return out
}

func TestHandler_StreamEndsAfterExpiry(t *testing.T) {
	// One read resolves the deadline, then one per tick.
	clock := &steppingClock{now: testDeadline.Add(-3 * time.Second), step: time.Second}
	srv := newTestServer(t, func(o *Options) {
		o.Clock = clock
		o.TickInterval = 5 * time.Millisecond
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + config.RouteAPIStream)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeEventStream, resp.Header.Get(config.HeaderContentType))

	events := readEvents(t, resp.Body)
	require.Len(t, events, 3)
	assert.Equal(t, countdown.Remaining{Active: true, Seconds: 2}, events[0].Remaining)
	assert.Equal(t, countdown.Remaining{Active: true, Seconds: 1}, events[1].Remaining)
	assert.Equal(t, countdown.Remaining{}, events[2].Remaining)
	assert.Equal(t, "00", events[2].Display.Seconds)

	assert.Eventually(t, func() bool { return testutil.ToFloat64(openStreams) == 0 }, time.Second, time.Millisecond)
}

func TestHandler_StreamReleasedOnDisconnect(t *testing.T) {
	srv := newTestServer(t, func(o *Options) {
		o.TickInterval = 2 * time.Millisecond
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+config.RouteAPIStream, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	reader := bufio.NewReader(resp.Body)
	for i := 0; i < 5; i++ {
		_, err := reader.ReadString('\n')
		require.NoError(t, err)
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(openStreams))

	cancel()
	_ = resp.Body.Close()

	assert.Eventually(t, func() bool { return testutil.ToFloat64(openStreams) == 0 }, 2*time.Second, 5*time.Millisecond,
		"the subscription must be released when the client goes away")
}

func TestCountdownPayload_JSON(t *testing.T) {
	p := newCountdownPayload(countdown.Remaining{Active: true, Days: 12, Hours: 3, Minutes: 4, Seconds: 5}, testDeadline)
	data, err := json.Marshal(p)
	require.NoError(t, err)

	assert.JSONEq(t, fmt.Sprintf(`{
		"active": true, "days": 12, "hours": 3, "minutes": 4, "seconds": 5,
		"display": {"days": "12", "hours": "03", "minutes": "04", "seconds": "05"},
		"deadline": %q
	}`, "2026-01-06T18:00:00Z"), string(data))
}

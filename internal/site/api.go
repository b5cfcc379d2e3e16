package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/countdown"
)

// countdownPayload is the JSON form of one countdown value.
type countdownPayload struct {
	countdown.Remaining
	Display  countdown.Display `json:"display"`
	Deadline string            `json:"deadline"`
}

func newCountdownPayload(r countdown.Remaining, deadline time.Time) countdownPayload {
	return countdownPayload{
		Remaining: r,
		Display:   r.Display(),
		Deadline:  deadline.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	deadline := s.Deadline()
	remaining := countdown.Calculate(deadline, s.clock.Now())

	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	render.JSON(w, r, OK(newCountdownPayload(remaining, deadline)))
}

// handleStream pushes one "tick" event per interval over Server-Sent Events.
// The countdown subscription lives exactly as long as the connection, and
// the stream ends after the expired value has been sent.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set(config.HeaderAllow, http.MethodGet)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, config.ErrStreaming, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeEventStream)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.Header().Set(config.HeaderConnection, config.ConnectionKeepAlive)
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, config.SSEFormatRetry, config.SSERetryMillis)
	flusher.Flush()

	deadline := s.Deadline()
	log := slog.With(
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRemote, r.RemoteAddr,
	)

	ctx, cancel := context.WithCancel(r.Context())
	values := make(chan countdown.Remaining, config.ChannelBufferSize)
	sub := s.ticker.Start(ctx, deadline, func(v countdown.Remaining) {
		select {
		case values <- v:
		case <-ctx.Done():
		}
	})
	// cancel runs first so a handler blocked on values is released before
	// Cancel waits for the subscription to finish.
	defer sub.Cancel()
	defer cancel()

	openStreams.Inc()
	defer openStreams.Dec()
	log.Debug(config.MsgStreamOpen)
	defer log.Debug(config.MsgStreamClosed)

	for {
		select {
		case <-ctx.Done():
			return
		case v := <-values:
			data, err := json.Marshal(newCountdownPayload(v, deadline))
			if err != nil {
				log.Error(config.ErrWriteResp, config.LogKeyError, err)
				return
			}
			if _, err := fmt.Fprintf(w, config.SSEFormatEvent, config.SSEEventTick, data); err != nil {
				return
			}
			flusher.Flush()
			if v.Expired() {
				return
			}
		}
	}
}

package site

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/relay"
)

// contactRequest is the body of POST /api/contact.
type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

func (c *contactRequest) trim() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set(config.HeaderAllow, config.AllowedPostMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	log := slog.With(
		config.LogKeyComponent, config.CompContact,
		config.LogKeyRemote, r.RemoteAddr,
	)

	if !s.limiter.Allow() {
		log.Warn(config.MsgContactLimited)
		contactSubmissions.WithLabelValues(outcomeLimited).Inc()
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, Error(config.HTTPMsgTooMany))
		return
	}

	var req contactRequest
	body := http.MaxBytesReader(w, r.Body, config.MaxContactBodySize)
	if err := render.DecodeJSON(body, &req); err != nil {
		log.Warn(config.MsgContactInvalid, config.LogKeyError, err)
		contactSubmissions.WithLabelValues(outcomeInvalid).Inc()
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error(config.HTTPMsgInvalidBody))
		return
	}
	req.trim()

	if err := s.validate.Struct(req); err != nil {
		log.Warn(config.MsgContactInvalid, config.LogKeyError, err)
		contactSubmissions.WithLabelValues(outcomeInvalid).Inc()
		render.Status(r, http.StatusUnprocessableEntity)

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.JSON(w, r, ValidationError(verrs))
			return
		}
		render.JSON(w, r, Error(config.HTTPMsgInvalidBody))
		return
	}

	lang := s.catalog.Match(r.URL.Query().Get(config.QueryParamLang), r.Header.Get(config.HeaderAcceptLanguage))
	msg := relay.Message{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Message:    req.Message,
		Lang:       lang,
		ReceivedAt: s.clock.Now().UTC(),
	}
	log = log.With(config.LogKeyID, msg.ID)

	if err := s.relay.Send(r.Context(), msg); err != nil {
		log.Error(config.ErrRelaySend, config.LogKeyError, err)
		contactSubmissions.WithLabelValues(outcomeFailed).Inc()
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Error(config.HTTPMsgRelayFailed))
		return
	}

	log.Info(config.MsgContactOK)
	contactSubmissions.WithLabelValues(outcomeAccepted).Inc()
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, OK(map[string]any{
		"id":      msg.ID,
		"message": s.catalog.Msg(lang, config.TKeyFormSent),
	}))
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/exporter"
	"github.com/AnshRaj112/ytsummary-backend/internal/generator"
	"github.com/AnshRaj112/ytsummary-backend/internal/services"
	"github.com/AnshRaj112/ytsummary-backend/internal/session"
	"github.com/AnshRaj112/ytsummary-backend/internal/store"
	"github.com/AnshRaj112/ytsummary-backend/internal/transcript"
	"github.com/AnshRaj112/ytsummary-backend/internal/translator"
	"github.com/AnshRaj112/ytsummary-backend/pkg/utils"
)

// SessionCookie carries the opaque session token.
const SessionCookie = "session_token"

// SessionStore persists session.State between requests.
type SessionStore interface {
	Create(ctx context.Context, st session.State) (string, error)
	Load(ctx context.Context, token string) (session.State, error)
	Save(ctx context.Context, token string, st session.State) error
	Delete(ctx context.Context, token string) error
}

type Handler struct {
	orch         *session.Orchestrator
	sessions     SessionStore
	logger       *zap.Logger
	secureCookie bool
	cookieTTL    time.Duration
}

// New builds the HTTP handlers. secure marks the session cookie Secure; a
// zero ttl makes it a browser-session cookie.
func New(orch *session.Orchestrator, sessions SessionStore, logger *zap.Logger, secure bool, ttl time.Duration) *Handler {
	return &Handler{
		orch:         orch,
		sessions:     sessions,
		logger:       logger,
		secureCookie: secure,
		cookieTTL:    ttl,
	}
}

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func decode(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return errBadBody
	}
	return nil
}

// decodeOptional accepts an empty body and leaves dest untouched.
func decodeOptional(r *http.Request, dest interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dest)
	if err != nil && !errors.Is(err, io.EOF) {
		return errBadBody
	}
	return nil
}

var errBadBody = errors.New("invalid request body")

// statusFor maps component errors onto HTTP statuses and the message shown
// to the client. Internal details of 5xx errors are not exposed.
func statusFor(err error) (int, string) {
	var (
		validation *utils.ValidationError
		fetchErr   *transcript.FetchError
		genErr     *generator.GenerationError
		trErr      *translator.TranslationError
		exportErr  *exporter.ExportError
	)

	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, transcript.ErrInvalidLink),
		errors.Is(err, session.ErrInvalidMode),
		errors.Is(err, session.ErrEmptyPassword),
		errors.Is(err, session.ErrNoTranscript),
		errors.Is(err, session.ErrNoContent),
		errors.Is(err, session.ErrNoTranslation),
		errors.Is(err, generator.ErrInvalidWordCount),
		errors.Is(err, generator.ErrUnknownKind),
		errors.Is(err, translator.ErrUnsupportedLanguage):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.Is(err, session.ErrWrongScreen):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, store.ErrAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, session.ErrArchiveDisabled):
		return http.StatusServiceUnavailable, err.Error()
	case errors.As(err, &fetchErr):
		switch fetchErr.Kind {
		case transcript.NotFound:
			return http.StatusNotFound, fetchErr.Error()
		case transcript.Unavailable:
			return http.StatusUnprocessableEntity, fetchErr.Error()
		}
		return http.StatusBadGateway, "Error fetching transcript"
	case errors.As(err, &genErr):
		return http.StatusBadGateway, "Error generating content"
	case errors.As(err, &trErr):
		return http.StatusBadGateway, "Error translating content"
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError, "Error creating PDF"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}
	writeJSON(w, status, Response{Success: false, Message: message})
}

// load returns the caller's session, starting a new one when the cookie is
// missing or the stored session has expired.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (string, session.State, error) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		st, err := h.sessions.Load(r.Context(), c.Value)
		if err == nil {
			return c.Value, st, nil
		}
		if !errors.Is(err, services.ErrSessionNotFound) {
			return "", session.State{}, err
		}
	}

	st := session.New()
	token, err := h.sessions.Create(r.Context(), st)
	if err != nil {
		return "", session.State{}, err
	}
	h.setCookie(w, token)
	return token, st, nil
}

func (h *Handler) save(r *http.Request, token string, st session.State) error {
	return h.sessions.Save(r.Context(), token, st)
}

func (h *Handler) setCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookieTTL > 0 {
		c.MaxAge = int(h.cookieTTL.Seconds())
	}
	http.SetCookie(w, c)
}

func (h *Handler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/generator"
	"github.com/AnshRaj112/ytsummary-backend/internal/models"
	"github.com/AnshRaj112/ytsummary-backend/internal/session"
	"github.com/AnshRaj112/ytsummary-backend/internal/translator"
)

// Credentials is the body of every sign-in and sign-up request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ModeRequest struct {
	Mode session.AuthMode `json:"mode"`
}

// Options lists the choices a client can offer on the user screen.
type Options struct {
	AuthModes     []session.AuthMode   `json:"auth_modes"`
	ContentTypes  []models.ContentKind `json:"content_types"`
	Languages     []string             `json:"languages"`
	MinWordCount  int                  `json:"min_word_count"`
	MaxWordCount  int                  `json:"max_word_count"`
	WordCountStep int                  `json:"word_count_step"`
	ArchiveExport bool                 `json:"archive_export"`
}

type SessionView struct {
	Session session.State `json:"session"`
	Options Options       `json:"options"`
}

// GetSession returns the current state, creating a session if needed.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	_, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "", SessionView{
		Session: st,
		Options: Options{
			AuthModes:     []session.AuthMode{session.ModeLogin, session.ModeSignup, session.ModeAdminLogin},
			ContentTypes:  models.ContentKinds,
			Languages:     translator.Languages,
			MinWordCount:  generator.MinWordCount,
			MaxWordCount:  generator.MaxWordCount,
			WordCountStep: generator.WordCountStep,
			ArchiveExport: h.orch.ArchiveEnabled(),
		},
	})
}

func (h *Handler) SelectMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, err := h.orch.SelectMode(st, req.Mode)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "", next)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, err := h.orch.Login(r.Context(), st, req.Email, req.Password)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "Logged in successfully!", next)
}

// Signup registers the account and leaves the session on the login form.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, err := h.orch.Signup(r.Context(), st, req.Email, req.Password)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("account created", zap.String("email", req.Email))
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Account created successfully! Please login.",
		Data:    next,
	})
}

func (h *Handler) AdminSignin(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, err := h.orch.AdminLogin(st, req.Email, req.Password)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "Admin logged in successfully!", next)
}

// Logout drops the stored session and the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.orch.Logout(st); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.sessions.Delete(r.Context(), token); err != nil {
		h.fail(w, r, err)
		return
	}
	h.clearCookie(w)
	writeOK(w, "Logged out", session.New())
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
	"github.com/AnshRaj112/ytsummary-backend/internal/session"
)

type VideoRequest struct {
	Link string `json:"link"`
}

type VideoResponse struct {
	Video   session.Video `json:"video"`
	Session session.State `json:"session"`
}

type GenerateRequest struct {
	ContentType models.ContentKind `json:"content_type"`
	WordCount   int                `json:"word_count,omitempty"`
}

type TranslateRequest struct {
	Language string `json:"language"`
}

type SaveRequest struct {
	Translated bool `json:"translated"`
}

type ArchiveResponse struct {
	URL string `json:"url"`
}

// SubmitVideo parses the link and fetches its transcript.
func (h *Handler) SubmitVideo(w http.ResponseWriter, r *http.Request) {
	var req VideoRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// A failed link still replaces the stored state: it no longer holds a video.
	next, video, err := h.orch.SubmitLink(r.Context(), st, req.Link)
	if saveErr := h.save(r, token, next); err == nil {
		err = saveErr
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "", VideoResponse{Video: video, Session: next})
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, err := h.orch.Generate(r.Context(), st, req.ContentType, req.WordCount)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "", next)
}

func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, err := h.orch.Translate(r.Context(), st, req.Language)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "", next)
}

// Export streams the PDF of the current generated content.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, doc, err := h.orch.Export(st)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Data)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	token, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	next, url, err := h.orch.Archive(r.Context(), st)
	if err == nil {
		err = h.save(r, token, next)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "PDF archived", ArchiveResponse{URL: url})
}

// Save stores the generated content, or its translation, for the user.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := decodeOptional(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	_, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	_, record, err := h.orch.Save(r.Context(), st, req.Translated)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: "Content saved", Data: record})
}

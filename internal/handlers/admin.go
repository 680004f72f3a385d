package handlers

import "net/http"

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	_, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	users, err := h.orch.AdminUsers(r.Context(), st)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "", users)
}

func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	_, st, err := h.load(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	content, err := h.orch.AdminContent(r.Context(), st)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, "", content)
}

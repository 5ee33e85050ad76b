package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/blink-new/overlay-composer/internal/models"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.store.List())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail routes /api/sessions/{id} and its sub-resources
// (frame, overlays, export).
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" {
		h.writeError(w, "Composition id required", http.StatusBadRequest)
		return
	}

	comp, ok := h.getCompositionOrError(w, id)
	if !ok {
		return
	}

	switch {
	case rest == "":
		h.handleSession(w, r, comp)
	case rest == "frame":
		h.handleFrame(w, r, comp)
	case rest == "overlays":
		h.handleOverlays(w, r, comp)
	case strings.HasPrefix(rest, "overlays/"):
		h.handleOverlayDetail(w, r, comp, strings.TrimPrefix(rest, "overlays/"))
	case rest == "export":
		h.handleExport(w, r, comp)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request, comp models.Composition) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, comp)
	case "DELETE":
		h.store.Delete(comp.ID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleFrame(w http.ResponseWriter, r *http.Request, comp models.Composition) {
	if r.Method != "PUT" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var frame models.DisplayFrame
	if err := json.NewDecoder(r.Body).Decode(&frame); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		h.writeError(w, "Frame dimensions must be positive", http.StatusBadRequest)
		return
	}

	if err := h.store.SetFrame(comp.ID, frame); err != nil {
		h.writeError(w, "Composition not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, frame)
}

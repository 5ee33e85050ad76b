package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/blink-new/overlay-composer/internal/compositor"
	"github.com/blink-new/overlay-composer/internal/models"
	"github.com/blink-new/overlay-composer/internal/storage"
)

func (h *Handler) handleOverlays(w http.ResponseWriter, r *http.Request, comp models.Composition) {
	switch r.Method {
	case "POST":
		h.handleDrop(w, r, comp)
	case "DELETE":
		if err := h.store.ClearOverlays(comp.ID); err != nil {
			h.writeError(w, "Composition not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDrop turns a catalog record dropped at a display-space point into
// an overlay placement.
func (h *Handler) handleDrop(w http.ResponseWriter, r *http.Request, comp models.Composition) {
	var request struct {
		Record models.ImageRecord `json:"record"`
		DropX  float64            `json:"drop_x"`
		DropY  float64            `json:"drop_y"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Record.ImageURL == "" {
		h.writeError(w, "record.image_url is required", http.StatusBadRequest)
		return
	}

	placement := compositor.NewPlacement(request.Record, request.DropX, request.DropY)
	if err := h.store.AddOverlay(comp.ID, placement); err != nil {
		h.writeError(w, "Composition not found", http.StatusNotFound)
		return
	}

	slog.Info("Overlay placed", "composition", comp.ID, "overlay", placement.ID, "source", placement.SourceURL)
	h.writeJSON(w, placement)
}

func (h *Handler) handleOverlayDetail(w http.ResponseWriter, r *http.Request, comp models.Composition, overlayID string) {
	if r.Method != "DELETE" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.store.RemoveOverlay(comp.ID, overlayID); err != nil {
		if errors.Is(err, storage.ErrOverlayNotFound) {
			h.writeError(w, "Overlay not found", http.StatusNotFound)
		} else {
			h.writeError(w, "Composition not found", http.StatusNotFound)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

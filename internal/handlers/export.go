package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/blink-new/overlay-composer/internal/compositor"
	"github.com/blink-new/overlay-composer/internal/images"
	"github.com/blink-new/overlay-composer/internal/models"
	"github.com/blink-new/overlay-composer/internal/storage"
)

// handleExport flattens the composition and streams the result as a
// downloadable image. A broken overlay source aborts the whole export.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, comp models.Composition) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Watermark bool `json:"watermark"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(comp.BaseImage) == 0 {
		h.writeError(w, "Composition has no base image", http.StatusBadRequest)
		return
	}

	if err := h.store.BeginExport(comp.ID); err != nil {
		if errors.Is(err, storage.ErrExportInProgress) {
			h.writeError(w, "Export already in progress", http.StatusConflict)
		} else {
			h.writeError(w, "Composition not found", http.StatusNotFound)
		}
		return
	}
	defer h.store.EndExport(comp.ID)

	baseBytes := comp.BaseImage
	if request.Watermark && len(comp.WatermarkedBase) > 0 {
		baseBytes = comp.WatermarkedBase
	}

	base, err := images.Decode(baseBytes)
	if err != nil {
		h.writeError(w, "Base image unreadable: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	flat, err := compositor.Flatten(r.Context(), base, comp.Frame, comp.Overlays, h.fetcher.Resolve)
	if err != nil {
		h.writeError(w, "Export failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename=`+compositor.ExportFilename)
	if err := compositor.Encode(w, flat); err != nil {
		slog.Error("Unable to write export", "composition", comp.ID, "err", err)
		return
	}

	slog.Info("Export complete", "composition", comp.ID, "overlays", len(comp.Overlays),
		"width", flat.Bounds().Dx(), "height", flat.Bounds().Dy(), "watermark", request.Watermark)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blink-new/overlay-composer/internal/compositor"
	"github.com/blink-new/overlay-composer/internal/images"
	"github.com/blink-new/overlay-composer/internal/models"
)

const maxUploadBytes = 10 * 1024 * 1024

// HandleUpload sets the base image of a composition, either creating a
// new composition or replacing the base (and clearing the overlays) of an
// existing one.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with image URL
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLUpload(w, r)
		return
	}

	// Handle file upload
	h.handleFileUpload(w, r)
}

func (h *Handler) handleURLUpload(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL  string `json:"image_url"`
		SessionID string `json:"session"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	data, err := h.fetcher.Download(r.Context(), request.ImageURL)
	if err != nil {
		h.writeError(w, "Failed to fetch image URL: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.finishUpload(r.Context(), w, request.SessionID, data)
}

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("files")
	if err != nil {
		file, _, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	sessionID := r.FormValue("session")

	// Read fully into memory, bounded
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(data) >= maxUploadBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	h.finishUpload(r.Context(), w, sessionID, data)
}

// finishUpload validates the image, stamps the watermarked copy, and
// stores the new base. Replacing an existing base clears its overlays.
func (h *Handler) finishUpload(ctx context.Context, w http.ResponseWriter, sessionID string, data []byte) {
	img, err := images.Decode(data)
	if err != nil {
		h.writeError(w, "Unreadable image: "+err.Error(), http.StatusBadRequest)
		return
	}
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	stamped := h.stamper.Apply(ctx, img)
	var buf bytes.Buffer
	if err := compositor.Encode(&buf, stamped); err != nil {
		h.writeError(w, "Failed to encode watermarked copy: "+err.Error(), http.StatusInternalServerError)
		return
	}

	created := false
	if sessionID == "" {
		sessionID = fmt.Sprintf("comp_%d", time.Now().UnixNano())
		comp := &models.Composition{
			ID:        sessionID,
			CreatedAt: time.Now(),
			// Until the client reports its rendered frame, placements are
			// taken to be in native coordinates.
			Frame: models.DisplayFrame{Width: float64(width), Height: float64(height)},
		}
		h.store.Create(comp)
		created = true
	}

	if err := h.store.SetBase(sessionID, data, buf.Bytes(), width, height); err != nil {
		h.writeError(w, "Composition not found", http.StatusNotFound)
		return
	}

	response := map[string]any{
		"session_id":  sessionID,
		"created":     created,
		"base_width":  width,
		"base_height": height,
	}
	h.writeJSON(w, response)
}

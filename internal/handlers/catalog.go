package handlers

import (
	"net/http"
	"os"
)

// HandleCatalog proxies a catalog sheet to the client. The source comes
// from the src query parameter, falling back to the CATALOG_URL
// environment variable. Fetch failures surface one error response; there
// is no retry.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	src := r.URL.Query().Get("src")
	if src == "" {
		src = os.Getenv("CATALOG_URL")
	}
	if src == "" {
		h.writeError(w, "src query parameter is required", http.StatusBadRequest)
		return
	}

	records, err := h.catalog.Fetch(r.Context(), src)
	if err != nil {
		h.writeError(w, "Failed to load catalog: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

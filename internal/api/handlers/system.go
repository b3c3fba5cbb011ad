package handlers

import (
	"net/http"

	"github.com/ramonehamilton/mtg-cardfilter/internal/api/response"
)

// SystemHandler handles system-related API requests.
type SystemHandler struct {
	catalog CardSearcher
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(catalog CardSearcher) *SystemHandler {
	return &SystemHandler{catalog: catalog}
}

// GetStats returns catalog size and search statistics.
func (h *SystemHandler) GetStats(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]any{
		"cards":  h.catalog.Count(),
		"search": h.catalog.Metrics().GetStats(),
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/mtg-cardfilter/internal/api/response"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
)

// CardHandler handles card-related API requests.
type CardHandler struct {
	searcher *Searcher
	opts     filter.DecodeOptions
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(searcher *Searcher, opts filter.DecodeOptions) *CardHandler {
	return &CardHandler{searcher: searcher, opts: opts}
}

// SearchRequest is the body of a card search.
type SearchRequest struct {
	Filter json.RawMessage `json:"filter"`
	Limit  int             `json:"limit,omitempty"`
}

// SearchCards returns the cards matching a filter tree.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	f := decodeFilter(w, h.opts, req.Filter)
	if f == nil {
		return
	}
	h.searcher.run(w, r, f, req.Limit)
}

// GetCardByName finds cards by exact or approximate name.
func (h *CardHandler) GetCardByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, errors.New("card name is required"))
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	found := h.searcher.catalog.FindByName(name, limit)
	if len(found) == 0 {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	response.Success(w, found)
}

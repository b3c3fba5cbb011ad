package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/mtg-cardfilter/internal/api/response"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
	"github.com/ramonehamilton/mtg-cardfilter/internal/storage/models"
	"github.com/ramonehamilton/mtg-cardfilter/internal/storage/repository"
)

var errNoStorage = errors.New("saved filters are not available without a database")

// FilterHandler handles filter validation and saved filter requests.
type FilterHandler struct {
	repo     repository.FilterRepository
	searcher *Searcher
	opts     filter.DecodeOptions
}

// NewFilterHandler creates a new FilterHandler. repo may be nil, in which
// case the saved filter endpoints answer 503.
func NewFilterHandler(repo repository.FilterRepository, searcher *Searcher, opts filter.DecodeOptions) *FilterHandler {
	return &FilterHandler{repo: repo, searcher: searcher, opts: opts}
}

// ValidatedFilter is the canonical form of a decoded filter.
type ValidatedFilter struct {
	Filter  json.RawMessage `json:"filter"`
	Summary string          `json:"summary"`
}

// SaveFilterRequest is the body of a create or update request.
type SaveFilterRequest struct {
	Name   string          `json:"name"`
	Filter json.RawMessage `json:"filter"`
}

// ValidateFilter decodes the request body as a filter tree and returns it in
// canonical form.
func (h *FilterHandler) ValidateFilter(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	f := decodeFilter(w, h.opts, raw)
	if f == nil {
		return
	}
	data, err := filter.Marshal(f)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, ValidatedFilter{Filter: data, Summary: f.String()})
}

// ListFilters returns every saved filter.
func (h *FilterHandler) ListFilters(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	saved, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if saved == nil {
		saved = []*models.SavedFilter{}
	}
	response.Success(w, saved)
}

// CreateFilter saves a new named filter.
func (h *FilterHandler) CreateFilter(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	req, f := h.decodeSave(w, r)
	if f == nil {
		return
	}

	saved, err := h.repo.Create(r.Context(), req.Name, f)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	response.Created(w, saved)
}

// GetFilter returns a saved filter by ID.
func (h *FilterHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	saved, err := h.repo.Get(r.Context(), chi.URLParam(r, "filterID"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	response.Success(w, saved)
}

// UpdateFilter replaces the name and tree of a saved filter.
func (h *FilterHandler) UpdateFilter(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	req, f := h.decodeSave(w, r)
	if f == nil {
		return
	}

	saved, err := h.repo.Update(r.Context(), chi.URLParam(r, "filterID"), req.Name, f)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	response.Success(w, saved)
}

// DeleteFilter removes a saved filter.
func (h *FilterHandler) DeleteFilter(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "filterID")); err != nil {
		writeRepoError(w, err)
		return
	}
	response.NoContent(w)
}

// SearchWithFilter evaluates a saved filter over the catalog.
func (h *FilterHandler) SearchWithFilter(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	saved, err := h.repo.Get(r.Context(), chi.URLParam(r, "filterID"))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	// The body is optional and may arrive chunked
	var req struct {
		Limit int `json:"limit"`
	}
	if r.Body != nil && r.Body != http.NoBody {
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(w, errors.New("invalid request body"))
			return
		}
	}
	limit := req.Limit
	h.searcher.run(w, r, saved.Filter, limit)
}

func (h *FilterHandler) available(w http.ResponseWriter) bool {
	if h.repo == nil {
		response.ServiceUnavailable(w, errNoStorage)
		return false
	}
	return true
}

func (h *FilterHandler) decodeSave(w http.ResponseWriter, r *http.Request) (*SaveFilterRequest, filter.Filter) {
	var req SaveFilterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return nil, nil
	}
	return &req, decodeFilter(w, h.opts, req.Filter)
}

func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(w, err)
	case errors.Is(err, repository.ErrDuplicateName):
		response.Conflict(w, err)
	case errors.Is(err, repository.ErrEmptyName):
		response.BadRequest(w, err)
	default:
		response.InternalError(w, err)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/ramonehamilton/mtg-cardfilter/internal/api/response"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// ManaHandler handles mana cost API requests.
type ManaHandler struct{}

// NewManaHandler creates a new ManaHandler.
func NewManaHandler() *ManaHandler {
	return &ManaHandler{}
}

// ParseCostRequest is the body of a parse request.
type ParseCostRequest struct {
	Cost string `json:"cost"`
}

// SymbolInfo describes one symbol of a parsed cost.
type SymbolInfo struct {
	Text   string       `json:"text"`
	Kind   string       `json:"kind"`
	Value  *float64     `json:"value"` // nil for {∞}
	Colors []mana.Color `json:"colors,omitempty"`
}

// CostInfo is the breakdown of a parsed cost.
type CostInfo struct {
	Cost      string             `json:"cost"`
	CMC       *float64           `json:"cmc"` // nil when infinite
	Infinite  bool               `json:"infinite,omitempty"`
	Colors    []mana.Color       `json:"colors"`
	Intensity map[string]float64 `json:"intensity"`
	Symbols   []SymbolInfo       `json:"symbols"`
}

// ParseCost parses a mana cost and returns its canonical form.
func (h *ManaHandler) ParseCost(w http.ResponseWriter, r *http.Request) {
	var req ParseCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	cost, err := mana.ParseCost(req.Cost)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	response.Success(w, DescribeCost(cost))
}

// DescribeCost builds the JSON breakdown of cost.
func DescribeCost(cost mana.Cost) *CostInfo {
	info := &CostInfo{
		Cost:      cost.String(),
		CMC:       finite(cost.CMC()),
		Infinite:  math.IsInf(cost.CMC(), 1),
		Colors:    cost.Colors(),
		Intensity: make(map[string]float64),
		Symbols:   make([]SymbolInfo, 0, cost.Len()),
	}
	if info.Colors == nil {
		info.Colors = []mana.Color{}
	}

	in := cost.Intensity()
	for _, c := range mana.Colors() {
		if v := in.Of(c); v > 0 {
			info.Intensity[c.Letter()] = v
		}
	}
	for _, s := range cost.Symbols() {
		info.Symbols = append(info.Symbols, SymbolInfo{
			Text:   s.String(),
			Kind:   s.Kind().String(),
			Value:  finite(s.Value()),
			Colors: s.Colors(),
		})
	}
	return info
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

package cards

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// ScryfallCard represents the Scryfall card object as found in bulk data
// files. Only the fields the filter engine reads are decoded.
type ScryfallCard struct {
	ID              string             `json:"id"`
	ArenaID         int                `json:"arena_id"`
	Name            string             `json:"name"`
	Layout          string             `json:"layout"`
	ManaCost        string             `json:"mana_cost"`
	TypeLine        string             `json:"type_line"`
	OracleText      string             `json:"oracle_text,omitempty"`
	PrintedText     string             `json:"printed_text,omitempty"`
	FlavorText      string             `json:"flavor_text,omitempty"`
	Power           string             `json:"power,omitempty"`
	Toughness       string             `json:"toughness,omitempty"`
	Loyalty         string             `json:"loyalty,omitempty"`
	Colors          []string           `json:"colors"`
	ColorIdentity   []string           `json:"color_identity"`
	Set             string             `json:"set"`
	SetName         string             `json:"set_name"`
	Block           string             `json:"block,omitempty"`
	CollectorNumber string             `json:"collector_number"`
	Rarity          string             `json:"rarity"`
	Artist          string             `json:"artist,omitempty"`
	Legalities      map[string]string  `json:"legalities"`
	CardFaces       []ScryfallCardFace `json:"card_faces,omitempty"`
}

// ScryfallCardFace represents a face of a multi-faced card in Scryfall format.
type ScryfallCardFace struct {
	Name        string   `json:"name"`
	ManaCost    string   `json:"mana_cost"`
	TypeLine    string   `json:"type_line"`
	OracleText  string   `json:"oracle_text"`
	PrintedText string   `json:"printed_text,omitempty"`
	FlavorText  string   `json:"flavor_text,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Power       string   `json:"power,omitempty"`
	Toughness   string   `json:"toughness,omitempty"`
	Loyalty     string   `json:"loyalty,omitempty"`
	Artist      string   `json:"artist,omitempty"`
}

// supertypes lists the words that may precede card types on a type line.
var supertypes = map[string]bool{
	"Basic":     true,
	"Legendary": true,
	"Ongoing":   true,
	"Snow":      true,
	"World":     true,
	"Elite":     true,
	"Host":      true,
}

// ToCard converts a ScryfallCard to our internal Card representation.
// Malformed mana costs or colors are reported as errors.
func (sc *ScryfallCard) ToCard() (*Card, error) {
	identity, err := parseColors(sc.ColorIdentity)
	if err != nil {
		return nil, fmt.Errorf("card %q color identity: %w", sc.Name, err)
	}

	card := &Card{
		ArenaID:         sc.ArenaID,
		ScryfallID:      sc.ID,
		Name:            sc.Name,
		Layout:          sc.Layout,
		Rarity:          sc.Rarity,
		SetCode:         sc.Set,
		SetName:         sc.SetName,
		Block:           sc.Block,
		CollectorNumber: sc.CollectorNumber,
		ColorIdentity:   mana.SortColors(identity),
	}

	// Handle legalities
	if len(sc.Legalities) > 0 {
		card.Legalities = make(map[string]Legality, len(sc.Legalities))
		for format, status := range sc.Legalities {
			card.Legalities[strings.ToLower(format)] = Legality(status)
		}
	}

	// Single-faced cards carry everything at the top level
	if len(sc.CardFaces) == 0 {
		face, err := newFace(ScryfallCardFace{
			Name:        sc.Name,
			ManaCost:    sc.ManaCost,
			TypeLine:    sc.TypeLine,
			OracleText:  sc.OracleText,
			PrintedText: sc.PrintedText,
			FlavorText:  sc.FlavorText,
			Colors:      sc.Colors,
			Power:       sc.Power,
			Toughness:   sc.Toughness,
			Loyalty:     sc.Loyalty,
			Artist:      sc.Artist,
		})
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", sc.Name, err)
		}
		card.Faces = []*Face{face}
		return card, nil
	}

	// Split and adventure faces have no colors of their own
	for _, f := range sc.CardFaces {
		if f.Colors == nil {
			f.Colors = sc.Colors
		}
		if f.Artist == "" {
			f.Artist = sc.Artist
		}
		face, err := newFace(f)
		if err != nil {
			return nil, fmt.Errorf("card %q face %q: %w", sc.Name, f.Name, err)
		}
		card.Faces = append(card.Faces, face)
	}
	return card, nil
}

func newFace(f ScryfallCardFace) (*Face, error) {
	cost, err := mana.ParseCost(f.ManaCost)
	if err != nil {
		return nil, err
	}
	colors, err := parseColors(f.Colors)
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}
	super, types, sub := ParseTypeLine(f.TypeLine)

	return &Face{
		Name:        f.Name,
		ManaCost:    cost,
		Colors:      mana.SortColors(colors),
		Supertypes:  super,
		Types:       types,
		Subtypes:    sub,
		Power:       ParseStat(f.Power),
		Toughness:   ParseStat(f.Toughness),
		Loyalty:     ParseStat(f.Loyalty),
		OracleText:  f.OracleText,
		FlavorText:  f.FlavorText,
		PrintedText: f.PrintedText,
		Artist:      f.Artist,
	}, nil
}

func parseColors(letters []string) ([]mana.Color, error) {
	colors := make([]mana.Color, 0, len(letters))
	for _, l := range letters {
		c, err := mana.ParseColor(l)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// ParseTypeLine splits a single face's type line such as
// "Legendary Creature — Elf Druid" into supertypes, types and subtypes.
func ParseTypeLine(line string) (super, types, sub []string) {
	left, right, found := strings.Cut(line, "—")
	if !found {
		left, right, _ = strings.Cut(line, " - ")
	}
	for _, word := range strings.Fields(left) {
		if supertypes[word] {
			super = append(super, word)
		} else {
			types = append(types, word)
		}
	}
	if words := strings.Fields(right); len(words) > 0 {
		sub = words
	}
	return super, types, sub
}

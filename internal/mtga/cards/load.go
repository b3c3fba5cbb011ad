package cards

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LoadOptions configures how card data files are read.
type LoadOptions struct {
	// Strict fails the whole load on the first malformed card instead of
	// skipping it.
	Strict bool
	Logger *slog.Logger
}

// LoadFile reads a Scryfall bulk data file (a JSON array of card objects).
func LoadFile(path string, opts LoadOptions) ([]*Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open card file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cards, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cards, nil
}

// Decode streams a JSON array of Scryfall card objects from r.
func Decode(r io.Reader, opts LoadOptions) ([]*Card, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read card array: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected JSON array of cards, got %v", tok)
	}

	var cards []*Card
	skipped := 0
	for dec.More() {
		var sc ScryfallCard
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("decode card %d: %w", len(cards)+skipped, err)
		}

		card, err := sc.ToCard()
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			logger.Warn("Skipping malformed card", "name", sc.Name, "error", err)
			skipped++
			continue
		}
		cards = append(cards, card)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read end of card array: %w", err)
	}

	logger.Debug("Loaded cards", "count", len(cards), "skipped", skipped)
	return cards, nil
}

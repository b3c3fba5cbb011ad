package cards

import (
	"math"
	"reflect"
	"testing"
)

func TestParseStat(t *testing.T) {
	tests := []struct {
		expr     string
		value    float64
		variable bool
	}{
		{"4", 4, false},
		{"0", 0, false},
		{"-1", -1, false},
		{"*", 0, true},
		{"1+*", 1, true},
		{"*²", 0, true},
		{"X", 0, true},
		{"2.5", 2.5, false},
		{"?", 0, true},
	}

	for _, tt := range tests {
		s := ParseStat(tt.expr)
		if s.Number() != tt.value {
			t.Errorf("ParseStat(%q).Number() = %v, want %v", tt.expr, s.Number(), tt.value)
		}
		if s.Variable() != tt.variable {
			t.Errorf("ParseStat(%q).Variable() = %v, want %v", tt.expr, s.Variable(), tt.variable)
		}
		if !s.Exists() {
			t.Errorf("ParseStat(%q).Exists() = false", tt.expr)
		}
	}
}

func TestParseStat_Absent(t *testing.T) {
	for _, s := range []Stat{ParseStat(""), ParseStat("  "), {}} {
		if s.Exists() {
			t.Errorf("Expected %+v to be absent", s)
		}
		if !math.IsNaN(s.Number()) {
			t.Errorf("Expected absent stat to be NaN, got %v", s.Number())
		}
		if s.Variable() {
			t.Error("Expected absent stat not to vary")
		}
	}

	if v := ParseStat("∞").Number(); !math.IsInf(v, 1) {
		t.Errorf("Expected ∞ to be +Inf, got %v", v)
	}
}

func TestStat_Text(t *testing.T) {
	var s Stat
	if err := s.UnmarshalText([]byte("1+*")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if s.Number() != 1 || !s.Variable() {
		t.Errorf("Expected 1+* to be variable 1, got %+v", s)
	}
	text, _ := s.MarshalText()
	if string(text) != "1+*" {
		t.Errorf("Expected MarshalText() = 1+*, got %s", text)
	}
}

func TestParseTypeLine(t *testing.T) {
	tests := []struct {
		line  string
		super []string
		types []string
		sub   []string
	}{
		{"Instant", nil, []string{"Instant"}, nil},
		{"Legendary Creature — Elf Druid", []string{"Legendary"}, []string{"Creature"}, []string{"Elf", "Druid"}},
		{"Basic Snow Land — Forest", []string{"Basic", "Snow"}, []string{"Land"}, []string{"Forest"}},
		{"Artifact Creature - Golem", nil, []string{"Artifact", "Creature"}, []string{"Golem"}},
		{"Legendary Planeswalker — Jace", []string{"Legendary"}, []string{"Planeswalker"}, []string{"Jace"}},
		{"", nil, nil, nil},
	}

	for _, tt := range tests {
		super, types, sub := ParseTypeLine(tt.line)
		if !reflect.DeepEqual(super, tt.super) || !reflect.DeepEqual(types, tt.types) || !reflect.DeepEqual(sub, tt.sub) {
			t.Errorf("ParseTypeLine(%q) = %v, %v, %v, want %v, %v, %v", tt.line, super, types, sub, tt.super, tt.types, tt.sub)
		}
	}
}

func TestFace_TypeLine(t *testing.T) {
	f := &Face{Supertypes: []string{"Legendary"}, Types: []string{"Creature"}, Subtypes: []string{"Elf", "Druid"}}
	if got := f.TypeLine(); got != "Legendary Creature — Elf Druid" {
		t.Errorf("Expected reassembled type line, got %q", got)
	}
	if !f.HasType("creature") {
		t.Error("Expected HasType(creature) to ignore case")
	}
	if f.HasType("Elf") {
		t.Error("Expected subtypes not to count as types")
	}
	if got := (&Face{Types: []string{"Instant"}}).TypeLine(); got != "Instant" {
		t.Errorf("Expected Instant, got %q", got)
	}
}

func TestCard_Legality(t *testing.T) {
	c := &Card{Legalities: map[string]Legality{
		"vintage": Restricted,
		"legacy":  Banned,
		"modern":  NotLegal,
		"pauper":  Legal,
	}}

	if c.LegalityIn("Vintage") != Restricted {
		t.Errorf("Expected restricted in vintage, got %s", c.LegalityIn("Vintage"))
	}
	if c.LegalityIn("standard") != NotLegal {
		t.Errorf("Expected unknown format to be not_legal, got %s", c.LegalityIn("standard"))
	}
	if !c.LegalIn("vintage") || c.LegalIn("legacy") || c.LegalIn("modern") {
		t.Error("Expected only restricted and legal formats to be playable")
	}
	if got := c.LegalFormats(); !reflect.DeepEqual(got, []string{"pauper", "vintage"}) {
		t.Errorf("Expected [pauper vintage], got %v", got)
	}
}

func TestCard_Faces(t *testing.T) {
	var empty Card
	if empty.FrontFace() != nil || empty.BackFace() != nil {
		t.Error("Expected a card without faces to have no front or back")
	}

	front, back := &Face{Name: "Front"}, &Face{Name: "Back"}
	c := &Card{Faces: []*Face{front, back}, Tags: []string{"combo"}}
	if c.FrontFace() != front || c.BackFace() != back {
		t.Error("Expected first and last faces")
	}
	if !c.HasTag("combo") || c.HasTag("burn") {
		t.Error("HasTag returned the wrong answer")
	}
}

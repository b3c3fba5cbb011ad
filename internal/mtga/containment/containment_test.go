package containment

import (
	"errors"
	"testing"
)

func TestTest(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		haystack []string
		needle   []string
		want     bool
	}{
		{"any of overlap", AnyOf, []string{"W", "U"}, []string{"U", "B"}, true},
		{"any of disjoint", AnyOf, []string{"W"}, []string{"B"}, false},
		{"any of empty needle", AnyOf, []string{"W"}, nil, true},
		{"any of both empty", AnyOf, nil, nil, true},
		{"none of disjoint", NoneOf, []string{"W"}, []string{"B", "R"}, true},
		{"none of overlap", NoneOf, []string{"W", "B"}, []string{"B"}, false},
		{"none of empty needle", NoneOf, []string{"W"}, nil, true},
		{"all of superset", AllOf, []string{"W", "U", "B"}, []string{"U", "W"}, true},
		{"all of missing", AllOf, []string{"W"}, []string{"W", "U"}, false},
		{"all of respects multiplicity", AllOf, []string{"W", "U"}, []string{"W", "W"}, false},
		{"all of multiplicity satisfied", AllOf, []string{"W", "W", "U"}, []string{"W", "W"}, true},
		{"all of empty needle", AllOf, []string{"W"}, nil, true},
		{"not all of partial", NotAllOf, []string{"W"}, []string{"W", "U"}, true},
		{"not all of full", NotAllOf, []string{"W", "U"}, []string{"W", "U"}, false},
		{"not all of disjoint", NotAllOf, []string{"B"}, []string{"W", "U"}, false},
		{"not all of empty needle", NotAllOf, []string{"B"}, nil, false},
		{"exactly same", Exactly, []string{"U", "W"}, []string{"W", "U"}, true},
		{"exactly multiplicity", Exactly, []string{"W", "U"}, []string{"W", "U", "U"}, false},
		{"exactly set equal but counts differ", Exactly, []string{"W", "W", "U"}, []string{"W", "U", "U"}, false},
		{"exactly both empty", Exactly, nil, nil, true},
		{"not exactly differ", NotExactly, []string{"W"}, []string{"W", "U"}, true},
		{"not exactly counts differ", NotExactly, []string{"W", "W", "U"}, []string{"W", "U", "U"}, true},
		{"not exactly same", NotExactly, []string{"U", "W"}, []string{"W", "U"}, false},
		{"unknown mode", Mode(42), []string{"W"}, []string{"W"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Test(tt.mode, tt.haystack, tt.needle); got != tt.want {
				t.Errorf("Test(%v, %v, %v) = %v, want %v", tt.mode, tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestAnyOfEmptyNeedleAlwaysTrue(t *testing.T) {
	haystacks := [][]int{nil, {}, {1}, {1, 1, 2}}
	for _, h := range haystacks {
		if !Test(AnyOf, h, []int{}) {
			t.Errorf("AnyOf(%v, {}) = false, want true", h)
		}
	}
}

func TestExactlyReflexive(t *testing.T) {
	sets := [][]int{nil, {1}, {1, 1}, {3, 1, 2, 1}}
	for _, s := range sets {
		if !Test(Exactly, s, s) {
			t.Errorf("Exactly(%v, %v) = false, want true", s, s)
		}
		if Test(NotExactly, s, s) {
			t.Errorf("NotExactly(%v, %v) = true, want false", s, s)
		}
	}
}

func TestNotExactlyIsNegationOfExactly(t *testing.T) {
	samples := [][]int{nil, {1}, {2}, {1, 1}, {1, 2}, {2, 1}, {1, 1, 2}, {1, 2, 2}}
	for _, a := range samples {
		for _, b := range samples {
			if Test(Exactly, a, b) == Test(NotExactly, a, b) {
				t.Errorf("Exactly and NotExactly agree on (%v, %v)", a, b)
			}
		}
	}
}

func TestParse(t *testing.T) {
	for _, m := range Modes() {
		parsed, err := Parse(m.Code())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", m.Code(), err)
		}
		if parsed != m {
			t.Errorf("Parse(%q) = %v, want %v", m.Code(), parsed, m)
		}
	}

	for _, bad := range []string{"", "ANY_OF", "contains any of", "some"} {
		if _, err := Parse(bad); !errors.Is(err, ErrUnknownMode) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownMode", bad, err)
		}
	}
}

func TestMode_Text(t *testing.T) {
	var m Mode
	if err := m.UnmarshalText([]byte("not_all_of")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if m != NotAllOf {
		t.Errorf("UnmarshalText = %v, want NotAllOf", m)
	}

	text, err := Exactly.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	if string(text) != "exactly" {
		t.Errorf("MarshalText = %s, want exactly", text)
	}

	if _, err := Mode(-1).MarshalText(); err == nil {
		t.Error("Expected error marshaling invalid mode")
	}
}

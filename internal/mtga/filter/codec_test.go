package filter

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// everyKind builds a tree that uses every filter type at least once.
func everyKind() Filter {
	return NewGroup(MatchAll, "every kind",
		mustFilter(NewTextFilter(TextRules, containment.AnyOf, `fly* "first strike" damage`, false, AnyFace)),
		mustFilter(NewTextFilter(TextName, containment.NoneOf, `^black`, true, FrontFace)),
		mustFilter(NewNumberFilter(NumberManaValue, LessEqual, 5, AnyFace)),
		NewGroup(MatchAny, "",
			mustFilter(NewVariableNumberFilter(VariablePower, GreaterEqual, 3, false, BackFace)),
			mustFilter(NewVariableNumberFilter(VariableToughness, Equal, 0, true, AnyFace)),
			mustFilter(NewLegalityFilter(containment.AnyOf, []string{"modern"}, false, AnyFace)),
		),
		NewGroup(MatchNone, "",
			mustFilter(NewColorFilter(ColorIdentity, containment.Exactly, []mana.Color{mana.Green}, false, AnyFace)),
			mustFilter(NewManaCostFilter(containment.AllOf, mana.MustParseCost("{W}{W}"), AllFaces)),
			mustFilter(NewTypeLineFilter(containment.AnyOf, "artifact", AnyFace)),
			mustFilter(NewOptionsFilter(OptionRarity, containment.AnyOf, []string{"mythic"}, AnyFace)),
		),
	)
}

func evaluate(f Filter) []bool {
	var out []bool
	for _, c := range allTestCards() {
		out = append(out, f.Test(c))
	}
	return out
}

func TestCodec_RoundTrip(t *testing.T) {
	original := everyKind()
	want := evaluate(original)

	t.Run("json", func(t *testing.T) {
		data, err := Marshal(original)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		decoded, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("Unmarshal() error = %v\n%s", err, data)
		}
		if diff := cmp.Diff(want, evaluate(decoded)); diff != "" {
			t.Errorf("decoded filter evaluates differently (-want +got):\n%s", diff)
		}
		again, err := Marshal(decoded)
		if err != nil {
			t.Fatalf("Marshal(decoded) error = %v", err)
		}
		if diff := cmp.Diff(string(data), string(again)); diff != "" {
			t.Errorf("re-encoding is not stable (-first +second):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := MarshalYAML(original)
		if err != nil {
			t.Fatalf("MarshalYAML() error = %v", err)
		}
		decoded, err := UnmarshalYAML(data)
		if err != nil {
			t.Fatalf("UnmarshalYAML() error = %v\n%s", err, data)
		}
		if diff := cmp.Diff(want, evaluate(decoded)); diff != "" {
			t.Errorf("decoded filter evaluates differently (-want +got):\n%s", diff)
		}
		if decoded.String() != original.String() {
			t.Errorf("String() = %q, want %q", decoded.String(), original.String())
		}
	})
}

func TestCodec_Files(t *testing.T) {
	dir := t.TempDir()
	original := everyKind()

	for _, name := range []string{"filter.json", "filter.yaml", "filter.yml"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, original); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		if diff := cmp.Diff(evaluate(original), evaluate(got)); diff != "" {
			t.Errorf("%s: decoded filter evaluates differently (-want +got):\n%s", name, diff)
		}
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ReadFile(missing) should fail")
	}
}

func TestCodec_Decode(t *testing.T) {
	f, err := Unmarshal([]byte(`{"type":"color","contains":"exactly","colors":["W","blue"],"multicolored":true}`))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	color, ok := f.(*ColorFilter)
	if !ok {
		t.Fatalf("Unmarshal() = %T, want *ColorFilter", f)
	}
	if color.Faces() != AnyFace {
		t.Errorf("missing faces = %v, want %v", color.Faces(), AnyFace)
	}
	if diff := cmp.Diff([]mana.Color{mana.White, mana.Blue}, color.Colors()); diff != "" {
		t.Errorf("colors (-want +got):\n%s", diff)
	}

	front, err := DecodeOptions{DefaultFaces: FrontFace}.UnmarshalYAML([]byte("type: type_line\ncontains: any_of\npattern: human\n"))
	if err != nil {
		t.Fatalf("UnmarshalYAML() error = %v", err)
	}
	if fs := front.(Leaf).Faces(); fs != FrontFace {
		t.Errorf("default faces = %v, want %v", fs, FrontFace)
	}

	varies, err := Unmarshal([]byte(`{"type":"power","varies":true}`))
	if err != nil {
		t.Fatalf("Unmarshal(varies) error = %v", err)
	}
	if !varies.Test(tarmogoyf()) || varies.Test(serraAngel()) {
		t.Errorf("%s evaluated incorrectly", varies)
	}

	empty, err := Unmarshal([]byte(`{"type":"group","mode":"any"}`))
	if err != nil {
		t.Fatalf("Unmarshal(empty group) error = %v", err)
	}
	if empty.Test(lightningBolt()) {
		t.Error("empty ANY group decoded to a passing filter")
	}
}

func TestCodec_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		path    string
	}{
		{"unknown type", `{"type":"flavor"}`, ErrUnknownType, "$"},
		{"missing type", `{"contains":"any_of"}`, ErrMissingField, "$"},
		{"unknown containment", `{"type":"rarity","contains":"some_of","selected":["rare"]}`, containment.ErrUnknownMode, "$"},
		{"unknown faces", `{"type":"rarity","contains":"any_of","selected":["rare"],"faces":"middle"}`, ErrUnknownFaces, "$"},
		{"missing colors", `{"type":"color","contains":"any_of"}`, ErrMissingField, "$"},
		{"missing operand", `{"type":"cmc","operation":"="}`, ErrMissingField, "$"},
		{"field of another kind", `{"type":"cmc","operation":"=","operand":3,"colors":["R"]}`, ErrUnexpectedField, "$"},
		{"unknown comparison", `{"type":"cmc","operation":"~","operand":3}`, ErrUnknownComparison, "$"},
		{"invalid regex", `{"type":"name","contains":"any_of","regex":true,"pattern":"("}`, ErrInvalidPattern, "$"},
		{"invalid color", `{"type":"color","contains":"any_of","colors":["purple"]}`, mana.ErrInvalidColor, "$"},
		{"invalid cost", `{"type":"mana_cost","contains":"any_of","cost":"{W}{Q"}`, mana.ErrInvalidCost, "$"},
		{"non-mana cost", `{"type":"mana_cost","contains":"any_of","cost":"{T}"}`, mana.ErrNotMana, "$"},
		{"unknown group mode", `{"type":"group","mode":"most"}`, ErrUnknownGroupMode, "$"},
		{
			"nested error",
			`{"type":"group","mode":"all","children":[{"type":"group","mode":"any"},{"type":"group","mode":"any","children":[{"type":"color"}]}]}`,
			ErrMissingField,
			"$.children[1].children[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Unmarshal([]byte(tt.input))
			if f != nil {
				t.Errorf("Unmarshal() returned a partial filter %s", f)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("Unmarshal() error %T is not a *DecodeError", err)
			}
			if de.Path != tt.path {
				t.Errorf("DecodeError.Path = %q, want %q", de.Path, tt.path)
			}
		})
	}
}

func TestCodec_DecodeNonFiniteOperand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
	}{
		{"nan", "type: cmc\noperation: \"!=\"\noperand: .nan\n", "$"},
		{"inf", "type: cmc\noperation: \"<\"\noperand: .inf\n", "$"},
		{"negative inf", "type: power\noperation: \">\"\noperand: -.inf\n", "$"},
		{"nested", "type: group\nmode: all\nchildren:\n  - type: toughness\n    operation: \"=\"\n    operand: .NaN\n", "$.children[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := UnmarshalYAML([]byte(tt.input))
			if f != nil {
				t.Errorf("UnmarshalYAML() returned %s", f)
			}
			if !errors.Is(err, ErrInvalidOperand) {
				t.Fatalf("UnmarshalYAML() error = %v, want %v", err, ErrInvalidOperand)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("UnmarshalYAML() error %T is not a *DecodeError", err)
			}
			if de.Path != tt.path {
				t.Errorf("DecodeError.Path = %q, want %q", de.Path, tt.path)
			}
		})
	}

	varies, err := UnmarshalYAML([]byte("type: loyalty\nvaries: true\n"))
	if err != nil {
		t.Fatalf("UnmarshalYAML(varies) error = %v", err)
	}
	if _, err := Marshal(varies); err != nil {
		t.Errorf("Marshal(varies) error = %v", err)
	}
}

func TestCodec_SyntaxErrors(t *testing.T) {
	inputs := []string{
		``,
		`{"type":"group","mode":"all"`,
		`{"type":"group","mode":"all","extra":1}`,
		`{"type":"group","mode":"all"} {}`,
	}
	for _, input := range inputs {
		var de *DecodeError
		if _, err := Unmarshal([]byte(input)); !errors.As(err, &de) {
			t.Errorf("Unmarshal(%q) error = %v, want *DecodeError", input, err)
		}
	}

	if _, err := UnmarshalYAML([]byte("type: group\nmode: all\nbogus: 1\n")); err == nil {
		t.Error("UnmarshalYAML() accepted an unknown field")
	}
	if _, err := UnmarshalYAML(nil); err == nil {
		t.Error("UnmarshalYAML(nil) should fail")
	}
}

func TestCodec_MaxPatternLength(t *testing.T) {
	opts := DecodeOptions{MaxPatternLength: 5}
	if _, err := opts.Unmarshal([]byte(`{"type":"name","contains":"any_of","pattern":"angel"}`)); err != nil {
		t.Errorf("pattern at the limit: error = %v", err)
	}
	_, err := opts.Unmarshal([]byte(`{"type":"type_line","contains":"any_of","pattern":"angels"}`))
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("pattern over the limit: error = %v, want %v", err, ErrInvalidPattern)
	}
}

func TestMarshal_Nil(t *testing.T) {
	if _, err := Marshal(nil); !errors.Is(err, ErrNilFilter) {
		t.Errorf("Marshal(nil) error = %v, want %v", err, ErrNilFilter)
	}
}

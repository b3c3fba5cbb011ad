package filter

import (
	"errors"
	"testing"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

func TestGroup_Empty(t *testing.T) {
	tests := []struct {
		mode GroupMode
		want bool
	}{
		{MatchAll, true},
		{MatchAny, false},
		{MatchNone, true},
	}

	for _, tt := range tests {
		g := NewGroup(tt.mode, "")
		for _, c := range allTestCards() {
			if got := g.Test(c); got != tt.want {
				t.Errorf("empty %s group on %q = %v, want %v", tt.mode, c.Name, got, tt.want)
			}
		}
	}

	var zero Group
	if !zero.Test(lightningBolt()) {
		t.Error("zero Group should match every card")
	}
}

func TestGroup_None(t *testing.T) {
	// The card matches only the second child, so NONE fails.
	red := mustFilter(NewColorFilter(ColorColors, containment.AnyOf, []mana.Color{mana.Red}, false, AnyFace))
	instant := mustFilter(NewTypeLineFilter(containment.AllOf, "instant", AnyFace))
	blue := mustFilter(NewColorFilter(ColorColors, containment.AnyOf, []mana.Color{mana.Blue}, false, AnyFace))

	g := NewGroup(MatchNone, "", blue, instant)
	if g.Test(lightningBolt()) {
		t.Errorf("%s on Lightning Bolt = true, want false", g)
	}
	if !NewGroup(MatchNone, "", blue).Test(lightningBolt()) {
		t.Error("NONE group with no passing child should pass")
	}
	if !NewGroup(MatchAll, "", red, instant).Test(lightningBolt()) {
		t.Error("ALL group with every child passing should pass")
	}
	if NewGroup(MatchAll, "", red, blue).Test(lightningBolt()) {
		t.Error("ALL group with a failing child should fail")
	}
	if !NewGroup(MatchAny, "", blue, red).Test(lightningBolt()) {
		t.Error("ANY group with a passing child should pass")
	}
}

func TestGroup_Nested(t *testing.T) {
	creature := mustFilter(NewTypeLineFilter(containment.AllOf, "creature", AnyFace))
	bigPower := mustFilter(NewVariableNumberFilter(VariablePower, GreaterEqual, 4, false, AnyFace))
	varies := mustFilter(NewVariableNumberFilter(VariablePower, Equal, 0, true, AnyFace))

	// Creatures that are big or have variable power.
	g := NewGroup(MatchAll, "beaters", creature, NewGroup(MatchAny, "", bigPower, varies))

	want := map[string]bool{
		"Serra Angel": true,
		"Tarmogoyf":   true,
	}
	for _, c := range allTestCards() {
		if got := g.Test(c); got != want[c.Name] {
			t.Errorf("%s on %q = %v, want %v", g, c.Name, got, want[c.Name])
		}
	}
}

func TestGroup_EditingReturnsCopies(t *testing.T) {
	instant := mustFilter(NewTypeLineFilter(containment.AllOf, "instant", AnyFace))
	creature := mustFilter(NewTypeLineFilter(containment.AllOf, "creature", AnyFace))

	g := NewGroup(MatchAny, "spells", instant)
	g2 := g.With(creature)
	if g.Len() != 1 || g2.Len() != 2 {
		t.Fatalf("With: len = %d, %d, want 1, 2", g.Len(), g2.Len())
	}
	if g2.Comment() != "spells" {
		t.Errorf("With: comment = %q, want %q", g2.Comment(), "spells")
	}

	g3 := g2.Without(0)
	if g2.Len() != 2 || g3.Len() != 1 || g3.Children()[0] != creature {
		t.Errorf("Without(0) changed the source or removed the wrong child")
	}
	if g4 := g2.Without(7); g4.Len() != 2 {
		t.Errorf("Without(7): len = %d, want 2", g4.Len())
	}

	g5 := g2.Replace(1, instant)
	if g2.Children()[1] != creature || g5.Children()[1] != instant {
		t.Errorf("Replace changed the source group")
	}

	g6 := g2.WithMode(MatchNone)
	if g2.Mode() != MatchAny || g6.Mode() != MatchNone {
		t.Errorf("WithMode changed the source group")
	}

	children := g2.Children()
	children[0] = nil
	if g2.Children()[0] == nil {
		t.Error("Children exposed the internal slice")
	}
}

func TestCopy(t *testing.T) {
	text := mustFilter(NewTextFilter(TextRules, containment.AllOf, "fly*", false, AnyFace))
	inner := NewGroup(MatchAny, "", text)
	outer := NewGroup(MatchAll, "root", inner)

	c, ok := Copy(outer).(*Group)
	if !ok {
		t.Fatalf("Copy(*Group) returned %T", Copy(outer))
	}
	if c == outer || c.Children()[0] == Filter(inner) {
		t.Error("Copy shared group nodes with the source")
	}
	for _, card := range allTestCards() {
		if c.Test(card) != outer.Test(card) {
			t.Errorf("copy and source disagree on %q", card.Name)
		}
	}
	if Copy(nil) != nil {
		t.Error("Copy(nil) should be nil")
	}
}

func TestFaceSelection(t *testing.T) {
	insect := mustFilter(NewTypeLineFilter(containment.AllOf, "insect", AnyFace))
	human := mustFilter(NewTypeLineFilter(containment.AllOf, "human", AnyFace))
	delver := delverOfSecrets()

	tests := []struct {
		faces  FaceSelection
		insect bool
		human  bool
	}{
		{AnyFace, true, true},
		{AllFaces, false, true},
		{FrontFace, false, true},
		{BackFace, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.faces.String(), func(t *testing.T) {
			i := mustFilter(NewTypeLineFilter(insect.Mode(), insect.Pattern(), tt.faces))
			h := mustFilter(NewTypeLineFilter(human.Mode(), human.Pattern(), tt.faces))
			if got := i.Test(delver); got != tt.insect {
				t.Errorf("insect = %v, want %v", got, tt.insect)
			}
			if got := h.Test(delver); got != tt.human {
				t.Errorf("human = %v, want %v", got, tt.human)
			}
		})
	}
}

func TestFaceSelection_SingleFaced(t *testing.T) {
	bolt := lightningBolt()
	for _, fs := range FaceSelections() {
		f := mustFilter(NewTypeLineFilter(containment.AllOf, "instant", fs))
		if !f.Test(bolt) {
			t.Errorf("%s: single-faced card should pass under every policy", fs)
		}
	}
}

func TestFaceSelection_NoFaces(t *testing.T) {
	leaves := []Filter{
		mustFilter(NewTypeLineFilter(containment.NoneOf, "creature", AnyFace)),
		mustFilter(NewNumberFilter(NumberCardNumber, GreaterEqual, 0, AllFaces)),
		mustFilter(NewLegalityFilter(containment.NoneOf, []string{"modern"}, false, FrontFace)),
		mustFilter(NewColorFilter(ColorIdentity, containment.AnyOf, nil, false, BackFace)),
	}
	for _, c := range []*cards.Card{nil, {Name: "Faceless"}} {
		for _, f := range leaves {
			if f.Test(c) {
				t.Errorf("%s passed a card without faces", f)
			}
		}
	}
}

func TestParseFaceSelection(t *testing.T) {
	for _, fs := range FaceSelections() {
		got, err := ParseFaceSelection(fs.String())
		if err != nil || got != fs {
			t.Errorf("ParseFaceSelection(%q) = %v, %v, want %v", fs.String(), got, err, fs)
		}
	}
	if _, err := ParseFaceSelection("middle"); !errors.Is(err, ErrUnknownFaces) {
		t.Errorf("ParseFaceSelection(middle) error = %v, want %v", err, ErrUnknownFaces)
	}
	if _, err := ParseGroupMode("most"); !errors.Is(err, ErrUnknownGroupMode) {
		t.Errorf("ParseGroupMode(most) error = %v, want %v", err, ErrUnknownGroupMode)
	}
}

func BenchmarkGroup_Test(b *testing.B) {
	g := NewGroup(MatchAll, "",
		mustFilter(NewTextFilter(TextRules, containment.AnyOf, "fly* \"first strike\" vigilance", false, AnyFace)),
		mustFilter(NewColorFilter(ColorIdentity, containment.AllOf, []mana.Color{mana.White}, false, AnyFace)),
		mustFilter(NewManaCostFilter(containment.AllOf, mana.MustParseCost("{W}{W}"), AnyFace)),
		NewGroup(MatchAny, "",
			mustFilter(NewNumberFilter(NumberManaValue, LessEqual, 5, AnyFace)),
			mustFilter(NewTypeLineFilter(containment.AnyOf, "angel dragon", AnyFace)),
		),
	)
	pool := allTestCards()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, c := range pool {
			g.Test(c)
		}
	}
}

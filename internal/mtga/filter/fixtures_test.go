package filter

import (
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

func testFace(name, cost, typeLine string, colors ...mana.Color) *cards.Face {
	super, types, sub := cards.ParseTypeLine(typeLine)
	return &cards.Face{
		Name:       name,
		ManaCost:   mana.MustParseCost(cost),
		Colors:     mana.SortColors(colors),
		Supertypes: super,
		Types:      types,
		Subtypes:   sub,
		Power:      cards.ParseStat(""),
		Toughness:  cards.ParseStat(""),
		Loyalty:    cards.ParseStat(""),
	}
}

func withStats(f *cards.Face, power, toughness string) *cards.Face {
	f.Power = cards.ParseStat(power)
	f.Toughness = cards.ParseStat(toughness)
	return f
}

func withText(f *cards.Face, oracle string) *cards.Face {
	f.OracleText = oracle
	return f
}

func lightningBolt() *cards.Card {
	return &cards.Card{
		Name:            "Lightning Bolt",
		Layout:          "normal",
		Rarity:          "common",
		SetCode:         "m10",
		SetName:         "Magic 2010",
		CollectorNumber: "146",
		ColorIdentity:   []mana.Color{mana.Red},
		Legalities: map[string]cards.Legality{
			"modern":   cards.Legal,
			"vintage":  cards.Legal,
			"standard": cards.NotLegal,
		},
		Tags:  []string{"Burn"},
		Faces: []*cards.Face{withText(testFace("Lightning Bolt", "{R}", "Instant", mana.Red), "Lightning Bolt deals 3 damage to any target.")},
	}
}

func serraAngel() *cards.Card {
	f := withStats(testFace("Serra Angel", "{3}{W}{W}", "Creature — Angel", mana.White), "4", "4")
	f.OracleText = "Flying, vigilance"
	f.FlavorText = "Her sword sings more beautifully than any choir."
	f.Artist = "Douglas Shuler"
	return &cards.Card{
		Name:            "Serra Angel",
		Layout:          "normal",
		Rarity:          "uncommon",
		SetName:         "Dominaria",
		CollectorNumber: "33",
		ColorIdentity:   []mana.Color{mana.White},
		Legalities:      map[string]cards.Legality{"vintage": cards.Legal},
		Faces:           []*cards.Face{f},
	}
}

func tarmogoyf() *cards.Card {
	return &cards.Card{
		Name:            "Tarmogoyf",
		Layout:          "normal",
		Rarity:          "mythic",
		SetName:         "Future Sight",
		Block:           "Time Spiral",
		CollectorNumber: "153",
		ColorIdentity:   []mana.Color{mana.Green},
		Legalities: map[string]cards.Legality{
			"modern":  cards.Legal,
			"vintage": cards.Legal,
		},
		Faces: []*cards.Face{withStats(testFace("Tarmogoyf", "{1}{G}", "Creature — Lhurgoyf", mana.Green), "*", "1+*")},
	}
}

func fireIce() *cards.Card {
	return &cards.Card{
		Name:            "Fire // Ice",
		Layout:          "split",
		Rarity:          "uncommon",
		SetName:         "Apocalypse",
		CollectorNumber: "128",
		ColorIdentity:   mana.SortColors([]mana.Color{mana.Blue, mana.Red}),
		Legalities:      map[string]cards.Legality{"modern": cards.Legal},
		Faces: []*cards.Face{
			withText(testFace("Fire", "{1}{R}", "Instant", mana.Red), "Fire deals 2 damage divided as you choose among one or two targets."),
			withText(testFace("Ice", "{1}{U}", "Instant", mana.Blue), "Tap target permanent.\nDraw a card."),
		},
	}
}

func delverOfSecrets() *cards.Card {
	back := withStats(testFace("Insectile Aberration", "", "Creature — Human Insect", mana.Blue), "3", "2")
	back.OracleText = "Flying"
	return &cards.Card{
		Name:            "Delver of Secrets // Insectile Aberration",
		Layout:          "transform",
		Rarity:          "common",
		SetName:         "Innistrad",
		CollectorNumber: "51a",
		ColorIdentity:   []mana.Color{mana.Blue},
		Legalities:      map[string]cards.Legality{"modern": cards.Legal, "legacy": cards.Legal},
		Faces: []*cards.Face{
			withStats(testFace("Delver of Secrets", "{U}", "Creature — Human Wizard", mana.Blue), "1", "1"),
			back,
		},
	}
}

func blackLotus() *cards.Card {
	return &cards.Card{
		Name:            "Black Lotus",
		Layout:          "normal",
		Rarity:          "rare",
		SetName:         "Limited Edition Alpha",
		CollectorNumber: "232",
		Legalities: map[string]cards.Legality{
			"vintage": cards.Restricted,
			"legacy":  cards.Banned,
		},
		Faces: []*cards.Face{testFace("Black Lotus", "{0}", "Artifact")},
	}
}

func allTestCards() []*cards.Card {
	return []*cards.Card{
		lightningBolt(),
		serraAngel(),
		tarmogoyf(),
		fireIce(),
		delverOfSecrets(),
		blackLotus(),
		{Name: "Faceless"},
	}
}

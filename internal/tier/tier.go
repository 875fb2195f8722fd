package tier

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is an item quality grade. The numeric value is the reforge cost rank.
type Tier int

const (
	Common Tier = iota
	Uncommon
	Rare
	Epic
	Legendary
	Mythic
	Divine
	Special
	VerySpecial
	Ultimate
)

var ErrUnknownTier = errors.New("unknown tier")

var names = map[Tier]string{
	Common:      "COMMON",
	Uncommon:    "UNCOMMON",
	Rare:        "RARE",
	Epic:        "EPIC",
	Legendary:   "LEGENDARY",
	Mythic:      "MYTHIC",
	Divine:      "DIVINE",
	Special:     "SPECIAL",
	VerySpecial: "VERY_SPECIAL",
	Ultimate:    "ULTIMATE",
}

var byName = map[string]Tier{
	"COMMON":       Common,
	"UNCOMMON":     Uncommon,
	"RARE":         Rare,
	"EPIC":         Epic,
	"LEGENDARY":    Legendary,
	"MYTHIC":       Mythic,
	"SUPREME":      Divine, // feed name for Divine
	"DIVINE":       Divine,
	"SPECIAL":      Special,
	"VERY_SPECIAL": VerySpecial,
	"ULTIMATE":     Ultimate,
}

// downshift undoes one quality upgrade.
var downshift = map[Tier]Tier{
	Uncommon:    Common,
	Rare:        Uncommon,
	Epic:        Rare,
	Legendary:   Epic,
	Mythic:      Legendary,
	VerySpecial: Special,
	Divine:      Mythic,
}

// Parse maps a feed tier name to a Tier.
func Parse(name string) (Tier, error) {
	t, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
	return t, nil
}

// Resolve returns the base tier of an item carrying qualityUpgrades upgrades.
// At most one step is ever applied.
func Resolve(raw Tier, qualityUpgrades int) (Tier, error) {
	if qualityUpgrades <= 0 {
		return raw, nil
	}
	base, ok := downshift[raw]
	if !ok {
		return 0, fmt.Errorf("%w: %s cannot carry a quality upgrade", ErrUnknownTier, raw)
	}
	return base, nil
}

// Rank is the index into per-tier cost tables.
func (t Tier) Rank() int { return int(t) }

func (t Tier) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// All lists every known tier in rank order.
func All() []Tier {
	return []Tier{Common, Uncommon, Rare, Epic, Legendary, Mythic, Divine, Special, VerySpecial, Ultimate}
}

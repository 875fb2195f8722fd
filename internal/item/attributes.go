package item

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Tnze/go-mc/nbt"
)

// CollectibleID marks leveled collectibles whose identity comes from the display name.
const CollectibleID = "PET"

var ErrDecode = errors.New("decode item attributes")

// Attributes is the flat, validated view of one listing's item metadata.
type Attributes struct {
	ID       string // raw item id
	Identity string // grouping key, level-independent

	// CollectionLevel is set for leveled collectibles only.
	CollectionLevel *int

	QualityUpgrades int
	Enchantments    map[string]int
	BookCount       int
	Reforge         string // empty when unreforged
	Stars           int
}

type extraAttributes struct {
	ID               string           `nbt:"id"`
	RarityUpgrades   int32            `nbt:"rarity_upgrades"`
	HotPotatoCount   int32            `nbt:"hot_potato_count"`
	UpgradeLevel     int32            `nbt:"upgrade_level"`
	DungeonItemLevel int32            `nbt:"dungeon_item_level"`
	Modifier         string           `nbt:"modifier"`
	Enchantments     map[string]int32 `nbt:"enchantments"`
}

type itemTag struct {
	ExtraAttributes extraAttributes `nbt:"ExtraAttributes"`
}

type itemStack struct {
	Tag itemTag `nbt:"tag"`
}

type inventory struct {
	I []itemStack `nbt:"i"`
}

// Decode turns a listing's base64 gzip NBT blob into Attributes.
func Decode(itemBytes, displayName string) (Attributes, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(itemBytes))
	if err != nil {
		return Attributes{}, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return Attributes{}, fmt.Errorf("%w: gzip: %v", ErrDecode, err)
	}
	defer gz.Close()

	var inv inventory
	if _, err := nbt.NewDecoder(gz).Decode(&inv); err != nil {
		return Attributes{}, fmt.Errorf("%w: nbt: %v", ErrDecode, err)
	}
	if len(inv.I) == 0 {
		return Attributes{}, fmt.Errorf("%w: empty item list", ErrDecode)
	}
	return fromExtra(inv.I[0].Tag.ExtraAttributes, displayName)
}

func fromExtra(ea extraAttributes, displayName string) (Attributes, error) {
	if ea.ID == "" {
		return Attributes{}, fmt.Errorf("%w: missing ExtraAttributes.id", ErrDecode)
	}
	stars := ea.UpgradeLevel
	if stars == 0 {
		stars = ea.DungeonItemLevel
	}
	a := Attributes{
		ID:              ea.ID,
		Identity:        ea.ID,
		QualityUpgrades: nonNegative(ea.RarityUpgrades),
		BookCount:       nonNegative(ea.HotPotatoCount),
		Stars:           nonNegative(stars),
		Reforge:         strings.ToLower(strings.TrimSpace(ea.Modifier)),
		Enchantments:    make(map[string]int, len(ea.Enchantments)),
	}
	for name, lvl := range ea.Enchantments {
		a.Enchantments[name] = int(lvl)
	}
	if ea.ID == CollectibleID {
		id, lvl := CollectibleIdentity(displayName)
		a.Identity = id
		a.CollectionLevel = &lvl
	}
	return a, nil
}

var levelBracket = regexp.MustCompile(`^\s*\[Lvl\s*(\d*)\]\s*`)

// CollectibleIdentity strips the leading "[Lvl N]" from a display name and
// normalizes the rest, so every level of the same collectible shares one key.
func CollectibleIdentity(displayName string) (identity string, level int) {
	rest := displayName
	if m := levelBracket.FindStringSubmatch(displayName); m != nil {
		level, _ = strconv.Atoi(m[1])
		rest = displayName[len(m[0]):]
	}
	return Normalize(rest), level
}

// Normalize upper-cases a name and joins its words with underscores.
func Normalize(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), "_"))
}

func nonNegative(v int32) int {
	if v < 0 {
		return 0
	}
	return int(v)
}

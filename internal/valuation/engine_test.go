package valuation

import (
	"errors"
	"testing"

	"ah-flipper/internal/item"
	"ah-flipper/internal/market"
	"ah-flipper/internal/pricing"
	"ah-flipper/internal/tier"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func prices() pricing.Commodities {
	c := pricing.Commodities{}
	add := func(id string, sell float64) { c[id] = pricing.CommodityPrice{ID: id, InstaSell: sell} }
	add(QualityUpgradeReagent, 6_000_000)
	add(PrimaryBook, 80_000)
	add(SecondaryBook, 1_200_000)
	add("FIRST_MASTER_STAR", 10_000_000)
	add("SECOND_MASTER_STAR", 20_000_000)
	add("THIRD_MASTER_STAR", 30_000_000)
	add("FOURTH_MASTER_STAR", 40_000_000)
	add("FIFTH_MASTER_STAR", 50_000_000)
	add("ENCHANTMENT_GROWTH_6", 3_000_000)
	add("ENCHANTMENT_ULTIMATE_WISDOM_5", 900_000)
	add("PRECURSOR_GEAR", 400_000)
	return c
}

func reforges() pricing.Reforges {
	return pricing.Reforges{
		"ancient": {Name: "ancient", StoneID: "PRECURSOR_GEAR", ApplyCosts: []int64{100, 200, 300, 400, 500, 600}},
		"bare":    {Name: "bare", StoneID: "UNQUOTED_STONE", ApplyCosts: []int64{7}},
	}
}

func chestplate(id string, cost int64) market.Listing {
	return market.Listing{
		ID:         id,
		Cost:       cost,
		Attributes: item.Attributes{ID: "POWER_WITHER_CHESTPLATE", Identity: "POWER_WITHER_CHESTPLATE", Enchantments: map[string]int{}},
		RawTier:    tier.Legendary,
		BaseTier:   tier.Legendary,
	}
}

func setup(listings ...market.Listing) *Engine {
	ix := market.NewIndex()
	for _, l := range listings {
		ix.Add(l)
	}
	return NewEngine(ix, prices(), reforges())
}

func TestBaselineIsCheapestInBucket(t *testing.T) {
	e := setup(chestplate("a", 50_000_000), chestplate("b", 40_000_000), chestplate("c", 70_000_000))
	w, err := e.Worth(chestplate("c", 70_000_000))
	assert.NoError(t, err)
	check.Equal(t, 40_000_000.0, w)
}

func TestMissingBaseline(t *testing.T) {
	e := setup(chestplate("a", 1))
	other := chestplate("x", 1)
	other.BaseTier = tier.Mythic
	_, err := e.Worth(other)
	check.True(t, errors.Is(err, ErrMissingBaseline))
	check.True(t, errors.Is(err, market.ErrKeyNotFound))
}

func TestComponents(t *testing.T) {
	l := chestplate("a", 10_000_000)
	l.QualityUpgrades = 1
	l.Attributes.QualityUpgrades = 1
	l.Attributes.BookCount = 15
	l.Attributes.Stars = 7
	l.Attributes.Reforge = "ancient"
	l.Attributes.Enchantments = map[string]int{"growth": 6, "wisdom": 5, "unpriced": 1}

	e := setup(l)
	b, err := e.Breakdown(l)
	assert.NoError(t, err)

	check.Equal(t, "10000000", b.Baseline.String())
	check.Equal(t, "6000000", b.QualityUpgrade.String())
	// 10 primary books + 5 secondary books
	check.Equal(t, "6800000", b.Books.String())
	// 7 stars: first and second master star only
	check.Equal(t, "30000000", b.Stars.String())
	check.Equal(t, "3900000", b.Enchantments.String())
	// stone + legendary apply cost
	check.Equal(t, "400500", b.Reforge.String())

	w, err := e.Worth(l)
	assert.NoError(t, err)
	check.Equal(t, 57_100_500.0, w)
}

func TestMasterStarBounds(t *testing.T) {
	base := chestplate("a", 1)
	e := setup(base)
	for stars := 0; stars <= 10; stars++ {
		l := base
		l.Attributes.Stars = stars
		_, err := e.Worth(l)
		assert.NoError(t, err)
	}
	for _, stars := range []int{11, 12, 20} {
		l := base
		l.Attributes.Stars = stars
		_, err := e.Worth(l)
		check.True(t, errors.Is(err, ErrMasterStarOutOfRange))
	}
}

func TestOptionalCommoditiesPriceAtZero(t *testing.T) {
	l := chestplate("a", 5)
	l.Attributes.BookCount = 12
	l.Attributes.Stars = 8
	l.Attributes.Reforge = "bare"
	l.Attributes.Enchantments = map[string]int{"sharpness": 7}

	ix := market.NewIndex()
	ix.Add(l)
	e := NewEngine(ix, pricing.Commodities{}, reforges())
	b, err := e.Breakdown(l)
	assert.NoError(t, err)
	check.True(t, b.Books.IsZero())
	check.True(t, b.Stars.IsZero())
	check.True(t, b.Enchantments.IsZero())
	// unquoted stone, apply cost clamped to the only entry
	check.Equal(t, "7", b.Reforge.String())
}

func TestUnknownReforgeContributesNothing(t *testing.T) {
	l := chestplate("a", 5)
	l.Attributes.Reforge = "spicy"
	e := setup(l)
	b, err := e.Breakdown(l)
	assert.NoError(t, err)
	check.True(t, b.Reforge.IsZero())
}

func TestQualityUpgradeReagentRequired(t *testing.T) {
	l := chestplate("a", 5)
	l.Attributes.QualityUpgrades = 1
	ix := market.NewIndex()
	ix.Add(l)
	_, err := EstimateWorth(l, ix, pricing.Commodities{}, nil)
	check.True(t, errors.Is(err, ErrMissingCommodity))
}

func TestWorthMonotonic(t *testing.T) {
	base := chestplate("a", 1_000_000)
	e := setup(base)

	worth := func(mut func(*market.Listing)) float64 {
		l := base
		l.Attributes.Enchantments = map[string]int{}
		mut(&l)
		w, err := e.Worth(l)
		assert.NoError(t, err)
		return w
	}

	prev := 0.0
	for n := 0; n <= 5; n++ {
		w := worth(func(l *market.Listing) { l.Attributes.QualityUpgrades = n })
		check.True(t, w >= prev)
		prev = w
	}
	prev = 0
	for n := 0; n <= 20; n++ {
		w := worth(func(l *market.Listing) { l.Attributes.BookCount = n })
		check.True(t, w >= prev)
		prev = w
	}
	prev = 0
	for n := 0; n <= 10; n++ {
		w := worth(func(l *market.Listing) { l.Attributes.Stars = n })
		check.True(t, w >= prev)
		prev = w
	}
}

package valuation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"ah-flipper/internal/item"
	"ah-flipper/internal/market"
	"ah-flipper/internal/pricing"
)

// Commodity ids used to price item components.
const (
	QualityUpgradeReagent = "RECOMBOBULATOR_3000"
	PrimaryBook           = "HOT_POTATO_BOOK"
	SecondaryBook         = "FUMING_POTATO_BOOK"
)

// MasterStars holds the upgrade material for master star positions 1 to 5.
var MasterStars = [...]string{
	"FIRST_MASTER_STAR",
	"SECOND_MASTER_STAR",
	"THIRD_MASTER_STAR",
	"FOURTH_MASTER_STAR",
	"FIFTH_MASTER_STAR",
}

const (
	primaryBookCap = 10
	normalStarCap  = 5
)

var (
	ErrMissingBaseline      = errors.New("no comparable listings")
	ErrMissingCommodity     = errors.New("required commodity price missing")
	ErrMasterStarOutOfRange = errors.New("master star count out of range")
)

// Breakdown is a worth estimate split into its additive components.
type Breakdown struct {
	Baseline       decimal.Decimal
	QualityUpgrade decimal.Decimal
	Books          decimal.Decimal
	Stars          decimal.Decimal
	Enchantments   decimal.Decimal
	Reforge        decimal.Decimal
}

func (b Breakdown) Total() decimal.Decimal {
	return b.Baseline.Add(b.QualityUpgrade).Add(b.Books).Add(b.Stars).Add(b.Enchantments).Add(b.Reforge)
}

// Engine estimates listing worth from the lowest-price index and price tables.
// It only reads its inputs, so one Engine may serve many goroutines.
type Engine struct {
	index    *market.Index
	prices   pricing.Commodities
	reforges pricing.Reforges
}

func NewEngine(index *market.Index, prices pricing.Commodities, reforges pricing.Reforges) *Engine {
	return &Engine{index: index, prices: prices, reforges: reforges}
}

// EstimateWorth is a one-shot convenience over Engine.Worth.
func EstimateWorth(l market.Listing, index *market.Index, prices pricing.Commodities, reforges pricing.Reforges) (float64, error) {
	return NewEngine(index, prices, reforges).Worth(l)
}

// Worth returns the estimated resale value of l.
func (e *Engine) Worth(l market.Listing) (float64, error) {
	b, err := e.Breakdown(l)
	if err != nil {
		return 0, err
	}
	w, _ := b.Total().Float64()
	return w, nil
}

// Breakdown prices each component of l.
func (e *Engine) Breakdown(l market.Listing) (Breakdown, error) {
	var b Breakdown
	cheapest, err := e.index.Cheapest(l.Key())
	if err != nil {
		return b, fmt.Errorf("%w: listing %s: %w", ErrMissingBaseline, l.ID, err)
	}
	b.Baseline = decimal.NewFromInt(cheapest.Cost)

	a := l.Attributes
	if b.QualityUpgrade, err = e.qualityUpgradeCost(a.QualityUpgrades); err != nil {
		return b, fmt.Errorf("listing %s: %w", l.ID, err)
	}
	b.Books = e.bookCost(a.BookCount)
	if b.Stars, err = e.starCost(a.Stars); err != nil {
		return b, fmt.Errorf("listing %s: %w", l.ID, err)
	}
	b.Enchantments = e.enchantmentCost(a.Enchantments)
	if b.Reforge, err = e.reforgeCost(l); err != nil {
		return b, fmt.Errorf("listing %s: %w", l.ID, err)
	}
	return b, nil
}

func (e *Engine) qualityUpgradeCost(count int) (decimal.Decimal, error) {
	if count <= 0 {
		return decimal.Zero, nil
	}
	price, ok := e.prices.InstaSell(QualityUpgradeReagent)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingCommodity, QualityUpgradeReagent)
	}
	return times(price, count), nil
}

func (e *Engine) bookCost(count int) decimal.Decimal {
	primary := min(count, primaryBookCap)
	secondary := max(count-primaryBookCap, 0)
	return times(e.optional(PrimaryBook), primary).Add(times(e.optional(SecondaryBook), secondary))
}

// starCost prices master stars only; normal stars are assumed in the baseline.
func (e *Engine) starCost(count int) (decimal.Decimal, error) {
	master := max(count-normalStarCap, 0)
	if master > len(MasterStars) {
		return decimal.Zero, fmt.Errorf("%w: %d stars", ErrMasterStarOutOfRange, count)
	}
	total := decimal.Zero
	for _, id := range MasterStars[:master] {
		total = total.Add(decimal.NewFromFloat(e.optional(id)))
	}
	return total, nil
}

func (e *Engine) enchantmentCost(enchants map[string]int) decimal.Decimal {
	total := decimal.Zero
	for name, lvl := range enchants {
		total = total.Add(decimal.NewFromFloat(e.enchantmentPrice(name, lvl)))
	}
	return total
}

func (e *Engine) enchantmentPrice(name string, lvl int) float64 {
	suffix := item.Normalize(name) + "_" + strconv.Itoa(lvl)
	if p, ok := e.prices.InstaSell("ENCHANTMENT_" + suffix); ok {
		return p
	}
	if p, ok := e.prices.InstaSell("ENCHANTMENT_ULTIMATE_" + suffix); ok {
		return p
	}
	return 0
}

func (e *Engine) reforgeCost(l market.Listing) (decimal.Decimal, error) {
	if l.Attributes.Reforge == "" {
		return decimal.Zero, nil
	}
	rc, ok := e.reforges.Get(l.Attributes.Reforge)
	if !ok {
		return decimal.Zero, nil
	}
	apply, err := rc.ApplyCost(l.BaseTier)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(e.optional(rc.StoneID)).Add(decimal.NewFromInt(apply)), nil
}

// optional prices a commodity that contributes zero when unquoted.
func (e *Engine) optional(id string) float64 {
	p, _ := e.prices.InstaSell(id)
	return p
}

func times(price float64, n int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(n)))
}

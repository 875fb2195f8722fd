package pricing

import (
	"errors"
	"fmt"
	"strings"

	"ah-flipper/internal/tier"
)

// CommodityPrice is the live bazaar state of one fungible good.
type CommodityPrice struct {
	ID         string
	Name       string
	InstaBuy   float64
	InstaSell  float64
	BuyVolume  int64 // weekly
	SellVolume int64 // weekly
}

// Quote is one product of a bazaar snapshot, before it is joined with the catalog.
type Quote struct {
	ProductID      string
	BuyPrice       float64
	SellPrice      float64
	BuyMovingWeek  int64
	SellMovingWeek int64
}

// Commodities is keyed by exact commodity id. Read-only once built.
type Commodities map[string]CommodityPrice

func (c Commodities) Get(id string) (CommodityPrice, bool) {
	p, ok := c[id]
	return p, ok
}

// InstaSell returns the instant-sell price of id.
func (c Commodities) InstaSell(id string) (float64, bool) {
	p, ok := c[id]
	if !ok {
		return 0, false
	}
	return p.InstaSell, true
}

// ReforgeCost describes how to apply one reforge.
type ReforgeCost struct {
	Name       string  // lower-cased
	StoneID    string  // commodity id of the reforge stone
	ApplyCosts []int64 // indexed by tier rank
}

var ErrNoApplyCosts = errors.New("reforge has no apply costs")

// ApplyCost returns the cost of applying the reforge to an item of tier t,
// clamped to the last entry when the table is shorter than the rank.
func (r ReforgeCost) ApplyCost(t tier.Tier) (int64, error) {
	if len(r.ApplyCosts) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoApplyCosts, r.Name)
	}
	i := min(t.Rank(), len(r.ApplyCosts)-1)
	return r.ApplyCosts[i], nil
}

// Reforges is keyed by lower-cased reforge name. Read-only once loaded.
type Reforges map[string]ReforgeCost

func (r Reforges) Get(name string) (ReforgeCost, bool) {
	rc, ok := r[strings.ToLower(strings.TrimSpace(name))]
	return rc, ok
}

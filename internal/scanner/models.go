package scanner

import (
	"ah-flipper/internal/market"
	"ah-flipper/internal/valuation"
)

// Thresholds are in currency units except MinBucket.
type Thresholds struct {
	MinBucket int   // liquidity floor for snipes
	MinProfit int64 // snipe: second cheapest minus cheapest must exceed this
	MaxCost   int64 // snipe: cheapest must cost less than this
	MinMargin int64 // flip: worth minus cost must exceed this
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinBucket: 25,
		MinProfit: 500_000,
		MaxCost:   12_000_000,
		MinMargin: 3_000_000,
	}
}

// Snipe is a listing far cheaper than the next comparable one.
type Snipe struct {
	ListingID      string           `json:"listing_id"`
	Name           string           `json:"name"`
	Key            market.FilterKey `json:"-"`
	Cheapest       int64            `json:"cheapest_cost"`
	SecondCheapest int64            `json:"second_cheapest_cost"`
	Profit         int64            `json:"profit"`
	ProfitPct      float64          `json:"profit_pct"`
}

// Flip is a listing far cheaper than its estimated worth.
type Flip struct {
	ListingID string              `json:"listing_id"`
	Name      string              `json:"name"`
	Key       market.FilterKey    `json:"-"`
	Cost      int64               `json:"cost"`
	Worth     float64             `json:"estimated_worth"`
	Margin    float64             `json:"margin"`
	Breakdown valuation.Breakdown `json:"-"`
}

// Result collects one run of both scans.
type Result struct {
	Snipes []Snipe
	Flips  []Flip
	// Unpriced counts listings skipped because their bucket had no baseline.
	Unpriced int
}

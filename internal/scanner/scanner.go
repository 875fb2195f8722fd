package scanner

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"ah-flipper/internal/market"
	"ah-flipper/internal/valuation"
)

// Scanner reports snipes and flips. It never mutates the index or listings.
type Scanner struct {
	index  *market.Index
	engine *valuation.Engine
	th     Thresholds
	log    *slog.Logger
}

func New(index *market.Index, engine *valuation.Engine, th Thresholds, logger *slog.Logger) *Scanner {
	return &Scanner{index: index, engine: engine, th: th, log: logger}
}

// Run performs both scans concurrently.
func (s *Scanner) Run(ctx context.Context, listings []market.Listing) (Result, error) {
	var res Result
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Snipes = s.Snipes()
		return nil
	})
	g.Go(func() error {
		flips, unpriced, err := s.Flips(listings)
		res.Flips = flips
		res.Unpriced = unpriced
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Snipes walks every bucket with enough liquidity and compares its two cheapest listings.
func (s *Scanner) Snipes() []Snipe {
	var out []Snipe
	for _, key := range s.index.Keys() {
		bucket, err := s.index.Lookup(key)
		if err != nil || len(bucket) < s.th.MinBucket || len(bucket) < 2 {
			continue
		}
		first, second := bucket[0], bucket[1]
		profit := second.Cost - first.Cost
		if profit <= s.th.MinProfit || first.Cost >= s.th.MaxCost {
			continue
		}
		pct := 0.0
		if second.Cost != 0 {
			pct, _ = decimal.NewFromInt(profit).Div(decimal.NewFromInt(second.Cost)).Mul(decimal.NewFromInt(100)).Float64()
		}
		out = append(out, Snipe{
			ListingID:      first.ID,
			Name:           first.Name,
			Key:            key,
			Cheapest:       first.Cost,
			SecondCheapest: second.Cost,
			Profit:         profit,
			ProfitPct:      pct,
		})
	}
	slices.SortStableFunc(out, func(a, b Snipe) int { return cmp.Compare(b.Profit, a.Profit) })
	return out
}

// Flips values every listing once. Listings without a baseline are skipped and
// counted; any other valuation error aborts the scan.
func (s *Scanner) Flips(listings []market.Listing) (flips []Flip, unpriced int, err error) {
	minMargin := decimal.NewFromInt(s.th.MinMargin)
	for _, l := range listings {
		b, err := s.engine.Breakdown(l)
		if errors.Is(err, valuation.ErrMissingBaseline) {
			unpriced++
			s.log.Debug("listing skipped", slog.String("listing", l.ID), slog.String("err", err.Error()))
			continue
		}
		if err != nil {
			return nil, unpriced, err
		}
		total := b.Total()
		margin := total.Sub(decimal.NewFromInt(l.Cost))
		if !margin.GreaterThan(minMargin) {
			continue
		}
		worth, _ := total.Float64()
		m, _ := margin.Float64()
		flips = append(flips, Flip{
			ListingID: l.ID,
			Name:      l.Name,
			Key:       l.Key(),
			Cost:      l.Cost,
			Worth:     worth,
			Margin:    m,
			Breakdown: b,
		})
	}
	slices.SortStableFunc(flips, func(a, b Flip) int { return cmp.Compare(b.Margin, a.Margin) })
	return flips, unpriced, nil
}

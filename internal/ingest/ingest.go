package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"ah-flipper/internal/hypixel"
	"ah-flipper/internal/market"
)

// Source serves auction pages. *hypixel.Client satisfies it.
type Source interface {
	AuctionPage(ctx context.Context, page int) (hypixel.AuctionPage, error)
}

// Snapshot is the fully populated, read-only result of one ingestion pass.
type Snapshot struct {
	Index    *market.Index
	Listings []market.Listing

	Pages      int
	Records    int // every record seen, eligible or not
	Ineligible int // claimed or bidding auctions
	Updated    time.Time
}

type pageResult struct {
	listings   []market.Listing
	records    int
	ineligible int
}

// Run fetches and decodes every page with up to workers in flight, then
// inserts listings into a fresh index from this goroutine only, in page order.
// Any fetch or decode failure aborts the pass.
func Run(ctx context.Context, src Source, workers int, logger *slog.Logger) (*Snapshot, error) {
	first, err := src.AuctionPage(ctx, 0)
	if err != nil {
		return nil, err
	}
	total := max(first.TotalPages, 1)
	results := make([]pageResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := 0; i < total; i++ {
		i := i
		g.Go(func() error {
			page := first
			if i > 0 {
				var err error
				if page, err = src.AuctionPage(gctx, i); err != nil {
					return err
				}
			}
			res, err := decodePage(page)
			if err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}
			results[i] = res
			logger.Debug("decoded auction page", slog.Int("page", i), slog.Int("listings", len(res.listings)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{Index: market.NewIndex(), Pages: total, Updated: first.Updated()}
	for _, res := range results {
		snap.Records += res.records
		snap.Ineligible += res.ineligible
		for _, l := range res.listings {
			snap.Index.Add(l)
			snap.Listings = append(snap.Listings, l)
		}
	}
	logger.Info("ingested auctions",
		slog.Int("pages", snap.Pages),
		slog.Int("records", snap.Records),
		slog.Int("listings", len(snap.Listings)),
		slog.Int("buckets", snap.Index.Len()),
	)
	return snap, nil
}

func decodePage(p hypixel.AuctionPage) (pageResult, error) {
	recs := p.Records()
	res := pageResult{records: len(recs), listings: make([]market.Listing, 0, len(recs))}
	for _, r := range recs {
		if !r.Eligible() {
			res.ineligible++
			continue
		}
		l, err := market.Decode(r)
		if err != nil {
			return res, err
		}
		res.listings = append(res.listings, l)
	}
	return res, nil
}

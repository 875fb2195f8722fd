package market

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var ErrKeyNotFound = errors.New("filter key not in index")

// Index holds the live listings of each filter key, cheapest first.
//
// It has a single writer: all Inserts must happen before any reader starts,
// after which it is safe for any number of concurrent readers.
type Index struct {
	buckets map[FilterKey][]Listing
}

func NewIndex() *Index {
	return &Index{buckets: make(map[FilterKey][]Listing)}
}

// Insert appends l to the bucket for key and keeps the bucket sorted by cost.
// Listings are not deduplicated; inserting the same one twice stores it twice.
func (ix *Index) Insert(key FilterKey, l Listing) {
	b := ix.buckets[key]
	// Upper bound: equal costs keep insertion order.
	i, _ := slices.BinarySearchFunc(b, l.Cost, func(e Listing, cost int64) int {
		if e.Cost <= cost {
			return -1
		}
		return 1
	})
	ix.buckets[key] = slices.Insert(b, i, l)
}

// Add inserts l under its own filter key.
func (ix *Index) Add(l Listing) { ix.Insert(l.Key(), l) }

// Lookup returns the bucket for key, cheapest first. The slice must not be modified.
func (ix *Index) Lookup(key FilterKey) ([]Listing, error) {
	b, ok := ix.buckets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return b, nil
}

// Cheapest returns the lowest-cost listing for key.
func (ix *Index) Cheapest(key FilterKey) (Listing, error) {
	b, err := ix.Lookup(key)
	if err != nil {
		return Listing{}, err
	}
	return b[0], nil
}

// Has reports whether key was ever inserted.
func (ix *Index) Has(key FilterKey) bool {
	_, ok := ix.buckets[key]
	return ok
}

// Keys returns every filter key in a stable order.
func (ix *Index) Keys() []FilterKey {
	keys := make([]FilterKey, 0, len(ix.buckets))
	for k := range ix.buckets {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b FilterKey) int {
		if c := cmp.Compare(a.Identity, b.Identity); c != 0 {
			return c
		}
		return cmp.Compare(a.Tier, b.Tier)
	})
	return keys
}

// Len is the number of buckets.
func (ix *Index) Len() int { return len(ix.buckets) }

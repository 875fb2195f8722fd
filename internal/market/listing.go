package market

import (
	"errors"
	"fmt"

	"ah-flipper/internal/item"
	"ah-flipper/internal/tier"
)

var ErrIneligible = errors.New("listing is claimed or not fixed-price")

// NewListing builds a Listing from a feed record and its decoded attributes.
// It has no side effects; indexing is a separate step.
func NewListing(r Record, attrs item.Attributes) (Listing, error) {
	if !r.Eligible() {
		return Listing{}, fmt.Errorf("%w: %s", ErrIneligible, r.ID)
	}
	raw, err := tier.Parse(r.Tier)
	if err != nil {
		return Listing{}, fmt.Errorf("listing %s: %w", r.ID, err)
	}
	base, err := tier.Resolve(raw, attrs.QualityUpgrades)
	if err != nil {
		return Listing{}, fmt.Errorf("listing %s: %w", r.ID, err)
	}
	return Listing{
		ID:              r.ID,
		Cost:            r.Cost,
		Start:           r.Start,
		End:             r.End,
		Claimed:         r.Claimed,
		Name:            r.DisplayName,
		Attributes:      attrs,
		RawTier:         raw,
		BaseTier:        base,
		QualityUpgrades: attrs.QualityUpgrades,
	}, nil
}

// Decode decodes the record's item bytes and builds the Listing.
func Decode(r Record) (Listing, error) {
	attrs, err := item.Decode(r.ItemBytes, r.DisplayName)
	if err != nil {
		return Listing{}, fmt.Errorf("listing %s: %w", r.ID, err)
	}
	return NewListing(r, attrs)
}

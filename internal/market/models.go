package market

import (
	"fmt"
	"time"

	"ah-flipper/internal/item"
	"ah-flipper/internal/tier"
)

// Record is one auction as it arrives from the feed, before decoding.
type Record struct {
	ID          string
	Claimed     bool
	Cost        int64
	DisplayName string
	Start       time.Time
	End         time.Time
	FixedPrice  bool   // "buy it now"; bidding auctions are never indexed
	ItemBytes   string // base64 gzip NBT
	Tier        string // feed tier name
}

// Eligible reports whether the record may enter the index.
func (r Record) Eligible() bool { return r.FixedPrice && !r.Claimed }

// Listing is an immutable, decoded, tier-resolved auction.
type Listing struct {
	ID              string
	Cost            int64
	Start           time.Time
	End             time.Time
	Claimed         bool
	Name            string
	Attributes      item.Attributes
	RawTier         tier.Tier
	BaseTier        tier.Tier
	QualityUpgrades int
}

// FilterKey groups comparable listings.
type FilterKey struct {
	Tier     tier.Tier
	Identity string
}

func (k FilterKey) String() string { return fmt.Sprintf("%s/%s", k.Tier, k.Identity) }

// Key is the listing's own filter key.
func (l Listing) Key() FilterKey {
	return FilterKey{Tier: l.BaseTier, Identity: l.Attributes.Identity}
}

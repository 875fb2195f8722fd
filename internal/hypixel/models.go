package hypixel

import (
	"time"

	"ah-flipper/internal/market"
	"ah-flipper/internal/pricing"
)

// Auction is one record of an auctions page.
type Auction struct {
	UUID        string `json:"uuid"`
	Claimed     bool   `json:"claimed"`
	StartingBid int64  `json:"starting_bid"`
	ItemName    string `json:"item_name"`
	Start       int64  `json:"start"` // epoch ms
	End         int64  `json:"end"`   // epoch ms
	BIN         bool   `json:"bin"`
	ItemBytes   string `json:"item_bytes"`
	Tier        string `json:"tier"`
}

type AuctionPage struct {
	Success       bool      `json:"success"`
	Cause         string    `json:"cause"`
	Page          int       `json:"page"`
	TotalPages    int       `json:"totalPages"`
	TotalAuctions int       `json:"totalAuctions"`
	LastUpdated   int64     `json:"lastUpdated"`
	Auctions      []Auction `json:"auctions"`
}

func (p AuctionPage) Updated() time.Time { return time.UnixMilli(p.LastUpdated) }

// Records converts the page into feed records, eligible or not.
func (p AuctionPage) Records() []market.Record {
	out := make([]market.Record, 0, len(p.Auctions))
	for _, a := range p.Auctions {
		out = append(out, market.Record{
			ID:          a.UUID,
			Claimed:     a.Claimed,
			Cost:        a.StartingBid,
			DisplayName: a.ItemName,
			Start:       time.UnixMilli(a.Start),
			End:         time.UnixMilli(a.End),
			FixedPrice:  a.BIN,
			ItemBytes:   a.ItemBytes,
			Tier:        a.Tier,
		})
	}
	return out
}

type quickStatus struct {
	ProductID      string  `json:"productId"`
	BuyPrice       float64 `json:"buyPrice"`
	SellPrice      float64 `json:"sellPrice"`
	BuyMovingWeek  int64   `json:"buyMovingWeek"`
	SellMovingWeek int64   `json:"sellMovingWeek"`
}

type Product struct {
	ProductID   string      `json:"product_id"`
	QuickStatus quickStatus `json:"quick_status"`
}

type Bazaar struct {
	Success     bool               `json:"success"`
	Cause       string             `json:"cause"`
	LastUpdated int64              `json:"lastUpdated"`
	Products    map[string]Product `json:"products"`
}

func (b Bazaar) Updated() time.Time { return time.UnixMilli(b.LastUpdated) }

// Quotes flattens the snapshot for the commodity table.
func (b Bazaar) Quotes() map[string]pricing.Quote {
	out := make(map[string]pricing.Quote, len(b.Products))
	for id, p := range b.Products {
		pid := p.ProductID
		if pid == "" {
			pid = id
		}
		qs := p.QuickStatus
		out[id] = pricing.Quote{
			ProductID:      pid,
			BuyPrice:       qs.BuyPrice,
			SellPrice:      qs.SellPrice,
			BuyMovingWeek:  qs.BuyMovingWeek,
			SellMovingWeek: qs.SellMovingWeek,
		}
	}
	return out
}

package hypixel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestAuctionPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/skyblock/auctions" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("page") != "3" {
			t.Errorf("page query got %q", r.URL.Query().Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"page":3,"totalPages":7,"totalAuctions":2,"lastUpdated":1700000000000,
			"auctions":[
				{"uuid":"a1","claimed":false,"starting_bid":1500,"item_name":"Hyperion","start":1699999000000,"end":1700009000000,"bin":true,"item_bytes":"H4s=","tier":"MYTHIC"},
				{"uuid":"a2","claimed":true,"starting_bid":10,"item_name":"Dirt","bin":false,"tier":"COMMON"}
			]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, quiet)
	p, err := c.AuctionPage(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalPages != 7 || len(p.Auctions) != 2 {
		t.Fatalf("page got %+v", p)
	}
	recs := p.Records()
	if recs[0].ID != "a1" || recs[0].Cost != 1500 || !recs[0].FixedPrice || recs[0].Tier != "MYTHIC" {
		t.Fatalf("record got %+v", recs[0])
	}
	if !recs[0].End.Equal(time.UnixMilli(1700009000000)) {
		t.Fatalf("end got %v", recs[0].End)
	}
	if recs[1].Eligible() {
		t.Fatal("claimed bidding auction must not be eligible")
	}
	if !p.Updated().Equal(time.UnixMilli(1700000000000)) {
		t.Fatalf("updated got %v", p.Updated())
	}
}

func TestAuctionPageFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "0":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_, _ = io.WriteString(w, `{"success":false,"cause":"Page not found"}`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, quiet)
	if _, err := c.AuctionPage(context.Background(), 0); err == nil {
		t.Fatal("want status error")
	}
	if _, err := c.AuctionPage(context.Background(), 99); !errors.Is(err, ErrUnsuccessful) {
		t.Fatalf("want ErrUnsuccessful, got %v", err)
	}
}

func TestBazaarQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/skyblock/bazaar" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"lastUpdated":1700000000000,"products":{
			"HOT_POTATO_BOOK":{"product_id":"HOT_POTATO_BOOK","quick_status":{"productId":"HOT_POTATO_BOOK","buyPrice":90000.5,"sellPrice":80000.25,"buyMovingWeek":1000,"sellMovingWeek":2000}}
		}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, quiet)
	b, err := c.Bazaar(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	q, ok := b.Quotes()["HOT_POTATO_BOOK"]
	if !ok {
		t.Fatal("missing quote")
	}
	if q.SellPrice != 80000.25 || q.BuyPrice != 90000.5 || q.SellMovingWeek != 2000 || q.BuyMovingWeek != 1000 {
		t.Fatalf("quote got %+v", q)
	}
}

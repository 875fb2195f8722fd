package hypixel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.hypixel.net"

var ErrUnsuccessful = errors.New("api reported failure")

// Client reads the public auction and bazaar endpoints.
type Client struct {
	baseURL string
	http    *resty.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	httpc := resty.New()
	httpc.SetBaseURL(baseURL)
	httpc.SetTimeout(timeout)
	httpc.SetHeader("Accept", "application/json")
	return &Client{baseURL: baseURL, http: httpc, logger: logger}
}

func (c *Client) BaseURL() string { return c.baseURL }

// AuctionPage fetches one page of live auctions.
func (c *Client) AuctionPage(ctx context.Context, page int) (AuctionPage, error) {
	var out AuctionPage
	if err := c.get(ctx, "/skyblock/auctions", map[string]string{"page": strconv.Itoa(page)}, &out); err != nil {
		return out, fmt.Errorf("auctions page %d: %w", page, err)
	}
	if !out.Success {
		return out, fmt.Errorf("auctions page %d: %w: %s", page, ErrUnsuccessful, out.Cause)
	}
	c.logger.Debug("got auction page",
		slog.Int("page", page),
		slog.Int("total_pages", out.TotalPages),
		slog.Int("auctions", len(out.Auctions)),
	)
	return out, nil
}

// Bazaar fetches the current commodity snapshot.
func (c *Client) Bazaar(ctx context.Context) (Bazaar, error) {
	var out Bazaar
	if err := c.get(ctx, "/v2/skyblock/bazaar", nil, &out); err != nil {
		return out, fmt.Errorf("bazaar: %w", err)
	}
	if !out.Success {
		return out, fmt.Errorf("bazaar: %w: %s", ErrUnsuccessful, out.Cause)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, v any) error {
	resp, err := c.http.R().SetContext(ctx).SetQueryParams(query).Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("status %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

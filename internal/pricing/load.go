package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Catalog maps commodity id to display name.
type Catalog map[string]string

type catalogFile struct {
	Items []map[string]string `json:"items"`
}

// LoadCatalog reads the static item-name catalog.
func LoadCatalog(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseCatalog(b)
}

func ParseCatalog(b []byte) (Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := make(Catalog, len(f.Items))
	for _, entry := range f.Items {
		for id, name := range entry {
			c[id] = name
		}
	}
	return c, nil
}

// BuildCommodities joins the catalog with a bazaar snapshot. Catalog ids that
// the snapshot does not quote are returned in missing. An empty catalog takes
// every quoted product, named by its id.
func BuildCommodities(catalog Catalog, quotes map[string]Quote) (c Commodities, missing []string) {
	c = make(Commodities, len(quotes))
	if len(catalog) == 0 {
		for id, q := range quotes {
			c[id] = fromQuote(id, id, q)
		}
		return c, nil
	}
	for id, name := range catalog {
		q, ok := quotes[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		c[id] = fromQuote(id, name, q)
	}
	return c, missing
}

func fromQuote(id, name string, q Quote) CommodityPrice {
	if q.ProductID != "" {
		id = q.ProductID
	}
	return CommodityPrice{
		ID:         id,
		Name:       name,
		InstaBuy:   q.BuyPrice,
		InstaSell:  q.SellPrice,
		BuyVolume:  q.BuyMovingWeek,
		SellVolume: q.SellMovingWeek,
	}
}

type reforgeEntry struct {
	NameID    string            `json:"name_id"`
	ApplyCost []json.RawMessage `json:"apply_cost"`
}

type reforgesFile struct {
	Reforges []map[string]reforgeEntry `json:"reforges"`
}

// LoadReforges reads the reforge reference table.
func LoadReforges(path string) (Reforges, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseReforges(b)
}

func ParseReforges(b []byte) (Reforges, error) {
	var f reforgesFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse reforges: %w", err)
	}
	out := make(Reforges, len(f.Reforges))
	for _, entry := range f.Reforges {
		for name, e := range entry {
			costs := make([]int64, 0, len(e.ApplyCost))
			for i, raw := range e.ApplyCost {
				v, err := parseCost(raw)
				if err != nil {
					return nil, fmt.Errorf("reforge %s apply_cost[%d]: %w", name, i, err)
				}
				costs = append(costs, v)
			}
			key := strings.ToLower(name)
			out[key] = ReforgeCost{Name: key, StoneID: e.NameID, ApplyCosts: costs}
		}
	}
	return out, nil
}

// parseCost accepts "1,000,000" strings as well as bare numbers.
func parseCost(raw json.RawMessage) (int64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, fmt.Errorf("not a cost: %s", raw)
		}
		s = n.String()
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseInt(s, 10, 64)
}

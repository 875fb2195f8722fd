package report

import (
	"bufio"
	"fmt"
	"io"

	"ah-flipper/internal/scanner"
)

// WriteText prints one line per candidate, snipes first.
func WriteText(w io.Writer, res scanner.Result) error {
	bw := bufio.NewWriter(w)
	for _, s := range res.Snipes {
		fmt.Fprintf(bw, "snipe: /viewauction %s | %s | profit: %d (%.2f%%) | cheapest: %d | next: %d\n",
			s.ListingID, s.Name, s.Profit, s.ProfitPct, s.Cheapest, s.SecondCheapest)
	}
	for _, f := range res.Flips {
		fmt.Fprintf(bw, "flip: /viewauction %s | %s | cost: %d | worth: %.0f | margin: %.0f\n",
			f.ListingID, f.Name, f.Cost, f.Worth, f.Margin)
	}
	return bw.Flush()
}

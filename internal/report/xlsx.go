package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ah-flipper/internal/scanner"
)

const (
	SnipeSheet = "Snipes"
	FlipSheet  = "Flips"
)

var (
	snipeHeader = []any{"Listing", "Name", "Tier", "Identity", "Cheapest", "Second cheapest", "Profit", "Profit %"}
	flipHeader  = []any{"Listing", "Name", "Tier", "Identity", "Cost", "Estimated worth", "Margin",
		"Baseline", "Quality upgrade", "Books", "Stars", "Enchantments", "Reforge"}
)

// WriteXLSX saves both candidate lists to a workbook at path.
func WriteXLSX(path, runID string, res scanner.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SnipeSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(FlipSheet); err != nil {
		return err
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: "ah-flipper run " + runID, Identifier: runID}); err != nil {
		return err
	}

	if err := setRow(f, SnipeSheet, 1, snipeHeader); err != nil {
		return err
	}
	for i, s := range res.Snipes {
		row := []any{s.ListingID, s.Name, s.Key.Tier.String(), s.Key.Identity, s.Cheapest, s.SecondCheapest, s.Profit, s.ProfitPct}
		if err := setRow(f, SnipeSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, FlipSheet, 1, flipHeader); err != nil {
		return err
	}
	for i, fl := range res.Flips {
		b := fl.Breakdown
		row := []any{fl.ListingID, fl.Name, fl.Key.Tier.String(), fl.Key.Identity, fl.Cost, fl.Worth, fl.Margin,
			b.Baseline.InexactFloat64(), b.QualityUpgrade.InexactFloat64(), b.Books.InexactFloat64(),
			b.Stars.InexactFloat64(), b.Enchantments.InexactFloat64(), b.Reforge.InexactFloat64()}
		if err := setRow(f, FlipSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName     = "Sheet1"
	productHeader = "Produto"
	totalHeader   = "Total"
)

// writeMatrixXLSX renders a matrix to a one-sheet workbook: product
// descriptions down column A, one column per buyer, a trailing Total column,
// and blank cells where a buyer ordered nothing.
func writeMatrixXLSX(m *Matrix, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	set := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, value)
	}

	if err := set(1, 1, productHeader); err != nil {
		return err
	}
	for i, buyer := range m.Buyers {
		if err := set(i+2, 1, buyer); err != nil {
			return err
		}
	}
	totalCol := len(m.Buyers) + 2
	if err := set(totalCol, 1, totalHeader); err != nil {
		return err
	}

	for i, product := range m.Products {
		row := i + 2
		if err := set(1, row, product); err != nil {
			return err
		}
		for j, buyer := range m.Buyers {
			qty, ok := m.Cell(product, buyer)
			if !ok {
				continue
			}
			if err := set(j+2, row, qty); err != nil {
				return err
			}
		}
		if err := set(totalCol, row, m.Total(product)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}

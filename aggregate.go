package main

import "sort"

// Matrix is the consolidated product-by-buyer quantity table for one demand.
// Rows are product descriptions sorted ascending; columns are buyer names in
// first-encountered order. Missing (product, buyer) combinations stay absent
// so the export can distinguish "no order" from "ordered zero units".
type Matrix struct {
	DemandID   string
	DemandName string
	Products   []string
	Buyers     []string
	cells      map[string]map[string]float64
}

// buildMatrix pivots one demand's expanded rows into wide form, summing
// quantities per (product, buyer) pair. Deterministic for identical input.
func buildMatrix(demandID, demandName string, rows []OrderRow) *Matrix {
	m := &Matrix{
		DemandID:   demandID,
		DemandName: demandName,
		cells:      make(map[string]map[string]float64),
	}
	seenBuyer := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seenBuyer[r.Buyer]; !ok {
			seenBuyer[r.Buyer] = struct{}{}
			m.Buyers = append(m.Buyers, r.Buyer)
		}
		row, ok := m.cells[r.Product]
		if !ok {
			row = make(map[string]float64)
			m.cells[r.Product] = row
			m.Products = append(m.Products, r.Product)
		}
		row[r.Buyer] += r.Quantity
	}
	sort.Strings(m.Products)
	return m
}

// Cell returns the summed quantity for a (product, buyer) pair and whether
// the combination is present at all.
func (m *Matrix) Cell(product, buyer string) (float64, bool) {
	qty, ok := m.cells[product][buyer]
	return qty, ok
}

// Total sums the buyer cells present for one product row.
func (m *Matrix) Total(product string) float64 {
	total := 0.0
	for _, qty := range m.cells[product] {
		total += qty
	}
	return total
}

package main

import (
	"reflect"
	"testing"
)

func demandOneRows() []OrderRow {
	return []OrderRow{
		{Buyer: "Springfield", Product: "Pipe 2in", Quantity: 5, DemandID: "d1", DemandName: "D1"},
		{Buyer: "Shelbyville", Product: "Pipe 2in", Quantity: 3, DemandID: "d1", DemandName: "D1"},
		{Buyer: "Shelbyville", Product: "Valve", Quantity: 1, DemandID: "d1", DemandName: "D1"},
	}
}

func TestBuildMatrixScenario(t *testing.T) {
	m := buildMatrix("d1", "D1", demandOneRows())

	if !reflect.DeepEqual(m.Products, []string{"Pipe 2in", "Valve"}) {
		t.Fatalf("unexpected product rows: %v", m.Products)
	}
	if !reflect.DeepEqual(m.Buyers, []string{"Springfield", "Shelbyville"}) {
		t.Fatalf("unexpected buyer columns: %v", m.Buyers)
	}

	if qty, ok := m.Cell("Pipe 2in", "Springfield"); !ok || qty != 5 {
		t.Fatalf("Pipe 2in / Springfield: expected 5, got %v (present=%v)", qty, ok)
	}
	if qty, ok := m.Cell("Pipe 2in", "Shelbyville"); !ok || qty != 3 {
		t.Fatalf("Pipe 2in / Shelbyville: expected 3, got %v (present=%v)", qty, ok)
	}
	if total := m.Total("Pipe 2in"); total != 8 {
		t.Fatalf("Pipe 2in total: expected 8, got %v", total)
	}

	// Absent combination: blank, not zero.
	if _, ok := m.Cell("Valve", "Springfield"); ok {
		t.Fatalf("Valve / Springfield should be absent")
	}
	if qty, ok := m.Cell("Valve", "Shelbyville"); !ok || qty != 1 {
		t.Fatalf("Valve / Shelbyville: expected 1, got %v (present=%v)", qty, ok)
	}
	if total := m.Total("Valve"); total != 1 {
		t.Fatalf("Valve total: expected 1, got %v", total)
	}
}

func TestBuildMatrixSumsRepeatedPairs(t *testing.T) {
	rows := []OrderRow{
		{Buyer: "Springfield", Product: "Pipe 2in", Quantity: 5, DemandID: "d1"},
		{Buyer: "Springfield", Product: "Pipe 2in", Quantity: 2.5, DemandID: "d1"},
	}
	m := buildMatrix("d1", "D1", rows)
	if qty, ok := m.Cell("Pipe 2in", "Springfield"); !ok || qty != 7.5 {
		t.Fatalf("expected summed quantity 7.5, got %v (present=%v)", qty, ok)
	}
}

func TestMatrixTotalEqualsSumOfPresentCells(t *testing.T) {
	m := buildMatrix("d1", "D1", demandOneRows())
	for _, product := range m.Products {
		sum := 0.0
		for _, buyer := range m.Buyers {
			if qty, ok := m.Cell(product, buyer); ok {
				sum += qty
			}
		}
		if total := m.Total(product); total != sum {
			t.Fatalf("%s: total %v != sum of cells %v", product, total, sum)
		}
	}
}

func TestBuildMatrixDeterministic(t *testing.T) {
	first := buildMatrix("d1", "D1", demandOneRows())
	second := buildMatrix("d1", "D1", demandOneRows())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different matrices")
	}
}

func TestBuildMatrixSortsProductsNotBuyers(t *testing.T) {
	rows := []OrderRow{
		{Buyer: "Zanzibar", Product: "Zinco", Quantity: 1, DemandID: "d1"},
		{Buyer: "Alameda", Product: "Areia", Quantity: 1, DemandID: "d1"},
	}
	m := buildMatrix("d1", "D1", rows)
	if !reflect.DeepEqual(m.Products, []string{"Areia", "Zinco"}) {
		t.Fatalf("products should sort ascending: %v", m.Products)
	}
	if !reflect.DeepEqual(m.Buyers, []string{"Zanzibar", "Alameda"}) {
		t.Fatalf("buyers should keep first-encountered order: %v", m.Buyers)
	}
}

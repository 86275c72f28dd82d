package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestSpreadsheetRoundTrip(t *testing.T) {
	m := buildMatrix("d1", "D1", demandOneRows())
	path := filepath.Join(t.TempDir(), "consolidado.xlsx")

	if err := writeMatrixXLSX(m, path); err != nil {
		t.Fatalf("write spreadsheet: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen spreadsheet: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 product rows, got %d rows", len(rows))
	}

	header := rows[0]
	if !reflect.DeepEqual(header, []string{"Produto", "Springfield", "Shelbyville", "Total"}) {
		t.Fatalf("unexpected header row: %v", header)
	}
	if !reflect.DeepEqual(rows[1], []string{"Pipe 2in", "5", "3", "8"}) {
		t.Fatalf("unexpected Pipe 2in row: %v", rows[1])
	}

	// The absent Valve/Springfield combination must read back empty, not "0".
	valve := rows[2]
	if valve[0] != "Valve" {
		t.Fatalf("expected Valve row, got %v", valve)
	}
	if valve[1] != "" {
		t.Fatalf("absent combination should be blank, got %q", valve[1])
	}
	if valve[2] != "1" || valve[3] != "1" {
		t.Fatalf("unexpected Valve quantities: %v", valve)
	}
}

func TestWritePDF(t *testing.T) {
	m := buildMatrix("d1", "Demanda de município", demandOneRows())
	path := filepath.Join(t.TempDir(), "consolidado.pdf")

	if err := writeMatrixPDF(m, path); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat pdf: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("pdf file is empty")
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := formatQuantity(8); got != "8" {
		t.Fatalf("expected 8, got %q", got)
	}
	if got := formatQuantity(2.5); got != "2.5" {
		t.Fatalf("expected 2.5, got %q", got)
	}
}

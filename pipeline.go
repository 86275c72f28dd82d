package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// pipeline runs one daily consolidation pass over explicitly constructed
// collaborators. Everything is sequential: one query finishes before the
// next begins, and demands are processed one at a time.
type pipeline struct {
	demands  demandSource
	carts    cartSource
	refs     referenceSource
	uploader artifactStore
	events   eventPublisher
	logger   *log.Logger

	blobBaseURL string
	notifyTo    string
	outDir      string
	now         func() time.Time
}

// RunReport is the outcome of one run, so a scheduler can tell "no work
// today" apart from a failure without parsing logs.
type RunReport struct {
	RunID     string
	Demands   int
	Carts     int
	Rows      int
	Dropped   int
	Skipped   []string
	Artifacts []string
	Notified  []string
}

// dayWindow returns the half-open interval [midnight today, midnight
// tomorrow) in the clock's location.
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func (p *pipeline) run(ctx context.Context) (RunReport, error) {
	report := RunReport{RunID: uuid.NewString()}
	from, to := dayWindow(p.now())
	p.logger.Printf("run %s: consolidating demands closing in [%s, %s)",
		report.RunID, from.Format("2006-01-02"), to.Format("2006-01-02"))

	demands, err := p.demands.DemandsClosingBetween(ctx, from, to)
	if err != nil {
		return report, fmt.Errorf("select closing demands: %w", err)
	}
	report.Demands = len(demands)
	if len(demands) == 0 {
		p.logger.Printf("run %s: there's no demand closing today", report.RunID)
		return report, nil
	}

	ids := make([]string, 0, len(demands))
	names := make(map[string]string, len(demands))
	for _, d := range demands {
		id := d.ID.Hex()
		ids = append(ids, id)
		names[id] = d.Name
	}

	carts, err := p.carts.ClosedCarts(ctx, ids)
	if err != nil {
		return report, fmt.Errorf("select closed carts: %w", err)
	}
	report.Carts = len(carts)
	p.logger.Printf("run %s: %d orders for today", report.RunID, len(carts))

	if needsReference(carts) {
		products, err := p.refs.Products(ctx)
		if err != nil {
			return report, fmt.Errorf("load product references: %w", err)
		}
		counties, err := p.refs.Counties(ctx)
		if err != nil {
			return report, fmt.Errorf("load county references: %w", err)
		}
		ix := buildReferenceIndex(products, counties)
		for i := range carts {
			ix.enrich(&carts[i])
		}
	}

	rows, dropped := expandCarts(carts, names)
	report.Rows = len(rows)
	report.Dropped = dropped
	if dropped > 0 {
		p.logger.Printf("run %s: dropped %d invalid line items", report.RunID, dropped)
	}

	var failures []error
	for _, d := range demands {
		id := d.ID.Hex()
		demandRows := rowsForDemand(rows, id)
		if len(demandRows) == 0 {
			p.logger.Printf("run %s: there weren't any orders for %s", report.RunID, id)
			report.Skipped = append(report.Skipped, id)
			continue
		}

		matrix := buildMatrix(id, d.Name, demandRows)
		base := p.now().Format(fileTimestampLayout) + " " + d.Name
		xlsxName := base + ".xlsx"
		pdfName := base + ".pdf"

		if err := writeMatrixXLSX(matrix, filepath.Join(p.outDir, xlsxName)); err != nil {
			return report, fmt.Errorf("render %s: %w", xlsxName, err)
		}
		if err := writeMatrixPDF(matrix, filepath.Join(p.outDir, pdfName)); err != nil {
			return report, fmt.Errorf("render %s: %w", pdfName, err)
		}
		for _, name := range []string{xlsxName, pdfName} {
			if err := p.uploader.Upload(ctx, filepath.Join(p.outDir, name)); err != nil {
				return report, err
			}
		}
		report.Artifacts = append(report.Artifacts, xlsxName, pdfName)

		body := notificationBody(p.blobBaseURL, []string{xlsxName, pdfName})
		if err := p.events.PublishEmail(ctx, p.notifyTo, emailSubject, body); err != nil {
			p.logger.Printf("run %s: notification for %s failed: %v", report.RunID, id, err)
			failures = append(failures, fmt.Errorf("notify %s: %w", id, err))
			continue
		}
		p.logger.Printf("run %s: email has been sent to %s", report.RunID, p.notifyTo)
		report.Notified = append(report.Notified, id)
	}

	return report, errors.Join(failures...)
}

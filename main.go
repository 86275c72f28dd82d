package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

const (
	emailSubject        = "Consolidado de pedidos"
	fileTimestampLayout = "2006-01-02 15-04-05"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	if err := runJob(context.Background(), logger); err != nil {
		logger.Printf("ERROR %v", err)
		os.Exit(1)
	}
}

// runJob wires the external collaborators together and executes one
// consolidation run. It returns nil both on success and when no demand closes
// today; only configuration and connectivity problems surface as errors.
func runJob(ctx context.Context, logger *log.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("unable to get environment variables: %w", err)
	}

	store, err := newMongoStore(ctx, cfg.mongoURI, logger)
	if err != nil {
		return fmt.Errorf("unable to connect to Mongo server: %w", err)
	}
	defer store.Close(context.Background())

	uploader, err := newBlobStore(cfg.azureConnStr, blobContainer, logger)
	if err != nil {
		return fmt.Errorf("unable to connect with Blob Storage: %w", err)
	}

	p := &pipeline{
		demands:     store,
		carts:       store,
		refs:        store,
		uploader:    uploader,
		events:      newRabbitNotifier(rabbitURL(cfg), notifyQueue, logger),
		logger:      logger,
		blobBaseURL: cfg.blobBaseURL,
		notifyTo:    cfg.notifyTo,
		outDir:      ".",
		now:         time.Now,
	}

	report, err := p.run(ctx)
	if err != nil {
		return err
	}
	logger.Printf("run %s finished: demands=%d carts=%d rows=%d dropped=%d artifacts=%d notified=%d skipped=%d",
		report.RunID, report.Demands, report.Carts, report.Rows, report.Dropped,
		len(report.Artifacts), len(report.Notified), len(report.Skipped))
	return nil
}

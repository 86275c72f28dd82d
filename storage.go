package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

type artifactStore interface {
	Upload(ctx context.Context, path string) error
}

// blobStore uploads rendered artifacts into the fixed consolidated-reports
// container. The client is constructed from the connection string up front;
// connectivity problems surface on the first upload.
type blobStore struct {
	client    *azblob.Client
	container string
	logger    *log.Logger
}

func newBlobStore(connStr, container string, logger *log.Logger) (*blobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connStr, nil)
	if err != nil {
		return nil, err
	}
	return &blobStore{client: client, container: container, logger: logger}, nil
}

// Upload sends one rendered file to the container under its file name.
// Failure is fatal for the run; there is no retry.
func (s *blobStore) Upload(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer file.Close()

	name := filepath.Base(path)
	if _, err := s.client.UploadFile(ctx, s.container, name, file, nil); err != nil {
		return fmt.Errorf("unable to upload the file to Blob Storage: %w", err)
	}
	s.logger.Printf("uploaded %s to container %s", name, s.container)
	return nil
}

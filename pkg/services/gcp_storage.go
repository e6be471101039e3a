package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"

	"foodtook_backoffice/pkg/config"
)

var (
	storageClient *storage.Client
	bucketName    string
)

// InitGCPStorage initializes the GCP Storage client
func InitGCPStorage(ctx context.Context) error {
	bucketName = config.AppConfig.GCPBucketName
	if bucketName == "" {
		return fmt.Errorf("GCP_BUCKET_NAME not set")
	}

	client, err := storage.NewClient(ctx, clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	storageClient = client
	return nil
}

// CloseGCPStorage closes the storage client
func CloseGCPStorage() {
	if storageClient != nil {
		storageClient.Close()
	}
}

// GCSBlobStore stores registration documents in the configured bucket
type GCSBlobStore struct{}

// Upload writes r under prefix/<random>-<name> and returns the public URL
func (GCSBlobStore) Upload(ctx context.Context, prefix, name, contentType string, r io.Reader) (string, error) {
	if storageClient == nil {
		return "", fmt.Errorf("GCP storage client not initialized")
	}

	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate object name: %w", err)
	}
	objectName := path.Join(prefix, hex.EncodeToString(randomBytes)+"-"+path.Base(name))

	writer := storageClient.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("GCS upload failed: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("GCS upload finalization failed: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}

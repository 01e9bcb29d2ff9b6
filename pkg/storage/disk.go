// Package storage is the object store behind image uploads.
//
// Two drivers are available:
//   - "local" — local filesystem served under STORAGE_URL (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	storage.Connect(ctx)
//	err := storage.Default().Put(ctx, "ecommerce/products/lipsticks/product-1700000000000.png", f, "image/png")
//	url := storage.Default().URL("ecommerce/products/lipsticks/product-1700000000000.png")
package storage

import (
	"context"
	"io"
)

// Disk is the driver interface. Paths are slash separated keys.
type Disk interface {
	// Put writes r to path, replacing any existing object.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

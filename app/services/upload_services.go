package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/metrics"
	"github.com/sheshine/backoffice/pkg/storage"
)

// UploadKind selects the form field, folder and message of an upload.
type UploadKind struct {
	Name    string // object key prefix: product, category, variant
	Field   string // multipart field name
	Folder  string // products | categories
	Message string
}

var (
	ProductImage  = UploadKind{Name: "product", Field: "productImage", Folder: "products", Message: "Product image uploaded successfully"}
	CategoryImage = UploadKind{Name: "category", Field: "categoryImage", Folder: "categories", Message: "Category image uploaded successfully"}
	VariantImage  = UploadKind{Name: "variant", Field: "variantImage", Folder: "products", Message: "Variant image uploaded successfully"}
)

const defaultSlug = "uncategorized"

type UploadResult struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"public_id"`
}

type UploadService struct {
	disk     storage.Disk
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(disk storage.Disk, maxBytes int64) *UploadService {
	return &UploadService{disk: disk, maxBytes: maxBytes, now: time.Now}
}

// MaxBytes is the largest accepted image.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

var (
	spaces   = regexp.MustCompile(`\s+`)
	unsafeCh = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slug lowercases name, turns whitespace into "-" and drops anything
// outside [a-z0-9-]. An empty result becomes "uncategorized".
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = spaces.ReplaceAllString(s, "-")
	s = unsafeCh.ReplaceAllString(s, "")
	if s == "" {
		return defaultSlug
	}
	return s
}

// Upload checks that r holds an image no larger than the limit and stores
// it under ecommerce/<folder>/<slug>/<kind>-<unix ms><ext>.
func (s *UploadService) Upload(ctx context.Context, kind UploadKind, categoryName string, r io.Reader) (UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return UploadResult{}, s.fail(kind, errs.Internal(err))
	}
	if len(data) == 0 {
		return UploadResult{}, s.fail(kind, errs.Validation("Please upload a file.", nil))
	}
	if int64(len(data)) > s.maxBytes {
		return UploadResult{}, s.fail(kind, errs.Validation(
			fmt.Sprintf("File too large: the limit is %d MB", s.maxBytes>>20), nil))
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return UploadResult{}, s.fail(kind, errs.Validation("Only image files are allowed", nil))
	}

	publicID := fmt.Sprintf("ecommerce/%s/%s/%s-%d", kind.Folder, Slug(categoryName), kind.Name, s.now().UnixMilli())
	key := publicID + mt.Extension()

	if err := s.disk.Put(ctx, key, bytes.NewReader(data), mt.String()); err != nil {
		return UploadResult{}, s.fail(kind, errs.Internal(fmt.Errorf("upload: store %s: %w", key, err)))
	}

	metrics.Uploads.WithLabelValues(kind.Name, "success").Inc()
	logger.WithCtx(ctx).Info("upload: stored image", "key", key, "mime", mt.String(), "bytes", len(data))
	return UploadResult{Message: kind.Message, ImageURL: s.disk.URL(key), PublicID: publicID}, nil
}

func (s *UploadService) fail(kind UploadKind, err *errs.Error) error {
	result := "rejected"
	if err.Kind == errs.KindInternal {
		result = "error"
	}
	metrics.Uploads.WithLabelValues(kind.Name, result).Inc()
	return err
}

// Package media handles image storage for listings and blog posts.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/EmirArslaan/MusicMarketProject/internal/config"
	"github.com/EmirArslaan/MusicMarketProject/internal/observability"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Upload limits enforced before anything touches the object store.
const (
	MaxFileSize      = 5 * 1024 * 1024
	MaxListingImages = 8
)

// Uploaded identifies a stored object and its public URL.
type Uploaded struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// Store is the interface for image storage backends.
type Store interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (*Uploaded, error)
	Remove(ctx context.Context, publicID string) error
}

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AllowedContentType reports whether the given MIME type may be uploaded.
func AllowedContentType(contentType string) bool {
	_, ok := allowedContentTypes[contentType]
	return ok
}

// objectAPI is the subset of *minio.Client the store needs. Narrowed for tests.
type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioStore stores images in a MinIO (or any S3-compatible) bucket.
type MinioStore struct {
	client  objectAPI
	bucket  string
	baseURL string
}

// NewMinioStore creates a store from the application configuration.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	baseURL := cfg.MediaBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.MediaUseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MediaEndpoint, cfg.MediaBucket)
	}

	return &MinioStore{
		client:  client,
		bucket:  cfg.MediaBucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// NewMinioStoreWithClient creates a store around an existing client. Intended for tests.
func NewMinioStoreWithClient(client objectAPI, bucket, baseURL string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload stores the object under a generated key and returns its ID and URL.
func (s *MinioStore) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (*Uploaded, error) {
	if size > MaxFileSize {
		return nil, fmt.Errorf("file %s exceeds the %d byte limit", filename, MaxFileSize)
	}

	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
	if e := strings.ToLower(path.Ext(filename)); e == ".jpeg" {
		ext = ".jpg"
	} else if e != "" {
		ext = e
	}

	publicID := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, publicID, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	observability.RecordMediaOp("upload", err)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	return &Uploaded{
		PublicID: publicID,
		URL:      fmt.Sprintf("%s/%s", s.baseURL, publicID),
	}, nil
}

// Remove deletes the object with the given public ID.
func (s *MinioStore) Remove(ctx context.Context, publicID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	observability.RecordMediaOp("remove", err)
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", publicID, err)
	}
	return nil
}

package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

// PhotoBucket stores photo files as objects in a single GCS bucket.
type PhotoBucket interface {
	Upload(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Close() error
}

type photoBucket struct {
	log           *logger.Logger
	client        *storage.Client
	cfg           PhotoStorageConfig
	publicBaseURL string
}

func NewPhotoBucket(ctx context.Context, log *logger.Logger, cfg PhotoStorageConfig) (PhotoBucket, error) {
	if !cfg.IsBucketMode() {
		return nil, &StorageConfigError{Code: StorageConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
	if err := ValidatePhotoStorageConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate photo storage config: %w", err)
	}
	client, err := newStorageClientForMode(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	base, source := resolvePublicBaseURL(cfg)
	serviceLog := log.With("service", "PhotoBucket")
	serviceLog.Info(
		"Photo bucket initialized",
		"mode", cfg.Mode,
		"bucket", cfg.BucketName,
		"emulator_host", cfg.EmulatorHost,
		"public_base_source", source,
	)
	return &photoBucket{log: serviceLog, client: client, cfg: cfg, publicBaseURL: base}, nil
}

func newStorageClientForMode(ctx context.Context, cfg PhotoStorageConfig) (*storage.Client, error) {
	switch cfg.Mode {
	case PhotoStorageModeGCS:
		opts := ClientOptionsFromEnv()
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
		return storage.NewClient(ctx, opts...)
	case PhotoStorageModeGCSEmulator:
		// The storage client only honors the emulator through this variable.
		_ = os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	default:
		return nil, &StorageConfigError{Code: StorageConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
}

func resolvePublicBaseURL(cfg PhotoStorageConfig) (baseURL string, source string) {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL, "photo_public_base_url"
	}
	if cfg.IsEmulatorMode() {
		return cfg.EmulatorHost, "storage_emulator_host"
	}
	return "", "gcs_default"
}

func (b *photoBucket) Upload(ctx context.Context, key string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	// Stored names are unique per upload; refuse to replace an existing object.
	obj := b.client.Bucket(b.cfg.BucketName).Object(key).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	if ct := ContentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (b *photoBucket) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	err := b.client.Bucket(b.cfg.BucketName).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, b.cfg.BucketName, err)
	}
	return nil
}

func (b *photoBucket) PublicURL(key string) string {
	return objectPublicURL(b.cfg, b.publicBaseURL, key)
}

func (b *photoBucket) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}

func objectPublicURL(cfg PhotoStorageConfig, base, key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if cfg.IsEmulatorMode() && base != "" {
		return fmt.Sprintf(
			"%s/storage/v1/b/%s/o/%s?alt=media",
			base,
			url.PathEscape(cfg.BucketName),
			url.PathEscape(key),
		)
	}
	if base != "" {
		return fmt.Sprintf("%s/%s/%s", base, cfg.BucketName, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", cfg.BucketName, key)
}

func ContentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	default:
		return ""
	}
}

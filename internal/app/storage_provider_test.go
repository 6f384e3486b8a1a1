package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yungbote/photoshare-backend/internal/platform/gcp"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

func TestClassifyStorageProviderBootstrapErrorConfigCodes(t *testing.T) {
	cases := []struct {
		src  gcp.StorageConfigErrorCode
		want StorageProviderBootstrapErrorCode
	}{
		{gcp.StorageConfigErrorInvalidMode, StorageProviderBootstrapErrorInvalidMode},
		{gcp.StorageConfigErrorMissingDir, StorageProviderBootstrapErrorMissingDir},
		{gcp.StorageConfigErrorMissingBucket, StorageProviderBootstrapErrorMissingBucket},
		{gcp.StorageConfigErrorMissingEmulatorHost, StorageProviderBootstrapErrorMissingEmulatorHost},
		{gcp.StorageConfigErrorInvalidURL, StorageProviderBootstrapErrorInvalidURL},
	}
	for _, tc := range cases {
		storageCfg := gcp.PhotoStorageConfig{Mode: gcp.PhotoStorageModeGCSEmulator}
		srcErr := &gcp.StorageConfigError{Code: tc.src, Mode: string(storageCfg.Mode)}

		err := classifyStorageProviderBootstrapError(storageCfg, srcErr)

		var got *StorageProviderBootstrapError
		if !errors.As(err, &got) {
			t.Fatalf("expected StorageProviderBootstrapError, got=%T", err)
		}
		if got.Code != tc.want {
			t.Fatalf("code for %q: want=%q got=%q", tc.src, tc.want, got.Code)
		}
	}
}

func TestClassifyStorageProviderBootstrapErrorConnectFailed(t *testing.T) {
	storageCfg := gcp.PhotoStorageConfig{Mode: gcp.PhotoStorageModeGCS, BucketName: "photos"}
	srcErr := errors.New("dial tcp: connection refused")

	err := classifyStorageProviderBootstrapError(storageCfg, srcErr)

	if got := storageProviderBootstrapErrorCode(err); got != StorageProviderBootstrapErrorConnectFailed {
		t.Fatalf("code: want=%q got=%q", StorageProviderBootstrapErrorConnectFailed, got)
	}
	if !errors.Is(err, srcErr) {
		t.Fatalf("cause must stay reachable")
	}
}

func TestResolvePhotoStorageInvalidMode(t *testing.T) {
	log := testLogger(t)

	_, err := resolvePhotoStorage(context.Background(), log, Config{
		PhotoStorage: gcp.PhotoStorageConfig{Mode: "floppy"},
	})
	if err == nil {
		t.Fatalf("resolvePhotoStorage: expected error, got nil")
	}
	if got := storageProviderBootstrapErrorCode(err); got != StorageProviderBootstrapErrorInvalidMode {
		t.Fatalf("code: want=%q got=%q", StorageProviderBootstrapErrorInvalidMode, got)
	}
}

func TestResolvePhotoStorageLocalMode(t *testing.T) {
	log := testLogger(t)
	dir := t.TempDir()

	p, err := resolvePhotoStorage(context.Background(), log, Config{
		PhotoStorage: gcp.PhotoStorageConfig{Mode: " LOCAL ", Dir: dir},
	})
	if err != nil {
		t.Fatalf("resolvePhotoStorage: %v", err)
	}
	if p.LocalDir != dir {
		t.Fatalf("local dir: want=%q got=%q", dir, p.LocalDir)
	}
	if p.Storage == nil {
		t.Fatalf("storage must be set")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestResolvePhotoStorageGCSMode(t *testing.T) {
	log := testLogger(t)

	orig := newPhotoBucket
	t.Cleanup(func() { newPhotoBucket = orig })

	var captured gcp.PhotoStorageConfig
	expected := &testPhotoBucket{}
	newPhotoBucket = func(_ context.Context, _ *logger.Logger, cfg gcp.PhotoStorageConfig) (gcp.PhotoBucket, error) {
		captured = cfg
		return expected, nil
	}

	p, err := resolvePhotoStorage(context.Background(), log, Config{
		PhotoStorage: gcp.PhotoStorageConfig{Mode: gcp.PhotoStorageModeGCS, BucketName: "photos"},
	})
	if err != nil {
		t.Fatalf("resolvePhotoStorage: %v", err)
	}
	if captured.Mode != gcp.PhotoStorageModeGCS || captured.BucketName != "photos" {
		t.Fatalf("captured config: %+v", captured)
	}
	if p.LocalDir != "" {
		t.Fatalf("bucket mode must not serve a local dir: %q", p.LocalDir)
	}
	if got := p.Storage.URL("U1a.jpg"); got != "https://cdn.test/U1a.jpg" {
		t.Fatalf("url: got=%q", got)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !expected.closed {
		t.Fatalf("bucket not closed")
	}
}

func TestResolvePhotoStorageEmulatorModeRequiresHost(t *testing.T) {
	log := testLogger(t)

	orig := newPhotoBucket
	t.Cleanup(func() { newPhotoBucket = orig })
	newPhotoBucket = func(context.Context, *logger.Logger, gcp.PhotoStorageConfig) (gcp.PhotoBucket, error) {
		t.Fatalf("bucket constructor must not run for an invalid config")
		return nil, nil
	}

	_, err := resolvePhotoStorage(context.Background(), log, Config{
		PhotoStorage: gcp.PhotoStorageConfig{Mode: gcp.PhotoStorageModeGCSEmulator, BucketName: "photos"},
	})
	if got := storageProviderBootstrapErrorCode(err); got != StorageProviderBootstrapErrorMissingEmulatorHost {
		t.Fatalf("code: want=%q got=%q", StorageProviderBootstrapErrorMissingEmulatorHost, got)
	}
}

func TestResolvePhotoStorageConnectFailure(t *testing.T) {
	log := testLogger(t)

	orig := newPhotoBucket
	t.Cleanup(func() { newPhotoBucket = orig })
	newPhotoBucket = func(context.Context, *logger.Logger, gcp.PhotoStorageConfig) (gcp.PhotoBucket, error) {
		return nil, errors.New("no credentials")
	}

	_, err := resolvePhotoStorage(context.Background(), log, Config{
		PhotoStorage: gcp.PhotoStorageConfig{Mode: gcp.PhotoStorageModeGCS, BucketName: "photos"},
	})
	if got := storageProviderBootstrapErrorCode(err); got != StorageProviderBootstrapErrorConnectFailed {
		t.Fatalf("code: want=%q got=%q", StorageProviderBootstrapErrorConnectFailed, got)
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type testPhotoBucket struct {
	closed bool
}

func (b *testPhotoBucket) Upload(_ context.Context, _ string, r io.Reader) error {
	_, err := io.Copy(io.Discard, r)
	return err
}

func (b *testPhotoBucket) Delete(context.Context, string) error { return nil }

func (b *testPhotoBucket) PublicURL(key string) string {
	return "https://cdn.test/" + strings.TrimPrefix(key, "/")
}

func (b *testPhotoBucket) Close() error {
	b.closed = true
	return nil
}

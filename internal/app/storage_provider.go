package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/photoshare-backend/internal/platform/gcp"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
	"github.com/yungbote/photoshare-backend/internal/services"
)

var (
	newPhotoBucket       = gcp.NewPhotoBucket
	newLocalPhotoStorage = services.NewLocalPhotoStorage
)

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode         StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorMissingDir          StorageProviderBootstrapErrorCode = "missing_dir"
	StorageProviderBootstrapErrorMissingBucket       StorageProviderBootstrapErrorCode = "missing_bucket"
	StorageProviderBootstrapErrorMissingEmulatorHost StorageProviderBootstrapErrorCode = "missing_emulator_host"
	StorageProviderBootstrapErrorInvalidURL          StorageProviderBootstrapErrorCode = "invalid_url"
	StorageProviderBootstrapErrorConnectFailed       StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "photo storage bootstrap failed"
	}
	return fmt.Sprintf(
		"photo storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// photoStorageProvider is the resolved storage plus whatever must be closed at shutdown.
type photoStorageProvider struct {
	Storage  services.PhotoStorage
	LocalDir string
	bucket   gcp.PhotoBucket
}

func (p photoStorageProvider) Close() error {
	if p.bucket == nil {
		return nil
	}
	return p.bucket.Close()
}

func resolvePhotoStorage(ctx context.Context, log *logger.Logger, cfg Config) (photoStorageProvider, error) {
	storageCfg, err := gcp.NormalizePhotoStorageConfig(cfg.PhotoStorage)
	if err != nil {
		classified := classifyStorageProviderBootstrapError(storageCfg, err)
		log.Error(
			"Photo storage provider selection failed",
			"mode", storageCfg.Mode,
			"emulator_host", storageCfg.EmulatorHost,
			"error_code", storageProviderBootstrapErrorCode(classified),
			"error", classified,
		)
		return photoStorageProvider{}, classified
	}

	log.Info(
		"Selecting photo storage provider",
		"mode", storageCfg.Mode,
		"dir", storageCfg.Dir,
		"bucket", storageCfg.BucketName,
		"emulator_host", storageCfg.EmulatorHost,
	)

	if !storageCfg.IsBucketMode() {
		local, err := newLocalPhotoStorage(log, storageCfg.Dir)
		if err != nil {
			classified := classifyStorageProviderBootstrapError(storageCfg, err)
			log.Error("Photo storage provider bootstrap failed", "mode", storageCfg.Mode, "error", classified)
			return photoStorageProvider{}, classified
		}
		return photoStorageProvider{Storage: local, LocalDir: storageCfg.Dir}, nil
	}

	bucket, err := newPhotoBucket(ctx, log, storageCfg)
	if err != nil {
		classified := classifyStorageProviderBootstrapError(storageCfg, err)
		log.Error(
			"Photo storage provider bootstrap failed",
			"mode", storageCfg.Mode,
			"emulator_host", storageCfg.EmulatorHost,
			"error_code", storageProviderBootstrapErrorCode(classified),
			"error", classified,
		)
		return photoStorageProvider{}, classified
	}
	return photoStorageProvider{Storage: services.NewBucketPhotoStorage(bucket), bucket: bucket}, nil
}

var storageConfigErrorCodes = map[gcp.StorageConfigErrorCode]StorageProviderBootstrapErrorCode{
	gcp.StorageConfigErrorInvalidMode:         StorageProviderBootstrapErrorInvalidMode,
	gcp.StorageConfigErrorMissingDir:          StorageProviderBootstrapErrorMissingDir,
	gcp.StorageConfigErrorMissingBucket:       StorageProviderBootstrapErrorMissingBucket,
	gcp.StorageConfigErrorMissingEmulatorHost: StorageProviderBootstrapErrorMissingEmulatorHost,
	gcp.StorageConfigErrorInvalidURL:          StorageProviderBootstrapErrorInvalidURL,
}

func classifyStorageProviderBootstrapError(storageCfg gcp.PhotoStorageConfig, err error) error {
	code := StorageProviderBootstrapErrorConnectFailed
	var cfgErr *gcp.StorageConfigError
	if errors.As(err, &cfgErr) {
		if mapped, ok := storageConfigErrorCodes[cfgErr.Code]; ok {
			code = mapped
		}
	}
	return &StorageProviderBootstrapError{
		Code:         code,
		Mode:         string(storageCfg.Mode),
		EmulatorHost: storageCfg.EmulatorHost,
		Cause:        err,
	}
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) {
		if bootstrapErr.Code != "" {
			return bootstrapErr.Code
		}
	}
	return StorageProviderBootstrapErrorConnectFailed
}

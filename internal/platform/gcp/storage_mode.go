package gcp

import (
	"fmt"
	"net/url"
	"strings"
)

type PhotoStorageMode string

const (
	PhotoStorageModeLocal       PhotoStorageMode = "local"
	PhotoStorageModeGCS         PhotoStorageMode = "gcs"
	PhotoStorageModeGCSEmulator PhotoStorageMode = "gcs_emulator"
)

// PhotoStorageConfig selects where uploaded photo files live.
type PhotoStorageConfig struct {
	Mode          PhotoStorageMode
	Dir           string
	BucketName    string
	EmulatorHost  string
	PublicBaseURL string
}

func IsSupportedPhotoStorageMode(mode PhotoStorageMode) bool {
	switch mode {
	case PhotoStorageModeLocal, PhotoStorageModeGCS, PhotoStorageModeGCSEmulator:
		return true
	default:
		return false
	}
}

func (cfg PhotoStorageConfig) IsBucketMode() bool {
	return cfg.Mode == PhotoStorageModeGCS || cfg.Mode == PhotoStorageModeGCSEmulator
}

func (cfg PhotoStorageConfig) IsEmulatorMode() bool {
	return cfg.Mode == PhotoStorageModeGCSEmulator
}

type StorageConfigErrorCode string

const (
	StorageConfigErrorInvalidMode         StorageConfigErrorCode = "invalid_mode"
	StorageConfigErrorMissingDir          StorageConfigErrorCode = "missing_dir"
	StorageConfigErrorMissingBucket       StorageConfigErrorCode = "missing_bucket"
	StorageConfigErrorMissingEmulatorHost StorageConfigErrorCode = "missing_emulator_host"
	StorageConfigErrorInvalidURL          StorageConfigErrorCode = "invalid_url"
)

type StorageConfigError struct {
	Code  StorageConfigErrorCode
	Mode  string
	Value string
	Cause error
}

func (e *StorageConfigError) Error() string {
	if e == nil {
		return "invalid photo storage config"
	}
	switch e.Code {
	case StorageConfigErrorInvalidMode:
		return fmt.Sprintf(
			"invalid PHOTO_STORAGE_MODE=%q (allowed: %q, %q, %q)",
			e.Mode,
			PhotoStorageModeLocal,
			PhotoStorageModeGCS,
			PhotoStorageModeGCSEmulator,
		)
	case StorageConfigErrorMissingDir:
		return fmt.Sprintf("PHOTO_STORAGE_MODE=%q requires PHOTO_DIR", e.Mode)
	case StorageConfigErrorMissingBucket:
		return fmt.Sprintf("PHOTO_STORAGE_MODE=%q requires PHOTO_GCS_BUCKET_NAME", e.Mode)
	case StorageConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("PHOTO_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST", e.Mode)
	case StorageConfigErrorInvalidURL:
		return fmt.Sprintf("invalid URL %q; expected absolute URL like http://fake-gcs:4443", e.Value)
	default:
		return "invalid photo storage config"
	}
}

func (e *StorageConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NormalizePhotoStorageConfig lower-cases the mode, defaulting to local, and validates it.
func NormalizePhotoStorageConfig(cfg PhotoStorageConfig) (PhotoStorageConfig, error) {
	cfg.Mode = PhotoStorageMode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))
	if cfg.Mode == "" {
		cfg.Mode = PhotoStorageModeLocal
	}
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	cfg.BucketName = strings.TrimSpace(cfg.BucketName)
	cfg.EmulatorHost = strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if err := ValidatePhotoStorageConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func ValidatePhotoStorageConfig(cfg PhotoStorageConfig) error {
	if !IsSupportedPhotoStorageMode(cfg.Mode) {
		return &StorageConfigError{Code: StorageConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
	if cfg.Mode == PhotoStorageModeLocal {
		if cfg.Dir == "" {
			return &StorageConfigError{Code: StorageConfigErrorMissingDir, Mode: string(cfg.Mode)}
		}
		return nil
	}
	if cfg.BucketName == "" {
		return &StorageConfigError{Code: StorageConfigErrorMissingBucket, Mode: string(cfg.Mode)}
	}
	if cfg.PublicBaseURL != "" {
		if err := validateAbsoluteURL(cfg.PublicBaseURL); err != nil {
			return &StorageConfigError{Code: StorageConfigErrorInvalidURL, Mode: string(cfg.Mode), Value: cfg.PublicBaseURL, Cause: err}
		}
	}
	if !cfg.IsEmulatorMode() {
		return nil
	}
	if cfg.EmulatorHost == "" {
		return &StorageConfigError{Code: StorageConfigErrorMissingEmulatorHost, Mode: string(cfg.Mode)}
	}
	if err := validateAbsoluteURL(cfg.EmulatorHost); err != nil {
		return &StorageConfigError{Code: StorageConfigErrorInvalidURL, Mode: string(cfg.Mode), Value: cfg.EmulatorHost, Cause: err}
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(u.Scheme) == "" || strings.TrimSpace(u.Host) == "" {
		return fmt.Errorf("missing scheme or host")
	}
	return nil
}

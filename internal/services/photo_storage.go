package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/photoshare-backend/internal/platform/gcp"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

// PhotoStorage persists uploaded photo bytes and returns the file name that
// photo records refer to.
type PhotoStorage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Delete removes a stored file; a missing file is not an error.
	Delete(ctx context.Context, fileName string) error
	URL(fileName string) string
}

// StoredFileName prefixes the client's base name with an upload timestamp and
// a per-upload id, so equal client names in the same millisecond never collide.
func StoredFileName(now time.Time, id uuid.UUID, originalName string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(originalName), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "photo"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return "U" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + id.String() + "-" + base
}

type localPhotoStorage struct {
	log   *logger.Logger
	dir   string
	now   func() time.Time
	newID func() uuid.UUID
}

func NewLocalPhotoStorage(log *logger.Logger, dir string) (PhotoStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir %q: %w", dir, err)
	}
	return &localPhotoStorage{log: log.With("service", "LocalPhotoStorage"), dir: dir, now: time.Now, newID: uuid.New}, nil
}

func (s *localPhotoStorage) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	name := StoredFileName(s.now(), s.newID(), originalName)
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write photo file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close photo file: %w", err)
	}
	s.log.Debug("Stored photo file", "file_name", name)
	return name, nil
}

func (s *localPhotoStorage) Delete(_ context.Context, fileName string) error {
	if fileName == "" || filepath.Base(fileName) != fileName {
		return fmt.Errorf("delete photo file: invalid name %q", fileName)
	}
	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete photo file: %w", err)
	}
	return nil
}

func (s *localPhotoStorage) URL(fileName string) string {
	return "/images/" + fileName
}

type bucketPhotoStorage struct {
	bucket gcp.PhotoBucket
	now    func() time.Time
	newID  func() uuid.UUID
}

func NewBucketPhotoStorage(bucket gcp.PhotoBucket) PhotoStorage {
	return &bucketPhotoStorage{bucket: bucket, now: time.Now, newID: uuid.New}
}

func (s *bucketPhotoStorage) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := StoredFileName(s.now(), s.newID(), originalName)
	if err := s.bucket.Upload(ctx, name, r); err != nil {
		return "", err
	}
	return name, nil
}

func (s *bucketPhotoStorage) Delete(ctx context.Context, fileName string) error {
	return s.bucket.Delete(ctx, fileName)
}

func (s *bucketPhotoStorage) URL(fileName string) string {
	return s.bucket.PublicURL(fileName)
}

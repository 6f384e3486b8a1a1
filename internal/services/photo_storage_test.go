package services

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/photoshare-backend/internal/data/repos/testutil"
)

func TestStoredFileName(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	id := uuid.MustParse("6f1c2b1e-8a3d-4c56-9d1e-2b7a3c4d5e6f")
	prefix := "U1700000000123-" + id.String() + "-"
	cases := map[string]string{
		"cat.jpg":          prefix + "cat.jpg",
		"../../etc/passwd": prefix + "passwd",
		`C:\pics\dog.png`:  prefix + "dog.png",
		"my photo!.jpg":    prefix + "my_photo_.jpg",
		"":                 prefix + "photo",
	}
	for in, want := range cases {
		if got := StoredFileName(at, id, in); got != want {
			t.Fatalf("StoredFileName(%q): want=%q got=%q", in, want, got)
		}
	}
}

func newLocalStorageAt(t *testing.T, at time.Time) (*localPhotoStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewLocalPhotoStorage(testutil.Logger(t), dir)
	if err != nil {
		t.Fatalf("NewLocalPhotoStorage: %v", err)
	}
	local := store.(*localPhotoStorage)
	local.now = func() time.Time { return at }
	return local, dir
}

func TestLocalPhotoStorageSave(t *testing.T) {
	store, dir := newLocalStorageAt(t, time.Now())
	name, err := store.Save(context.Background(), "cat.jpg", strings.NewReader("meow"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(raw) != "meow" {
		t.Fatalf("content: got=%q", raw)
	}
	if got := store.URL(name); got != "/images/"+name {
		t.Fatalf("URL: got=%q", got)
	}
}

func TestLocalPhotoStorageSameNameSameInstant(t *testing.T) {
	store, dir := newLocalStorageAt(t, time.UnixMilli(1792054453400))
	ctx := context.Background()

	first, err := store.Save(ctx, "../../etc/image.jpg", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := store.Save(ctx, "../../etc/image.jpg", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if first == second {
		t.Fatalf("uploads with the same name in the same millisecond share %q", first)
	}
	for name, want := range map[string]string{first: "first", second: "second"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || string(raw) != want {
			t.Fatalf("%s: got=%q err=%v want=%q", name, raw, err, want)
		}
	}
}

func TestLocalPhotoStorageDelete(t *testing.T) {
	store, dir := newLocalStorageAt(t, time.Now())
	ctx := context.Background()

	name, err := store.Save(ctx, "cat.jpg", strings.NewReader("meow"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	if err := store.Delete(ctx, name); err != nil {
		t.Fatalf("deleting a missing file must succeed: %v", err)
	}
	if err := store.Delete(ctx, "../outside.jpg"); err == nil {
		t.Fatalf("names with path segments must be rejected")
	}
}

func TestBucketPhotoStorageSameNameSameInstant(t *testing.T) {
	bucket := newMemoryBucket()
	store := NewBucketPhotoStorage(bucket).(*bucketPhotoStorage)
	at := time.UnixMilli(1792054453400)
	store.now = func() time.Time { return at }
	ctx := context.Background()

	first, err := store.Save(ctx, "image.jpg", strings.NewReader("owner-a"))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := store.Save(ctx, "image.jpg", strings.NewReader("owner-b"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if first == second {
		t.Fatalf("second upload reused key %q", first)
	}
	if got := bucket.objects[first]; got != "owner-a" {
		t.Fatalf("first object overwritten: %q", got)
	}
	if got := bucket.objects[second]; got != "owner-b" {
		t.Fatalf("second object: %q", got)
	}

	if err := store.Delete(ctx, first); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := bucket.objects[first]; ok {
		t.Fatalf("object not deleted")
	}
}

type memoryBucket struct {
	mu      sync.Mutex
	objects map[string]string
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{objects: map[string]string{}}
}

func (b *memoryBucket) Upload(_ context.Context, key string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = buf.String()
	return nil
}

func (b *memoryBucket) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memoryBucket) PublicURL(key string) string { return "https://cdn.test/" + key }

func (b *memoryBucket) Close() error { return nil }

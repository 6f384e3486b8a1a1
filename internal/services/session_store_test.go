package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/photoshare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/photoshare-backend/internal/domain"
)

func TestMemorySessionStoreConcurrentUse(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	const n = 50
	ids := make([]uuid.UUID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		ids[i] = uuid.New()
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_ = store.Put(ctx, &types.Session{ID: id, UserID: uuid.New(), CreatedAt: time.Now()})
			if s, _ := store.Get(ctx, id); s == nil {
				t.Errorf("session %s not readable after put", id)
			}
		}(ids[i])
	}
	wg.Wait()

	for _, id := range ids {
		removed, err := store.Delete(ctx, id)
		if err != nil || !removed {
			t.Fatalf("Delete(%s): removed=%v err=%v", id, removed, err)
		}
	}
	if removed, _ := store.Delete(ctx, ids[0]); removed {
		t.Fatalf("double delete reported removal")
	}
}

func TestMemorySessionStoreHonorsExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	past := time.Now().Add(-time.Minute)
	s := &types.Session{ID: uuid.New(), UserID: uuid.New(), CreatedAt: past.Add(-time.Hour), ExpiresAt: &past}
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got, err := store.Get(ctx, s.ID); err != nil || got != nil {
		t.Fatalf("expired session returned: %+v err=%v", got, err)
	}
}

func TestRedisSessionStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	ctx := context.Background()
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisSessionStore(testutil.Logger(t), rdb, "photoshare-test:"+uuid.NewString(), time.Minute)
	s := &types.Session{ID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now().UTC()}
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, s.ID)
	if err != nil || got == nil || got.UserID != s.UserID {
		t.Fatalf("Get: got=%+v err=%v", got, err)
	}
	removed, err := store.Delete(ctx, s.ID)
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	if got, _ := store.Get(ctx, s.ID); got != nil {
		t.Fatalf("session survived delete")
	}
}

package app

import (
	"strings"
	"testing"

	"github.com/yungbote/photoshare-backend/internal/data/repos/testutil"
)

func TestWireServicesRejectsUnknownSessionStore(t *testing.T) {
	log := testLogger(t)
	r := NewRepos(testutil.DB(t), log)

	_, err := wireServices(log, Config{SessionStore: "memcached"}, r, Clients{}, nil)
	if err == nil || !strings.Contains(err.Error(), "memcached") {
		t.Fatalf("expected unsupported store error, got %v", err)
	}
}

func TestWireServicesRedisStoreNeedsClient(t *testing.T) {
	log := testLogger(t)
	r := NewRepos(testutil.DB(t), log)

	_, err := wireServices(log, Config{SessionStore: SessionStoreRedis}, r, Clients{}, nil)
	if err == nil || !strings.Contains(err.Error(), "REDIS_ADDR") {
		t.Fatalf("expected missing redis error, got %v", err)
	}
}

func TestWireServicesRejectsUnknownCredentialMode(t *testing.T) {
	log := testLogger(t)
	r := NewRepos(testutil.DB(t), log)

	_, err := wireServices(log, Config{CredentialMode: "rot13"}, r, Clients{}, nil)
	if err == nil {
		t.Fatalf("expected credential mode error")
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB(testLogger(t), Config{DBDriver: "mongo"}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestOpenDBSQLite(t *testing.T) {
	db, err := OpenDB(testLogger(t), Config{DBDriver: DBDriverSQLite, SQLitePath: t.TempDir() + "/app.db"})
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
}

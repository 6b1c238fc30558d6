package db

import (
	"context"
	"testing"

	"github.com/windoze95/vanadisheart-api/internal/config"
	"github.com/windoze95/vanadisheart-api/internal/repository"
)

func TestNewStore_Memory(t *testing.T) {
	cfg := &config.Config{EnvVars: config.EnvVars{StoreBackend: config.StoreMemory}}

	store, closeFn, err := NewStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer closeFn()

	if _, ok := store.(*repository.MemoryStore); !ok {
		t.Errorf("NewStore() = %T, want *repository.MemoryStore", store)
	}
}

func TestNewStore_UnknownBackend(t *testing.T) {
	cfg := &config.Config{EnvVars: config.EnvVars{StoreBackend: "etcd"}}

	if _, _, err := NewStore(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNewRedisClient_BadURL(t *testing.T) {
	cfg := &config.Config{EnvVars: config.EnvVars{RedisURL: "not a url"}}

	if _, err := NewRedisClient(cfg); err == nil {
		t.Fatal("expected error for malformed Redis URL")
	}
}

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// exerciseStore runs the behavior every Store backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "expected NotFoundError, got %v", err)

	require.NoError(t, s.Set(ctx, "k1", []byte("first")))
	v, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "first", string(v))

	require.NoError(t, s.Set(ctx, "k1", []byte("second")))
	v, err = s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "second", string(v))

	require.NoError(t, s.Delete(ctx, "k1"))
	_, err = s.Get(ctx, "k1")
	assert.True(t, IsNotFound(err))

	assert.NoError(t, s.Delete(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[0] = 'y'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, 1, s.Len())
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestGormStore(t *testing.T) {
	exerciseStore(t, NewGormStore(setupTestDB(t)))
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	prefix := "vanadisheart-test:" + time.Now().Format("150405.000000") + ":"
	exerciseStore(t, NewRedisStore(client, prefix, time.Minute))
}

func TestIsNotFound_Wrapped(t *testing.T) {
	err := NewNotFoundError("list %q not found", "abc")
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(wrap(err)))
	assert.False(t, IsNotFound(assert.AnError))
	assert.Equal(t, `list "abc" not found`, err.Error())
}

type wrapped struct{ err error }

func (w wrapped) Error() string { return "outer: " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }

func wrap(err error) error { return wrapped{err: err} }

package cart

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "cart_r1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "cart_r1", []byte(`{"items":[]}`)))
	v, found, err := s.Get(ctx, "cart_r1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"items":[]}`, string(v))

	require.NoError(t, s.Set(ctx, "cart_r1", []byte(`{"items":null}`)))
	v, _, err = s.Get(ctx, "cart_r1")
	require.NoError(t, err)
	assert.Equal(t, `{"items":null}`, string(v), "set overwrites the whole value")

	require.NoError(t, s.Clear(ctx, "cart_r1"))
	_, found, err = s.Get(ctx, "cart_r1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Clear(ctx, "never_written"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	a := m.For("device-a")
	b := m.For("device-b")
	exerciseStore(t, a)

	require.NoError(t, a.Set(ctx, SessionKey, []byte("session_a")))
	_, found, err := b.Get(ctx, SessionKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'z'

	v, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
}

func openTestSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cart.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrateSQLite(db))
	return db
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, NewSQLiteStore(openTestSQLite(t), "device-a"))
}

func TestSQLiteStore_EngineRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)

	e := newTestEngine(t, NewSQLiteStore(db, "device-a"), orderingConfig(2.5))
	require.NoError(t, e.AddToCart(ctx, dish("m1", 10), 2, nil, ""))

	again := newTestEngine(t, NewSQLiteStore(db, "device-a"), orderingConfig(2.5))
	assert.Equal(t, 22.5, again.Cart().Total)
	assert.Equal(t, e.SessionID(), again.SessionID())

	other := newTestEngine(t, NewSQLiteStore(db, "device-b"), orderingConfig(2.5))
	assert.Empty(t, other.Cart().Items)
	assert.NotEqual(t, e.SessionID(), other.SessionID())
}

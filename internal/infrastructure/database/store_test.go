package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestNewStore_SQLiteFileSurvivesReopen(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite3", DSN: filepath.Join(t.TempDir(), "mm.db")}}
	ctx := context.Background()

	store, cleanup, err := NewStore(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "currentUser", "ada"))
	cleanup()

	store, cleanup, err = NewStore(cfg, quietLogger())
	require.NoError(t, err)
	defer cleanup()

	v, ok, err := store.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada", v)
}

func TestNewStore_Memory(t *testing.T) {
	store, cleanup, err := NewStore(&config.Config{Store: config.StoreConfig{Driver: "memory"}}, quietLogger())
	require.NoError(t, err)
	defer cleanup()
	_, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewStore_UnsupportedDriver(t *testing.T) {
	_, _, err := NewStore(&config.Config{Store: config.StoreConfig{Driver: "mysql"}}, quietLogger())
	require.ErrorIs(t, err, entity.ErrUnsupportedDriver)
}

//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
	blobpg "github.com/Apurer/go-gin-storefront/internal/platform/blobstore/postgres"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
)

func setupSnapshotPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestStore_PutGetOverwrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupSnapshotPostgresContainer(t)
	defer cleanup()

	store := blobpg.NewStore(db)
	ctx := context.Background()

	_, err := store.Get(ctx, "shopper-1:luxe-cart")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "shopper-1:luxe-cart", 1, []byte(`{"version":1,"items":[]}`)))
	require.NoError(t, store.Put(ctx, "shopper-1:luxe-cart", 2, []byte(`{"version":1,"items":[{"id":"1"}]}`)))

	got, err := store.Get(ctx, "shopper-1:luxe-cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[{"id":"1"}]}`, string(got))

	require.NoError(t, store.Delete(ctx, "shopper-1:luxe-cart"))
	require.NoError(t, store.Delete(ctx, "shopper-1:luxe-cart"))
	_, err = store.Get(ctx, "shopper-1:luxe-cart")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestStore_StaleRevisionDoesNotOverwrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupSnapshotPostgresContainer(t)
	defer cleanup()

	store := blobpg.NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "shopper-2:luxe-cart", 20, []byte(`{"version":1,"items":[{"id":"2"}]}`)))
	require.NoError(t, store.Put(ctx, "shopper-2:luxe-cart", 10, []byte(`{"version":1,"items":[]}`)))

	got, err := store.Get(ctx, "shopper-2:luxe-cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[{"id":"2"}]}`, string(got))

	require.NoError(t, store.Put(ctx, "shopper-2:luxe-cart", 20, []byte(`{"version":1,"items":[{"id":"3"}]}`)))
	got, err = store.Get(ctx, "shopper-2:luxe-cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[{"id":"3"}]}`, string(got))
}

func TestStore_PurgeStale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupSnapshotPostgresContainer(t)
	defer cleanup()

	store := blobpg.NewStore(db)
	ctx := context.Background()
	old := time.Now().Add(-72 * time.Hour)
	store.WithClock(func() time.Time { return old })
	require.NoError(t, store.Put(ctx, "abandoned:luxe-cart", 1, []byte("{}")))
	store.WithClock(time.Now)
	require.NoError(t, store.Put(ctx, "active:luxe-cart", 1, []byte("{}")))

	purged, err := store.PurgeStale(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Get(ctx, "abandoned:luxe-cart")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	_, err = store.Get(ctx, "active:luxe-cart")
	assert.NoError(t, err)
}

package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var productColumns = []string{
	"id", "position", "name", "price", "original_price", "category", "subcategory",
	"images", "sizes", "colors", "description", "fabric", "care", "rating", "reviews",
	"is_new", "is_sale", "created_at", "updated_at",
}

func newMockRepository(t *testing.T) (*catalogpg.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return catalogpg.NewRepository(db), mock
}

func coatRow(rows *sqlmock.Rows) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		"1", 0, "Oversized Wool Blend Coat", "299.00", "399.00", "women", "Coats",
		"{https://img/1a,https://img/1b}", "{XS,S,M}", `[{"name":"Camel","hex":"#C19A6B"}]`,
		"coat", "wool", "{Dry clean only}", 4.8, 124, false, true, now, now,
	)
}

func TestRepository_GetByID_MapsRecord(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnRows(coatRow(sqlmock.NewRows(productColumns)))

	product, err := repo.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Oversized Wool Blend Coat", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(299)))
	require.True(t, product.OriginalPrice.Valid)
	assert.Equal(t, 25, product.DiscountPercent())
	assert.Equal(t, []string{"XS", "S", "M"}, product.Sizes)
	assert.Equal(t, []domain.Color{{Name: "Camel", Hex: "#C19A6B"}}, product.Colors)
	assert.True(t, product.IsSale)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListByCategory_SaleUsesFlag(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE is_sale = $1 ORDER BY position ASC`)).
		WithArgs(true).
		WillReturnRows(coatRow(sqlmock.NewRows(productColumns)))

	products, err := repo.ListByCategory(context.Background(), domain.CategorySale)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "1", products[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_NilDB(t *testing.T) {
	_, err := catalogpg.NewRepository(nil).GetByID(context.Background(), "1")
	require.Error(t, err)
}

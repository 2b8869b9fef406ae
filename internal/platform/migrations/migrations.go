package migrations

import (
	"context"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	blobpg "github.com/Apurer/go-gin-storefront/internal/platform/blobstore/postgres"
)

// Run applies the storefront schema: the catalog and the snapshot table.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&catalogpg.ProductRecord{},
		&blobpg.SnapshotRecord{},
	)
}

// SeedCatalog loads the launch catalog when the products table is empty.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).Model(&catalogpg.ProductRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return catalogpg.NewRepository(db).Seed(ctx, catalogmemory.SeedProducts())
}

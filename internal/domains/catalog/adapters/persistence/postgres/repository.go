package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository reads the catalog from PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductRecord maps a product to the products table. Position preserves catalog order.
type ProductRecord struct {
	ID            string              `gorm:"primaryKey;column:id;size:64"`
	Position      int                 `gorm:"column:position;index"`
	Name          string              `gorm:"column:name"`
	Price         decimal.Decimal     `gorm:"column:price;type:numeric(12,2)"`
	OriginalPrice decimal.NullDecimal `gorm:"column:original_price;type:numeric(12,2)"`
	Category      string              `gorm:"column:category;type:varchar(32);index"`
	Subcategory   string              `gorm:"column:subcategory"`
	Images        pq.StringArray      `gorm:"column:images;type:text[]"`
	Sizes         pq.StringArray      `gorm:"column:sizes;type:text[]"`
	Colors        []colorRecord       `gorm:"column:colors;serializer:json"`
	Description   string              `gorm:"column:description"`
	Fabric        string              `gorm:"column:fabric"`
	Care          pq.StringArray      `gorm:"column:care;type:text[]"`
	Rating        float64             `gorm:"column:rating"`
	Reviews       int                 `gorm:"column:reviews"`
	IsNew         bool                `gorm:"column:is_new;index"`
	IsSale        bool                `gorm:"column:is_sale;index"`
	CreatedAt     time.Time           `gorm:"column:created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at"`
}

type colorRecord struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

func (ProductRecord) TableName() string { return "products" }

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ProductRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&ProductRecord{})
	switch category {
	case domain.CategoryAll, "":
	case domain.CategoryNewArrivals:
		query = query.Where("is_new = ?", true)
	case domain.CategorySale:
		query = query.Where("is_sale = ?", true)
	default:
		query = query.Where("category = ?", string(category))
	}
	var records []ProductRecord
	if err := query.Order("position ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.ListByCategory(ctx, domain.CategoryAll)
}

// Seed upserts products, assigning positions in slice order. Used by migrations and tests.
func (r *Repository) Seed(ctx context.Context, products []*domain.Product) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, p := range products {
			record := ToRecord(p, i)
			if err := tx.Save(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

// ToRecord maps a product to its row at the given catalog position.
func ToRecord(p *domain.Product, position int) ProductRecord {
	colors := make([]colorRecord, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, colorRecord{Name: c.Name, Hex: c.Hex})
	}
	return ProductRecord{
		ID:            p.ID,
		Position:      position,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      string(p.Category),
		Subcategory:   p.Subcategory,
		Images:        pq.StringArray(p.Images),
		Sizes:         pq.StringArray(p.Sizes),
		Colors:        colors,
		Description:   p.Description,
		Fabric:        p.Fabric,
		Care:          pq.StringArray(p.Care),
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		IsNew:         p.IsNew,
		IsSale:        p.IsSale,
	}
}

func (r ProductRecord) toDomain() *domain.Product {
	colors := make([]domain.Color, 0, len(r.Colors))
	for _, c := range r.Colors {
		colors = append(colors, domain.Color{Name: c.Name, Hex: c.Hex})
	}
	return &domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      domain.Category(r.Category),
		Subcategory:   r.Subcategory,
		Images:        []string(r.Images),
		Sizes:         []string(r.Sizes),
		Colors:        colors,
		Description:   r.Description,
		Fabric:        r.Fabric,
		Care:          []string(r.Care),
		Rating:        r.Rating,
		Reviews:       r.Reviews,
		IsNew:         r.IsNew,
		IsSale:        r.IsSale,
	}
}

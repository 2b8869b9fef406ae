package application

import (
	"context"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// DefaultFeaturedLimit matches the home page showcase rows.
const DefaultFeaturedLimit = 4

// Service answers catalog queries.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.ListByCategory(ctx, c)
}

// Browse applies category, size and sort the way the shop page does.
func (s *Service) Browse(ctx context.Context, query ports.BrowseQuery) ([]*domain.Product, error) {
	category, err := domain.ParseCategory(query.Category)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := domain.ParseSortOrder(query.Sort)
	if err != nil {
		return nil, mapError(err)
	}
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	result := domain.Filter(products, category, strings.TrimSpace(query.Size))
	domain.Sort(result, order)
	return result, nil
}

// Featured returns at most Limit products of the category in catalog order.
func (s *Service) Featured(ctx context.Context, query ports.FeaturedQuery) ([]*domain.Product, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	products, err := s.ListByCategory(ctx, query.Category)
	if err != nil {
		return nil, err
	}
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

var _ ports.Service = (*Service)(nil)

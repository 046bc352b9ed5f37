package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	c := &Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

type NewProduct struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Banner      string
	CategoryID  string
}

func (s *Service) CreateProduct(ctx context.Context, in NewProduct) (*Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	if _, err := uuid.Parse(in.CategoryID); err != nil {
		return nil, fmt.Errorf("%w: category_id is not a valid id", ErrInvalidArgument)
	}

	p := &Product{
		ID:          uuid.NewString(),
		Name:        name,
		Price:       in.Price.Round(2),
		Description: strings.TrimSpace(in.Description),
		Banner:      strings.TrimSpace(in.Banner),
		CategoryID:  in.CategoryID,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return nil, fmt.Errorf("%w: category_id is not a valid id", ErrInvalidArgument)
	}
	return s.repo.ListProductsByCategory(ctx, categoryID)
}

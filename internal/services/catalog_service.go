package services

import (
	"database/sql"
	"errors"
	"fmt"

	"ventas/internal/domain"
	"ventas/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService owns product records and the available-unit counters.
type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) ByName(name string) ([]domain.Product, error) {
	return s.Prods.ByName(name)
}

func (s *CatalogService) ByCategory(category string) ([]domain.Product, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.Prods.ByCategory(c)
}

func (s *CatalogService) ByGender(gender string) ([]domain.Product, error) {
	g, err := domain.ParseGender(gender)
	if err != nil {
		return nil, err
	}
	return s.Prods.ByGender(g)
}

func (s *CatalogService) BySize(size string) ([]domain.Product, error) {
	t, err := domain.ParseSize(size)
	if err != nil {
		return nil, err
	}
	return s.Prods.BySize(t)
}

type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Image       string
	Description string
	Units       int
	Gender      string
	Category    string
	Brand       string
	Size        string
}

func (in ProductInput) toProduct(id string) (domain.Product, error) {
	if in.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: negative price", domain.ErrInvalidArgument)
	}
	if in.Units < 0 {
		return domain.Product{}, fmt.Errorf("%w: negative units", domain.ErrInvalidArgument)
	}
	gender, err := domain.ParseGender(in.Gender)
	if err != nil {
		return domain.Product{}, err
	}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return domain.Product{}, err
	}
	size, err := domain.ParseSize(in.Size)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		Units:       in.Units,
		Gender:      gender,
		Category:    category,
		Brand:       in.Brand,
		Size:        size,
	}, nil
}

func (s *CatalogService) Create(in ProductInput) (domain.Product, error) {
	p, err := in.toProduct(uuid.NewString())
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Insert(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) Update(id string, in ProductInput) (domain.Product, error) {
	if _, err := s.Get(id); err != nil {
		return domain.Product{}, err
	}
	p, err := in.toProduct(id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) Delete(id string) error {
	err := s.Prods.Delete(id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return err
}

// IsAvailable reports whether the product has any units left.
func (s *CatalogService) IsAvailable(id string) (bool, error) {
	p, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return p.Available(), nil
}

// ReserveCheck is the advisory point-in-time stock check used when building
// carts. It holds nothing; checkout re-validates under its transaction.
func (s *CatalogService) ReserveCheck(id string, qty int) (bool, error) {
	p, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return p.Available() && qty <= p.Units, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/andriiBychkovskiy/proshop/internal/apperr"
	"github.com/andriiBychkovskiy/proshop/internal/auth"
)

const topProductsLimit = 3

// Service layers authorization guards and error-kind mapping over the
// repository. Browsing is public; mutations are admin-only except reviews.
type Service struct {
	repo     Repository
	pageSize int
}

func NewService(repo Repository, pageSize int) *Service {
	return &Service{repo: repo, pageSize: pageSize}
}

func (s *Service) List(ctx context.Context, keyword string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	products, total, err := s.repo.List(ctx, keyword, page, s.pageSize)
	if err != nil {
		return nil, err
	}

	pages := (total + s.pageSize - 1) / s.pageSize
	if products == nil {
		products = []Product{}
	}
	return &Page{Products: products, Page: page, Pages: pages}, nil
}

func (s *Service) Top(ctx context.Context) ([]Product, error) {
	return s.repo.Top(ctx, topProductsLimit)
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, principal auth.Principal, p *Product) error {
	if !principal.IsAdmin {
		return apperr.Authorization("not authorized as admin")
	}
	if p.Name == "" {
		return apperr.Validation("product name is required")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, principal auth.Principal, p *Product) error {
	if !principal.IsAdmin {
		return apperr.Authorization("not authorized as admin")
	}

	err := s.repo.Update(ctx, p)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("product not found")
	}
	return err
}

func (s *Service) Delete(ctx context.Context, principal auth.Principal, id string) error {
	if !principal.IsAdmin {
		return apperr.Authorization("not authorized as admin")
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("product not found")
	}
	return err
}

// AddReview records one review per user per product under the reviewer's
// display name.
func (s *Service) AddReview(ctx context.Context, principal auth.Principal, productID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}

	err := s.repo.AddReview(ctx, productID, principal.UserID, principal.Name, rating, comment)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("product not found")
	case errors.Is(err, ErrAlreadyReviewed):
		return apperr.Validation("product already reviewed")
	case err != nil:
		return fmt.Errorf("add review: %w", err)
	}
	return nil
}

// DecrementStock is invoked by order placement; a vanished product is not a
// checkout failure.
func (s *Service) DecrementStock(ctx context.Context, productID string, qty int) error {
	err := s.repo.DecrementStock(ctx, productID, qty)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

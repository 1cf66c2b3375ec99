package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andriiBychkovskiy/proshop/internal/apperr"
	"github.com/andriiBychkovskiy/proshop/internal/auth"
)

type fakeCatalogRepo struct {
	listFunc      func(ctx context.Context, keyword string, page, pageSize int) ([]Product, int, error)
	topFunc       func(ctx context.Context, limit int) ([]Product, error)
	getFunc       func(ctx context.Context, id string) (*Product, error)
	createFunc    func(ctx context.Context, p *Product) error
	updateFunc    func(ctx context.Context, p *Product) error
	deleteFunc    func(ctx context.Context, id string) error
	addReviewFunc func(ctx context.Context, productID, userID, name string, rating int, comment string) error
	decStockFunc  func(ctx context.Context, productID string, qty int) error
}

func (f *fakeCatalogRepo) List(ctx context.Context, keyword string, page, pageSize int) ([]Product, int, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, keyword, page, pageSize)
	}
	return nil, 0, nil
}

func (f *fakeCatalogRepo) Top(ctx context.Context, limit int) ([]Product, error) {
	if f.topFunc != nil {
		return f.topFunc(ctx, limit)
	}
	return nil, nil
}

func (f *fakeCatalogRepo) Get(ctx context.Context, id string) (*Product, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (f *fakeCatalogRepo) Create(ctx context.Context, p *Product) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, p)
	}
	return nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, p *Product) error {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, p)
	}
	return nil
}

func (f *fakeCatalogRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeCatalogRepo) AddReview(ctx context.Context, productID, userID, name string, rating int, comment string) error {
	if f.addReviewFunc != nil {
		return f.addReviewFunc(ctx, productID, userID, name, rating, comment)
	}
	return nil
}

func (f *fakeCatalogRepo) DecrementStock(ctx context.Context, productID string, qty int) error {
	if f.decStockFunc != nil {
		return f.decStockFunc(ctx, productID, qty)
	}
	return nil
}

var admin = auth.Principal{UserID: "a1", Name: "Admin", IsAdmin: true}
var shopper = auth.Principal{UserID: "u1", Name: "Alice"}

func TestList_ComputesPageCount(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{
		listFunc: func(ctx context.Context, keyword string, page, pageSize int) ([]Product, int, error) {
			assert.Equal(t, 8, pageSize)
			return []Product{{ID: "p1"}}, 17, nil
		},
	}, 8)

	page, err := svc.List(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages) // ceil(17/8)
	assert.Len(t, page.Products, 1)
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{}, 8)

	page, err := svc.List(context.Background(), "zzz", 1)
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

func TestGet_MapsNotFound(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{}, 8)

	_, err := svc.Get(context.Background(), "ghost")
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreate_RequiresAdmin(t *testing.T) {
	called := false
	svc := NewService(&fakeCatalogRepo{
		createFunc: func(ctx context.Context, p *Product) error {
			called = true
			return nil
		},
	}, 8)

	err := svc.Create(context.Background(), shopper, &Product{Name: "Camera"})
	assert.True(t, apperr.IsAuthorization(err))
	assert.False(t, called)

	require.NoError(t, svc.Create(context.Background(), admin, &Product{Name: "Camera"}))
	assert.True(t, called)
}

func TestAddReview_RatingBounds(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{}, 8)

	assert.True(t, apperr.IsValidation(svc.AddReview(context.Background(), shopper, "p1", 0, "")))
	assert.True(t, apperr.IsValidation(svc.AddReview(context.Background(), shopper, "p1", 6, "")))
}

func TestAddReview_MapsDuplicate(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{
		addReviewFunc: func(ctx context.Context, productID, userID, name string, rating int, comment string) error {
			return ErrAlreadyReviewed
		},
	}, 8)

	err := svc.AddReview(context.Background(), shopper, "p1", 4, "nice")
	assert.True(t, apperr.IsValidation(err))
}

func TestAddReview_UsesPrincipalIdentity(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{
		addReviewFunc: func(ctx context.Context, productID, userID, name string, rating int, comment string) error {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "Alice", name)
			return nil
		},
	}, 8)

	require.NoError(t, svc.AddReview(context.Background(), shopper, "p1", 5, "great"))
}

func TestDecrementStock_IgnoresMissingProduct(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{
		decStockFunc: func(ctx context.Context, productID string, qty int) error {
			return ErrNotFound
		},
	}, 8)

	assert.NoError(t, svc.DecrementStock(context.Background(), "ghost", 1))
}

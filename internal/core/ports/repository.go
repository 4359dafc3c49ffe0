package ports

import (
	"context"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
)

// ProductRepository persists products for the development resource server.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	// Update replaces the writable fields. Returns domain.ErrProductNotFound for unknown ids.
	Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository persists accounts for the development resource server.
type UserRepository interface {
	List(ctx context.Context) ([]domain.RemoteUser, error)
	FindByID(ctx context.Context, id int64) (*domain.RemoteUser, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u domain.RemoteUser) (*domain.RemoteUser, error)
}

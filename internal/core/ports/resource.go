package ports

import (
	"context"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
)

// ProductResource is the remote product collection.
type ProductResource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// UserDirectory is the remote user collection, consulted at login.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]domain.RemoteUser, error)
}

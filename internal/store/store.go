// Package store defines the persistence contract for users, products and
// cart items. Two implementations exist: mysqlstore (production) and
// memorystore (tests and DSN-less local runs).
package store

import (
	"context"
	"errors"

	"github.com/rsnteam/telemart-golang/internal/models"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a create would violate a uniqueness
	// constraint. The store-level constraint is the authoritative guard
	// against check-then-create races.
	ErrDuplicate = errors.New("duplicate record")
)

// Storage is the single persistence interface the handlers and the cart
// service depend on. Every call takes a context so store timeouts stay
// request-scoped.
type Storage interface {
	// CreateUser inserts a user and assigns its ID.
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	// FindUserByAny returns any existing user matching the given username,
	// email or phone number. Used for the registration conflict check.
	FindUserByAny(ctx context.Context, username, email, phoneNumber string) (*models.User, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	// InsertProducts bulk-inserts with skip-duplicates semantics and
	// returns the number of rows actually inserted.
	InsertProducts(ctx context.Context, products []models.Product) (int64, error)

	// CreateCartItem inserts a cart line and assigns its ID.
	CreateCartItem(ctx context.Context, item *models.CartItem) error
	// ListCartItems returns the user's items in ascending item id
	// (insertion order).
	ListCartItems(ctx context.Context, userID int64) ([]models.CartItem, error)
	FindCartItemByID(ctx context.Context, id int64) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id int64) error
	// DeleteCartItems removes every item owned by the user.
	DeleteCartItems(ctx context.Context, userID int64) error
}

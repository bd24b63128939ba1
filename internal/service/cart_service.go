// Package service holds the session-gated cart workflow: add, list,
// owner-checked delete, and checkout-by-email.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rsnteam/telemart-golang/internal/email"
	"github.com/rsnteam/telemart-golang/internal/models"
	"github.com/rsnteam/telemart-golang/internal/store"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to send")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidProduct  = errors.New("product does not exist")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

const emailSubject = "Your Cart Details - RSN TeleMart"

type CartService struct {
	store  store.Storage
	mailer email.Mailer
}

func NewCartService(st store.Storage, mailer email.Mailer) *CartService {
	return &CartService{
		store:  st,
		mailer: mailer,
	}
}

// AddItem creates a cart line for the user and returns it enriched with
// the referenced product. The product must exist and the quantity must be
// positive.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.EnrichedCartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.store.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidProduct
		}
		return nil, err
	}

	item := &models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		UserID:    userID,
	}
	if err := s.store.CreateCartItem(ctx, item); err != nil {
		return nil, err
	}

	return &models.EnrichedCartItem{CartItem: *item, Product: *product}, nil
}

// ListItems returns the user's cart in insertion order (ascending item
// id), each line enriched with its product.
func (s *CartService) ListItems(ctx context.Context, userID int64) ([]models.EnrichedCartItem, error) {
	items, err := s.store.ListCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.EnrichedCartItem, 0, len(items))
	for _, item := range items {
		product, err := s.store.FindProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("enrich cart item %d: %w", item.ID, err)
		}
		result = append(result, models.EnrichedCartItem{CartItem: item, Product: *product})
	}
	return result, nil
}

// RemoveItem deletes one of the user's cart lines. An item that does not
// exist and an item owned by someone else produce the same ErrItemNotFound,
// so ownership is never distinguishable from absence.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	item, err := s.store.FindCartItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrItemNotFound
	}

	err = s.store.DeleteCartItem(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted concurrently; same outcome for the caller.
		return ErrItemNotFound
	}
	return err
}

// EmailCart mails the user a summary of their cart and then clears it.
// The clear is sequenced strictly after a successful dispatch: if mail
// delivery fails the cart keeps its items and the user can retry.
func (s *CartService) EmailCart(ctx context.Context, userID int64) error {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}

	body := renderSummary(user.Username, items)
	if err := s.mailer.Send(ctx, user.Email, emailSubject, body); err != nil {
		return fmt.Errorf("send cart email: %w", err)
	}

	return s.store.DeleteCartItems(ctx, userID)
}

// renderSummary formats the cart as one unit-price line per item:
// "<product name> - <quantity> x $<unit price>".
func renderSummary(username string, items []models.EnrichedCartItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s - %d x $%g", item.Product.Name, item.Quantity, item.Product.Price))
	}

	return fmt.Sprintf(
		"Hello %s,\n\nHere are your cart details:\n\n%s\n\nThank you for shopping with RSN TeleMart!",
		username, strings.Join(lines, "\n"))
}

// Package memorystore implements store.Storage with mutex-guarded maps.
// It backs the tests and DSN-less local runs; nothing survives a restart.
package memorystore

import (
	"context"
	"sort"
	"sync"

	"github.com/rsnteam/telemart-golang/internal/models"
	"github.com/rsnteam/telemart-golang/internal/store"
)

type MemoryStore struct {
	mu sync.RWMutex

	users        map[int64]models.User
	products     map[int64]models.Product
	productOrder []int64
	cartItems    map[int64]models.CartItem

	nextUserID int64
	nextItemID int64
}

func New() *MemoryStore {
	return &MemoryStore{
		users:     make(map[int64]models.User),
		products:  make(map[int64]models.Product),
		cartItems: make(map[int64]models.CartItem),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email || u.PhoneNumber == user.PhoneNumber {
			return store.ErrDuplicate
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemoryStore) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindUserByAny(_ context.Context, username, email, phoneNumber string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email || u.PhoneNumber == phoneNumber {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemoryStore) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		result = append(result, s.products[id])
	}
	return result, nil
}

func (s *MemoryStore) ListProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Product, 0)
	for _, id := range s.productOrder {
		if s.products[id].Category == category {
			result = append(result, s.products[id])
		}
	}
	return result, nil
}

func (s *MemoryStore) FindProductByID(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) InsertProducts(_ context.Context, products []models.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inserted int64
	for _, p := range products {
		if _, exists := s.products[p.ID]; exists {
			continue // skip-duplicates policy
		}
		s.products[p.ID] = p
		s.productOrder = append(s.productOrder, p.ID)
		inserted++
	}
	return inserted, nil
}

func (s *MemoryStore) CreateCartItem(_ context.Context, item *models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItemID++
	item.ID = s.nextItemID
	s.cartItems[item.ID] = *item
	return nil
}

func (s *MemoryStore) ListCartItems(_ context.Context, userID int64) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.CartItem, 0)
	for _, item := range s.cartItems {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemoryStore) FindCartItemByID(_ context.Context, id int64) (*models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.cartItems[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) DeleteCartItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cartItems[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.cartItems, id)
	return nil
}

func (s *MemoryStore) DeleteCartItems(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.cartItems {
		if item.UserID == userID {
			delete(s.cartItems, id)
		}
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsnteam/telemart-golang/internal/models"
	"github.com/rsnteam/telemart-golang/internal/store/memorystore"
)

type mockMailer struct {
	m sync.Mutex

	err error

	sent     int
	lastTo   string
	lastSubj string
	lastBody string
}

func (m *mockMailer) Send(_ context.Context, to, subject, body string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent++
	m.lastTo = to
	m.lastSubj = subject
	m.lastBody = body
	return nil
}

func (m *mockMailer) sentCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.sent
}

func seedUser(t *testing.T, st *memorystore.MemoryStore, username, email string) int64 {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Name:         username,
		Email:        email,
		PhoneNumber:  username + "-phone",
	}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user.ID
}

func seedProducts(t *testing.T, st *memorystore.MemoryStore, products ...models.Product) {
	t.Helper()
	n, err := st.InsertProducts(context.Background(), products)
	require.NoError(t, err)
	require.Equal(t, int64(len(products)), n)
}

func TestAddItem_Success(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")
	seedProducts(t, st, models.Product{ID: 7, Name: "Phone", Price: 199.99, Category: "electronics"})

	sut := NewCartService(st, &mockMailer{})
	item, err := sut.AddItem(context.Background(), userID, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, userID, item.UserID)
	assert.Equal(t, "Phone", item.Product.Name)
	assert.NotZero(t, item.ID)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")

	sut := NewCartService(st, &mockMailer{})
	_, err := sut.AddItem(context.Background(), userID, 42, 1)
	require.ErrorIs(t, err, ErrInvalidProduct)
}

func TestAddItem_NonPositiveQuantity(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")
	seedProducts(t, st, models.Product{ID: 7, Name: "Phone", Price: 199.99})

	sut := NewCartService(st, &mockMailer{})
	for _, quantity := range []int{0, -3} {
		_, err := sut.AddItem(context.Background(), userID, 7, quantity)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestListItems_InsertionOrderAndEnrichment(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")
	seedProducts(t, st,
		models.Product{ID: 1, Name: "Phone", Price: 100},
		models.Product{ID: 2, Name: "Charger", Price: 15.5},
	)

	sut := NewCartService(st, &mockMailer{})
	_, err := sut.AddItem(context.Background(), userID, 2, 1)
	require.NoError(t, err)
	_, err = sut.AddItem(context.Background(), userID, 1, 3)
	require.NoError(t, err)

	items, err := sut.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Charger", items[0].Product.Name)
	assert.Equal(t, "Phone", items[1].Product.Name)
	assert.True(t, items[0].ID < items[1].ID)
}

func TestListItems_EmptyCart(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")

	sut := NewCartService(st, &mockMailer{})
	items, err := sut.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRemoveItem_Success(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")
	seedProducts(t, st, models.Product{ID: 1, Name: "Phone", Price: 100})

	sut := NewCartService(st, &mockMailer{})
	item, err := sut.AddItem(context.Background(), userID, 1, 1)
	require.NoError(t, err)

	require.NoError(t, sut.RemoveItem(context.Background(), userID, item.ID))

	items, err := sut.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveItem_MissingAndForeignLookIdentical(t *testing.T) {
	st := memorystore.New()
	aliceID := seedUser(t, st, "alice", "a@x.com")
	bobID := seedUser(t, st, "bob", "b@x.com")
	seedProducts(t, st, models.Product{ID: 1, Name: "Phone", Price: 100})

	sut := NewCartService(st, &mockMailer{})
	bobsItem, err := sut.AddItem(context.Background(), bobID, 1, 1)
	require.NoError(t, err)

	// Nonexistent id and another user's id must be indistinguishable.
	errMissing := sut.RemoveItem(context.Background(), aliceID, 9999)
	errForeign := sut.RemoveItem(context.Background(), aliceID, bobsItem.ID)
	require.ErrorIs(t, errMissing, ErrItemNotFound)
	require.ErrorIs(t, errForeign, ErrItemNotFound)

	// Bob's cart is untouched.
	items, err := sut.ListItems(context.Background(), bobID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestEmailCart_EmptyCartSendsNothing(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")
	mailer := &mockMailer{}

	sut := NewCartService(st, mailer)
	err := sut.EmailCart(context.Background(), userID)
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, mailer.sentCount())
}

func TestEmailCart_UnknownUser(t *testing.T) {
	st := memorystore.New()
	mailer := &mockMailer{}

	sut := NewCartService(st, mailer)
	err := sut.EmailCart(context.Background(), 1234)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, mailer.sentCount())
}

func TestEmailCart_SuccessClearsCart(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")
	seedProducts(t, st,
		models.Product{ID: 1, Name: "Phone", Price: 199.99},
		models.Product{ID: 2, Name: "Charger", Price: 15.5},
	)
	mailer := &mockMailer{}

	sut := NewCartService(st, mailer)
	_, err := sut.AddItem(context.Background(), userID, 1, 2)
	require.NoError(t, err)
	_, err = sut.AddItem(context.Background(), userID, 2, 1)
	require.NoError(t, err)

	require.NoError(t, sut.EmailCart(context.Background(), userID))

	assert.Equal(t, 1, mailer.sentCount())
	assert.Equal(t, "a@x.com", mailer.lastTo)
	assert.Equal(t, "Your Cart Details - RSN TeleMart", mailer.lastSubj)
	assert.Contains(t, mailer.lastBody, "Hello alice,")
	assert.Contains(t, mailer.lastBody, "Phone - 2 x $199.99")
	assert.Contains(t, mailer.lastBody, "Charger - 1 x $15.5")
	assert.Contains(t, mailer.lastBody, "Thank you for shopping with RSN TeleMart!")

	items, err := sut.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEmailCart_DispatchFailureKeepsCart(t *testing.T) {
	st := memorystore.New()
	userID := seedUser(t, st, "alice", "a@x.com")
	seedProducts(t, st, models.Product{ID: 1, Name: "Phone", Price: 100})
	mailer := &mockMailer{err: fmt.Errorf("smtp unreachable")}

	sut := NewCartService(st, mailer)
	_, err := sut.AddItem(context.Background(), userID, 1, 2)
	require.NoError(t, err)

	err = sut.EmailCart(context.Background(), userID)
	require.ErrorContains(t, err, "smtp unreachable")

	// The clear is conditioned strictly on dispatch success.
	items, err := sut.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

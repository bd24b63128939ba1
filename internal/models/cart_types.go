package models

// CartItem is a single cart line, exclusively owned by its user.
// Quantity changes are delete + recreate; items are never updated in place.
type CartItem struct {
	ID        int64 `json:"id" db:"id"`
	ProductID int64 `json:"productId" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
	UserID    int64 `json:"userId" db:"user_id"`
}

// EnrichedCartItem is a CartItem with its referenced product attached.
// This is the shape /cart and /cartpost return to the frontend.
type EnrichedCartItem struct {
	CartItem
	Product Product `json:"product"`
}

package models

// Product is read-only reference data from the cart's point of view.
// IDs are caller-supplied on bulk insert, so duplicates can be skipped.
type Product struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Title    string  `json:"title" db:"title"`
	Price    float64 `json:"price" db:"price"`
	Category string  `json:"category" db:"category"`
}

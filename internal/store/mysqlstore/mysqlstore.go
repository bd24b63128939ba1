// Package mysqlstore implements store.Storage on top of MySQL.
//
// Expected schema:
//
//	user_details(id PK AUTO_INCREMENT, username UNIQUE, password_hash,
//	             name, email UNIQUE, phone_number UNIQUE)
//	products(id PK, name, title, price, category)
//	cart_items(id PK AUTO_INCREMENT, product_id FK, quantity, user_id FK)
package mysqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/rsnteam/telemart-golang/internal/models"
	"github.com/rsnteam/telemart-golang/internal/store"
)

// mysqlDuplicateEntry is MySQL error 1062 (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

type MySQLStore struct {
	db *sql.DB
}

func New(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

func (s *MySQLStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO user_details (username, password_hash, name, email, phone_number)
		VALUES (?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Name, user.Email, user.PhoneNumber)
	if err != nil {
		if isDuplicate(err) {
			return store.ErrDuplicate
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (s *MySQLStore) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash,
		&user.Name, &user.Email, &user.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MySQLStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, name, email, phone_number
		FROM user_details WHERE username = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *MySQLStore) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, name, email, phone_number
		FROM user_details WHERE id = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *MySQLStore) FindUserByAny(ctx context.Context, username, email, phoneNumber string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, name, email, phone_number
		FROM user_details
		WHERE username = ? OR email = ? OR phone_number = ?
		LIMIT 1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username, email, phoneNumber))
}

func (s *MySQLStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Title, &p.Price, &p.Category); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *MySQLStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx,
		"SELECT id, name, title, price, category FROM products")
}

func (s *MySQLStore) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.queryProducts(ctx,
		"SELECT id, name, title, price, category FROM products WHERE category = ?", category)
}

func (s *MySQLStore) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	query := "SELECT id, name, title, price, category FROM products WHERE id = ?"
	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Title, &p.Price, &p.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MySQLStore) InsertProducts(ctx context.Context, products []models.Product) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// INSERT IGNORE gives us the skip-duplicates policy: rows hitting a
	// unique key are dropped without failing the batch.
	query := `
		INSERT IGNORE INTO products (id, name, title, price, category)
		VALUES (?, ?, ?, ?, ?)`

	var inserted int64
	for _, p := range products {
		result, err := tx.ExecContext(ctx, query, p.ID, p.Name, p.Title, p.Price, p.Category)
		if err != nil {
			return 0, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *MySQLStore) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	query := "INSERT INTO cart_items (product_id, quantity, user_id) VALUES (?, ?, ?)"
	result, err := s.db.ExecContext(ctx, query, item.ProductID, item.Quantity, item.UserID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}

func (s *MySQLStore) ListCartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	query := `
		SELECT id, product_id, quantity, user_id
		FROM cart_items WHERE user_id = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.CartItem, 0)
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UserID); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (s *MySQLStore) FindCartItemByID(ctx context.Context, id int64) (*models.CartItem, error) {
	var item models.CartItem
	query := "SELECT id, product_id, quantity, user_id FROM cart_items WHERE id = ?"
	err := s.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *MySQLStore) DeleteCartItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *MySQLStore) DeleteCartItems(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = ?", userID)
	return err
}

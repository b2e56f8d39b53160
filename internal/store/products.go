package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"store-inventory/internal/models"
)

// Insert persists a new product row and fills in its store-assigned id.
// Rows are append-only: updates elsewhere in the system are modeled as new
// inserts, so there is no uniqueness constraint to violate here.
func (s *Store) Insert(ctx context.Context, p *models.Product) error {
	if s.driver == "postgres" {
		query := s.db.Rebind(`
			INSERT INTO products (name, quantity, price, updated_at)
			VALUES (?, ?, ?, ?)
			RETURNING id`)
		if err := s.db.GetContext(ctx, &p.ID, query, p.Name, p.Quantity, p.Price, p.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, quantity, price, updated_at) VALUES (?, ?, ?, ?)`,
		p.Name, p.Quantity, p.Price, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	p.ID = id
	return nil
}

// InsertProducts bulk-inserts rows in a single transaction, committing once
// at the end so a CSV load lands atomically. Returns the number inserted.
func (s *Store) InsertProducts(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`INSERT INTO products (name, quantity, price, updated_at) VALUES (?, ?, ?, ?)`)
	for i := range products {
		p := &products[i]
		if _, err := tx.ExecContext(ctx, query, p.Name, p.Quantity, p.Price, p.UpdatedAt); err != nil {
			return 0, fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return len(products), nil
}

// GetByID retrieves a product by its id.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	query := s.db.Rebind(`SELECT * FROM products WHERE id = ?`)
	err := s.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByName retrieves every row ever stored under name, in insertion order.
func (s *Store) FindByName(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	query := s.db.Rebind(`SELECT * FROM products WHERE name = ? ORDER BY id`)
	err := s.db.SelectContext(ctx, &products, query, name)
	return products, err
}

// ScanByID retrieves every row in ascending id order. Each call reflects the
// store's current state.
func (s *Store) ScanByID(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, `SELECT * FROM products ORDER BY id`)
	return products, err
}

// Current retrieves the row with the latest updated_at for name, breaking
// ties by id. This is the authoritative "current value" for a name; rows it
// supersedes stay in the table.
func (s *Store) Current(ctx context.Context, name string) (*models.Product, error) {
	var p models.Product
	query := s.db.Rebind(`SELECT * FROM products WHERE name = ? ORDER BY updated_at DESC, id DESC LIMIT 1`)
	err := s.db.GetContext(ctx, &p, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

package sqlite

// This file implements the category operations. Categories are a flat lookup
// table; tasks reference them by id and deletion is not supported.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// ListCategories returns all categories ordered by name ascending.
func (b *Backend) ListCategories(ctx context.Context) ([]types.Category, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := []types.Category{}
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("hydrating category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

// CreateCategory validates and inserts a category, returning the created row.
// Name uniqueness is by convention, not enforced.
func (b *Backend) CreateCategory(ctx context.Context, name string) (*types.Category, error) {
	name, err := types.ValidateCategoryName(name)
	if err != nil {
		return nil, err
	}

	res, err := b.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted category id: %w", err)
	}

	row := b.db.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE id = ?", id)
	var c types.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %d: %w", id, err)
	}
	return &c, nil
}

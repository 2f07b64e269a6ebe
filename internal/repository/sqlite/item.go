package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/itembox/internal/apperror"
	"github.com/sakif/itembox/internal/model"
	"github.com/sakif/itembox/internal/repository"
)

var _ repository.ItemRepository = (*DB)(nil)

// List returns every item in insertion order.
func (db *DB) List(ctx context.Context) ([]model.Item, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM items
		 ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating items: %w", err)
	}

	return items, nil
}

// Create assigns item.ID = COUNT(*)+1 and inserts the row. Count and insert
// share a transaction so two creates can't both read the same count.
func (db *DB) Create(ctx context.Context, item *model.Item) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning create: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return fmt.Errorf("sqlite: counting items: %w", err)
	}
	item.ID = count + 1

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Description,
		item.CreatedAt.String(),
		nullableTimestamp(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing create: %w", err)
	}
	return nil
}

// Update patches the first row (lowest seq) carrying id.
// A nil patch field binds as NULL and COALESCE keeps the stored value.
func (db *DB) Update(ctx context.Context, id int, patch model.ItemPatch) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE items
		 SET name        = COALESCE(?, name),
		     description = COALESCE(?, description),
		     updated_at  = ?
		 WHERE seq = (SELECT seq FROM items WHERE id = ? ORDER BY seq LIMIT 1)`,
		nullableString(patch.Name),
		nullableString(patch.Description),
		patch.UpdatedAt.String(),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating item %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("item", id)
	}
	return nil
}

// Delete removes every row with id. Zero rows affected is not an error.
func (db *DB) Delete(ctx context.Context, id int) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting item %d: %w", id, err)
	}
	return nil
}

func scanItem(rows *sql.Rows) (model.Item, error) {
	var (
		it        model.Item
		createdAt string
		updatedAt sql.NullString
	)
	if err := rows.Scan(&it.ID, &it.Name, &it.Description, &createdAt, &updatedAt); err != nil {
		return model.Item{}, fmt.Errorf("sqlite: scanning item row: %w", err)
	}

	ts, err := model.ParseTimestamp(createdAt)
	if err != nil {
		return model.Item{}, fmt.Errorf("sqlite: item %d created_at: %w", it.ID, err)
	}
	it.CreatedAt = ts

	if updatedAt.Valid {
		ts, err := model.ParseTimestamp(updatedAt.String)
		if err != nil {
			return model.Item{}, fmt.Errorf("sqlite: item %d updated_at: %w", it.ID, err)
		}
		it.UpdatedAt = &ts
	}
	return it, nil
}

func nullableTimestamp(ts *model.Timestamp) sql.NullString {
	if ts == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: ts.String(), Valid: true}
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

package database

import (
	"context"
	"fmt"
)

// Repository provides persistence for conversion history.
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Record inserts one conversion attempt.
func (r *Repository) Record(ctx context.Context, c *Conversion) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO conversions (
			id, operation, input_name, output_name, input_size,
			output_size, success, message, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		c.ID,
		c.Operation,
		c.InputName,
		c.OutputName,
		c.InputSize,
		c.OutputSize,
		c.Success,
		c.Message,
		c.DurationMS,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}
	return nil
}

// Recent returns the most recent conversions, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]*Conversion, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, operation, input_name, output_name, input_size,
			   output_size, success, message, duration_ms, created_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var out []*Conversion
	for rows.Next() {
		c := &Conversion{}
		if err := rows.Scan(
			&c.ID,
			&c.Operation,
			&c.InputName,
			&c.OutputName,
			&c.InputSize,
			&c.OutputSize,
			&c.Success,
			&c.Message,
			&c.DurationMS,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetStats returns aggregate conversion statistics.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := r.db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE success),
			COALESCE(SUM(input_size), 0),
			COALESCE(SUM(output_size) FILTER (WHERE success), 0)
		FROM conversions
	`).Scan(
		&stats.TotalConversions,
		&stats.SuccessfulConversions,
		&stats.BytesIn,
		&stats.BytesOut,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

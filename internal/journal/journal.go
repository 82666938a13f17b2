// Package journal records completed moves in SQLite so they can be reviewed later.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wizzomafizzo/sortdl/internal/database"
)

// Record is one journaled move.
type Record struct {
	MovedAt     time.Time
	ScanID      string
	Source      string
	Destination string
	Displaced   string
	Category    string
	Outcome     string
	ID          int64
	Size        int64
}

// Journal stores move records.
type Journal struct {
	db *sql.DB
}

// New wraps an open database whose migrations have run.
func New(manager *database.Manager) *Journal {
	return &Journal{db: manager.DB()}
}

// Record inserts rec. A zero MovedAt is stored as the current time.
func (j *Journal) Record(ctx context.Context, rec Record) error {
	movedAt := rec.MovedAt
	if movedAt.IsZero() {
		movedAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO moves (scan_id, source, destination, displaced, category, outcome, size, moved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ScanID, rec.Source, rec.Destination, rec.Displaced,
		rec.Category, rec.Outcome, rec.Size, movedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record move of %s: %w", rec.Source, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, scan_id, source, destination, displaced, category, outcome, size, moved_at
		FROM moves
		ORDER BY moved_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		var movedAt int64
		if err := rows.Scan(&rec.ID, &rec.ScanID, &rec.Source, &rec.Destination, &rec.Displaced,
			&rec.Category, &rec.Outcome, &rec.Size, &movedAt); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		rec.MovedAt = time.Unix(movedAt, 0)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moves: %w", err)
	}

	return records, nil
}

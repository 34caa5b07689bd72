package database

import (
	"context"
	"database/sql"
	"fmt"
)

const createEvents = "CREATE TABLE IF NOT EXISTS events (" +
	"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
	"`date` VARCHAR(10) NOT NULL, " +
	"title VARCHAR(255) NOT NULL, " +
	"description TEXT, " +
	"openTime VARCHAR(5), " +
	"startTime VARCHAR(5), " +
	"ticketPrice VARCHAR(64), " +
	"imageUrl TEXT, " +
	"INDEX idx_events_date (`date`)" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

// column is an optional column added after the first schema shipped.
type column struct {
	Name string
	DDL  string
}

// additiveColumns are applied in order, each only when absent.
var additiveColumns = []column{
	{Name: "doorPrice", DDL: "ALTER TABLE events ADD COLUMN doorPrice VARCHAR(64)"},
	{Name: "artists", DDL: "ALTER TABLE events ADD COLUMN artists TEXT"},
}

// Migrate creates the events table and adds any missing optional columns.
// Running it against an up-to-date schema changes nothing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createEvents); err != nil {
		return fmt.Errorf("create events: %w", err)
	}
	for _, col := range additiveColumns {
		ok, err := columnExists(ctx, db, "events", col.Name)
		if err != nil {
			return fmt.Errorf("inspect events.%s: %w", col.Name, err)
		}
		if ok {
			continue
		}
		if _, err := db.ExecContext(ctx, col.DDL); err != nil {
			return fmt.Errorf("add events.%s: %w", col.Name, err)
		}
	}
	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, name string) (bool, error) {
	const q = `SELECT COUNT(*) FROM information_schema.COLUMNS
	           WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`
	var n int
	if err := db.QueryRowContext(ctx, q, table, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

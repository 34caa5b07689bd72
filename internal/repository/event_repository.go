package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/livehouse/internal/model"
)

// Optional columns are stored as empty strings, but rows written before a
// column existed hold NULL, so every read goes through COALESCE.
const eventColumns = "id, `date`, title, COALESCE(artists, ''), COALESCE(description, ''), " +
	"COALESCE(openTime, ''), COALESCE(startTime, ''), COALESCE(ticketPrice, ''), " +
	"COALESCE(doorPrice, ''), COALESCE(imageUrl, '')"

// EventRepo encapsulates all queries against the events table.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (model.Event, error) {
	var e model.Event
	err := s.Scan(&e.ID, &e.Date, &e.Title, &e.Artists, &e.Description,
		&e.OpenTime, &e.StartTime, &e.TicketPrice, &e.DoorPrice, &e.ImageURL)
	return e, err
}

// List returns every event ordered by date.  Events on the same date keep
// insertion order.  The result is never nil.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	q := "SELECT " + eventColumns + " FROM events ORDER BY `date` ASC, id ASC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one event.  It returns ErrEventNotFound if no row matches.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	q := "SELECT " + eventColumns + " FROM events WHERE id = ?"
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// Next returns the earliest event dated on or after fromDate (YYYY-MM-DD).
func (r *EventRepo) Next(ctx context.Context, fromDate string) (model.Event, error) {
	q := "SELECT " + eventColumns + " FROM events WHERE `date` >= ? ORDER BY `date` ASC, id ASC LIMIT 1"
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, fromDate))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// Create inserts the event and returns it with the generated id.
func (r *EventRepo) Create(ctx context.Context, in model.EventInput) (model.Event, error) {
	const q = "INSERT INTO events (`date`, title, artists, description, openTime, startTime, ticketPrice, doorPrice, imageUrl) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, in.Date, in.Title, in.Artists, in.Description,
		in.OpenTime, in.StartTime, in.TicketPrice, in.DoorPrice, in.ImageURL)
	if err != nil {
		return model.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	return in.ToEvent(uint64(id)), nil
}

// Update overwrites every column of the row.  It returns the number of rows
// affected; zero means the id does not exist and is not an error.
func (r *EventRepo) Update(ctx context.Context, id uint64, in model.EventInput) (int64, error) {
	const q = "UPDATE events SET `date` = ?, title = ?, artists = ?, description = ?, openTime = ?, " +
		"startTime = ?, ticketPrice = ?, doorPrice = ?, imageUrl = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, in.Date, in.Title, in.Artists, in.Description,
		in.OpenTime, in.StartTime, in.TicketPrice, in.DoorPrice, in.ImageURL, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the row and returns the number of rows affected.
func (r *EventRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of stored events.
func (r *EventRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	return n, err
}

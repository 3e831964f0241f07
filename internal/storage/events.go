package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/timetable/internal/model"
)

// LogEvent appends an entry to the audit log.
func (s *SQLiteStorage) LogEvent(ctx context.Context, event model.Event) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (user_handle, kind, status, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, event.UserHandle, event.Kind, event.Status, event.Message, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// GetEvents returns the user's most recent events, newest first.
func (s *SQLiteStorage) GetEvents(ctx context.Context, userHandle string, limit int) ([]model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userHandle, "userHandle"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_handle, kind, status, message, created_at
		FROM events
		WHERE user_handle = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userHandle, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.UserHandle, &e.Kind, &e.Status, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

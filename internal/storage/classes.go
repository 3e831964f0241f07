package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/timetable/internal/model"
)

// encodeDays renders day codes in the curly-brace array form used by the
// days_of_week column, e.g. {Sun,Tue}.
func encodeDays(days []string) string {
	return "{" + strings.Join(days, ",") + "}"
}

// decodeDays splits a stored days_of_week value back into its tokens.
// Tokens are returned as stored; callers normalize them.
func decodeDays(stored string) []string {
	inner := strings.TrimSpace(stored)
	inner = strings.TrimPrefix(inner, "{")
	inner = strings.TrimSuffix(inner, "}")
	if strings.TrimSpace(inner) == "" {
		return nil
	}

	parts := strings.Split(inner, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			days = append(days, p)
		}
	}
	return days
}

// GetClasses returns the user's active classes, oldest first.
func (s *SQLiteStorage) GetClasses(ctx context.Context, userHandle string) ([]model.ClassRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userHandle, "userHandle"); err != nil {
		return nil, err
	}
	return s.getClassesTx(ctx, s.db, userHandle)
}

func (s *SQLiteStorage) getClassesTx(ctx context.Context, q queryable, userHandle string) ([]model.ClassRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_handle, class_code, class_name, location,
		       days_of_week, start_time, end_time, active, created_at
		FROM classes
		WHERE user_handle = ? AND active = 1
		ORDER BY created_at, rowid
	`, userHandle)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var classes []model.ClassRecord
	for rows.Next() {
		var (
			rec  model.ClassRecord
			days string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.UserHandle,
			&rec.ClassCode,
			&rec.ClassName,
			&rec.Location,
			&days,
			&rec.StartTime,
			&rec.EndTime,
			&rec.Active,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		rec.DaysOfWeek = decodeDays(days)
		classes = append(classes, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classes: %w", err)
	}
	return classes, nil
}

func (s *SQLiteStorage) insertClassesTx(ctx context.Context, tx *sql.Tx, userHandle string, slots []model.Slot) ([]model.ClassRecord, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classes (id, user_handle, class_code, class_name, location,
		                     days_of_week, start_time, end_time, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	records := make([]model.ClassRecord, 0, len(slots))
	for _, slot := range slots {
		rec := slot.Record()
		rec.ID = uuid.NewString()
		rec.UserHandle = userHandle
		rec.ClassCode = strings.TrimSpace(rec.ClassCode)
		rec.CreatedAt = now

		if _, err := stmt.ExecContext(ctx,
			rec.ID,
			rec.UserHandle,
			rec.ClassCode,
			rec.ClassName,
			rec.Location,
			encodeDays(rec.DaysOfWeek),
			rec.StartTime,
			rec.EndTime,
			rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to insert class %s: %w", rec.ClassCode, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

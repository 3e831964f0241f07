package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/timetable/internal/common"
	"github.com/Veraticus/timetable/internal/model"
)

// MaxOCRTextLength caps the raw model output kept with an upload.
const MaxOCRTextLength = 10000

func truncateText(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxOCRTextLength {
		return s
	}
	return string(runes[:MaxOCRTextLength])
}

func encodePayload(payload *model.ExtractionPayload) (sql.NullString, error) {
	if payload == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal extraction: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// CreateUpload registers a new upload. ID, status and timestamps are filled
// in when empty.
func (s *SQLiteStorage) CreateUpload(ctx context.Context, upload *model.Upload) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUpload(upload); err != nil {
		return err
	}

	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	if upload.Status == "" {
		upload.Status = model.UploadNew
	}
	now := time.Now().UTC()
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = now
	}
	upload.UpdatedAt = upload.CreatedAt
	upload.OCRText = truncateText(upload.OCRText)

	parsed, err := encodePayload(upload.Payload)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedule_uploads (id, user_handle, file_path, mime_type, ocr_text,
		                              parsed_json, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, upload.ID, upload.UserHandle, upload.FilePath, upload.MIMEType, upload.OCRText,
		parsed, string(upload.Status), upload.Error, upload.CreatedAt, upload.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}
	return nil
}

const uploadColumns = `id, user_handle, file_path, mime_type, ocr_text,
	parsed_json, status, error, created_at, updated_at`

func scanUpload(row *sql.Row) (*model.Upload, error) {
	var (
		upload model.Upload
		parsed sql.NullString
		status string
	)
	err := row.Scan(
		&upload.ID,
		&upload.UserHandle,
		&upload.FilePath,
		&upload.MIMEType,
		&upload.OCRText,
		&parsed,
		&status,
		&upload.Error,
		&upload.CreatedAt,
		&upload.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan upload: %w", err)
	}

	upload.Status = model.UploadStatus(status)
	if parsed.Valid && parsed.String != "" {
		var payload model.ExtractionPayload
		if err := json.Unmarshal([]byte(parsed.String), &payload); err != nil {
			return nil, fmt.Errorf("failed to decode stored extraction for upload %s: %w", upload.ID, err)
		}
		upload.Payload = &payload
	}
	return &upload, nil
}

// GetUpload retrieves an upload by ID.
func (s *SQLiteStorage) GetUpload(ctx context.Context, id string) (*model.Upload, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getUploadTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getUploadTx(ctx context.Context, q queryable, id string) (*model.Upload, error) {
	row := q.QueryRowContext(ctx, `SELECT `+uploadColumns+` FROM schedule_uploads WHERE id = ?`, id)
	return scanUpload(row)
}

// GetLatestUpload returns the user's newest upload with the given status.
func (s *SQLiteStorage) GetLatestUpload(ctx context.Context, userHandle string, status model.UploadStatus) (*model.Upload, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userHandle, "userHandle"); err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+uploadColumns+`
		FROM schedule_uploads
		WHERE user_handle = ? AND status = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, userHandle, string(status))
	return scanUpload(row)
}

// SaveExtraction records the model output for an upload and moves it to
// the given status.
func (s *SQLiteStorage) SaveExtraction(ctx context.Context, id, text string, payload *model.ExtractionPayload, status model.UploadStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateStatus(status); err != nil {
		return err
	}

	parsed, err := encodePayload(payload)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE schedule_uploads
		SET ocr_text = ?, parsed_json = ?, status = ?, error = ''
		WHERE id = ?
	`, truncateText(text), parsed, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}
	return requireRow(result)
}

// FailUpload marks an upload as failed, keeping whatever text the model
// produced.
func (s *SQLiteStorage) FailUpload(ctx context.Context, id, text, reason string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE schedule_uploads
		SET ocr_text = ?, parsed_json = NULL, status = ?, error = ?
		WHERE id = ?
	`, truncateText(text), string(model.UploadError), reason, id)
	if err != nil {
		return fmt.Errorf("failed to mark upload failed: %w", err)
	}
	return requireRow(result)
}

// ApplyUpload inserts the slots as classes and marks the upload applied in a
// single transaction. Only parsed uploads owned by the user can be applied.
func (s *SQLiteStorage) ApplyUpload(ctx context.Context, id, userHandle string, slots []model.Slot) ([]model.ClassRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateString(userHandle, "userHandle"); err != nil {
		return nil, err
	}
	if err := validateSlots(slots); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upload, err := s.getUploadTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if upload.UserHandle != userHandle {
		return nil, fmt.Errorf("upload %s: %w", id, common.ErrNotFound)
	}
	if upload.Status != model.UploadParsed {
		return nil, fmt.Errorf("%w: upload %s is %s, want %s", ErrInvalidStatus, id, upload.Status, model.UploadParsed)
	}

	var records []model.ClassRecord
	if len(slots) > 0 {
		records, err = s.insertClassesTx(ctx, tx, userHandle, slots)
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE schedule_uploads SET status = ? WHERE id = ?`,
		string(model.UploadApplied), id); err != nil {
		return nil, fmt.Errorf("failed to mark upload applied: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit apply: %w", err)
	}
	return records, nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

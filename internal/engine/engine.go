// Package engine runs the schedule pipeline: register a timetable source,
// extract it, then reconcile the result into the user's stored classes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/timetable/internal/common"
	"github.com/Veraticus/timetable/internal/llm"
	"github.com/Veraticus/timetable/internal/model"
	"github.com/Veraticus/timetable/internal/schedule"
	"github.com/Veraticus/timetable/internal/service"
)

// Event kinds written to the audit log.
const (
	EventParse = "schedule_parse"
	EventApply = "schedule_apply"
)

// Event statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// PreviewSize is how many extracted classes a ParseReport carries.
const PreviewSize = 6

var supportedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

var extensionTypes = map[string]string{
	".heic": "image/heic",
	".heif": "image/heif",
	".webp": "image/webp",
}

// Engine orchestrates uploads, extraction and reconciliation.
type Engine struct {
	storage   service.Storage
	extractor service.Extractor
	readFile  func(string) ([]byte, error)
}

// ParseReport summarizes one extraction.
type ParseReport struct {
	Upload  *model.Upload
	Preview []model.RawSlotItem
	Slots   []model.Slot
	Classes int
}

// ApplyReport summarizes one reconciliation.
type ApplyReport struct {
	Upload   *model.Upload
	Inserted []model.ClassRecord
	Result   model.ReconcileResult
	DryRun   bool
}

// New creates an engine. extractor may be nil when only offline operations
// (import, apply, sessions) are used.
func New(storage service.Storage, extractor service.Extractor) *Engine {
	return &Engine{
		storage:   storage,
		extractor: extractor,
		readFile:  os.ReadFile,
	}
}

// DetectMIMEType guesses an image type from the file extension.
func DetectMIMEType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := extensionTypes[ext]
	if !ok {
		mimeType = mime.TypeByExtension(ext)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if !supportedImageTypes[mimeType] {
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedImage, filepath.Base(path))
	}
	return mimeType, nil
}

// RegisterUpload records an image as a new upload for the user.
func (e *Engine) RegisterUpload(ctx context.Context, userHandle, path string) (*model.Upload, error) {
	mimeType, err := DetectMIMEType(path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", common.ErrUnsupportedImage, path)
	}

	upload := &model.Upload{
		UserHandle: userHandle,
		FilePath:   abs,
		MIMEType:   mimeType,
		Status:     model.UploadNew,
	}
	if err := e.storage.CreateUpload(ctx, upload); err != nil {
		return nil, fmt.Errorf("failed to register upload: %w", err)
	}

	slog.Info("Registered upload", "id", upload.ID, "path", abs, "mime_type", mimeType)
	return upload, nil
}

// ParseUpload extracts the timetable of a registered image. An answer
// without JSON marks the upload as failed and is reported, not returned as
// an error; errors are reserved for failures to reach the model or the store.
func (e *Engine) ParseUpload(ctx context.Context, upload *model.Upload) (*ParseReport, error) {
	if e.extractor == nil {
		return nil, fmt.Errorf("%w: no extraction model configured", common.ErrMissingConfig)
	}

	data, err := e.readFile(upload.FilePath)
	if err != nil {
		return nil, e.fail(ctx, upload, "", fmt.Errorf("failed to read image: %w", err))
	}

	extraction, err := e.extractor.Extract(ctx, model.Image{Data: data, MIMEType: upload.MIMEType})
	if err != nil {
		return nil, e.fail(ctx, upload, "", err)
	}

	if !extraction.Parsed() {
		if err := e.storage.FailUpload(ctx, upload.ID, extraction.RawText, "no schedule data found"); err != nil {
			return nil, fmt.Errorf("failed to update upload: %w", err)
		}
		e.logEvent(ctx, upload.UserHandle, EventParse, StatusFail, "no json")
		upload.Status = model.UploadError
		upload.OCRText = extraction.RawText
		upload.Error = "no schedule data found"
		return &ParseReport{Upload: upload}, nil
	}

	return e.recordParsed(ctx, upload, extraction)
}

// ParseLatest extracts the user's newest unparsed upload.
func (e *Engine) ParseLatest(ctx context.Context, userHandle string) (*ParseReport, error) {
	upload, err := e.storage.GetLatestUpload(ctx, userHandle, model.UploadNew)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError("No new uploads to parse", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find upload: %w", err)
	}
	return e.ParseUpload(ctx, upload)
}

// ImportPayload registers an already extracted document, such as a saved
// model answer, as a parsed upload. No model is called.
func (e *Engine) ImportPayload(ctx context.Context, userHandle, source string, data []byte) (*ParseReport, error) {
	payload, err := llm.ParseExtraction(string(data))
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("%s does not contain a schedule document", filepath.Base(source)), err)
	}

	upload := &model.Upload{
		UserHandle: userHandle,
		FilePath:   source,
		MIMEType:   "application/json",
		Status:     model.UploadNew,
	}
	if err := e.storage.CreateUpload(ctx, upload); err != nil {
		return nil, fmt.Errorf("failed to register import: %w", err)
	}

	return e.recordParsed(ctx, upload, model.Extraction{Payload: payload, RawText: string(data)})
}

func (e *Engine) recordParsed(ctx context.Context, upload *model.Upload, extraction model.Extraction) (*ParseReport, error) {
	// The extractor may hand the same payload to later calls.
	payload := &model.ExtractionPayload{Classes: extraction.Payload.Classes, Normalized: extraction.Payload.Normalized}
	slots := schedule.NormalizeItems(payload.Items())

	payload.Normalized = make([]model.RawSlotItem, 0, len(slots))
	for _, s := range slots {
		payload.Normalized = append(payload.Normalized, s.Row())
	}

	if err := e.storage.SaveExtraction(ctx, upload.ID, extraction.RawText, payload, model.UploadParsed); err != nil {
		return nil, fmt.Errorf("failed to save extraction: %w", err)
	}

	upload.Status = model.UploadParsed
	upload.Payload = payload
	upload.OCRText = extraction.RawText

	classes := payload.Classes
	if len(classes) == 0 {
		classes = payload.Normalized
	}
	preview := classes
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}

	e.logEvent(ctx, upload.UserHandle, EventParse, StatusSuccess, fmt.Sprintf("parsed=%d", len(classes)))
	common.LogInfo("Parsed schedule", common.Fields{
		"upload":  upload.ID,
		"classes": len(classes),
		"slots":   len(slots),
	})

	return &ParseReport{
		Upload:  upload,
		Classes: len(classes),
		Slots:   slots,
		Preview: preview,
	}, nil
}

func (e *Engine) fail(ctx context.Context, upload *model.Upload, text string, cause error) error {
	if err := e.storage.FailUpload(ctx, upload.ID, text, cause.Error()); err != nil {
		common.LogError(err, "Failed to mark upload failed", common.Fields{"upload": upload.ID})
	}
	upload.Status = model.UploadError
	upload.Error = cause.Error()
	e.logEvent(ctx, upload.UserHandle, EventParse, StatusFail, cause.Error())
	return cause
}

// ApplyLatest reconciles the user's newest parsed upload into the stored
// classes. With dryRun nothing is written.
func (e *Engine) ApplyLatest(ctx context.Context, userHandle string, dryRun bool) (*ApplyReport, error) {
	upload, err := e.storage.GetLatestUpload(ctx, userHandle, model.UploadParsed)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrNothingToApply
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find parsed upload: %w", err)
	}

	existing, err := e.storage.GetClasses(ctx, userHandle)
	if err != nil {
		return nil, fmt.Errorf("failed to load classes: %w", err)
	}

	result := schedule.Plan(upload.Payload.Items(), existing)
	report := &ApplyReport{Upload: upload, Result: result, DryRun: dryRun}
	if dryRun {
		return report, nil
	}

	inserted, err := e.storage.ApplyUpload(ctx, upload.ID, userHandle, result.ToInsert)
	if err != nil {
		e.logEvent(ctx, userHandle, EventApply, StatusFail, err.Error())
		return nil, fmt.Errorf("failed to apply upload: %w", err)
	}
	upload.Status = model.UploadApplied
	report.Inserted = inserted

	e.logEvent(ctx, userHandle, EventApply, StatusSuccess,
		fmt.Sprintf("inserted=%d skipped=%d", result.Inserted, result.Skipped))
	common.LogInfo("Applied schedule", common.Fields{
		"upload":   upload.ID,
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
	})

	return report, nil
}

// Classes returns the user's stored classes.
func (e *Engine) Classes(ctx context.Context, userHandle string) ([]model.ClassRecord, error) {
	classes, err := e.storage.GetClasses(ctx, userHandle)
	if err != nil {
		return nil, fmt.Errorf("failed to load classes: %w", err)
	}
	return classes, nil
}

// SessionsOn returns the user's class sessions on date, ordered by start.
func (e *Engine) SessionsOn(ctx context.Context, userHandle string, date time.Time) ([]model.Session, error) {
	classes, err := e.Classes(ctx, userHandle)
	if err != nil {
		return nil, err
	}
	return schedule.SessionsOn(classes, date), nil
}

func (e *Engine) logEvent(ctx context.Context, userHandle, kind, status, message string) {
	err := e.storage.LogEvent(ctx, model.Event{
		UserHandle: userHandle,
		Kind:       kind,
		Status:     status,
		Message:    message,
	})
	if err != nil {
		common.LogError(err, "Failed to log event", common.Fields{"kind": kind, "user": userHandle})
	}
}

// History returns the user's most recent pipeline events, newest first.
func (e *Engine) History(ctx context.Context, userHandle string, limit int) ([]model.Event, error) {
	events, err := e.storage.GetEvents(ctx, userHandle, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return events, nil
}

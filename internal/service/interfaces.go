// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/timetable/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Class operations
	GetClasses(ctx context.Context, userHandle string) ([]model.ClassRecord, error)

	// Upload operations
	CreateUpload(ctx context.Context, upload *model.Upload) error
	GetUpload(ctx context.Context, id string) (*model.Upload, error)
	GetLatestUpload(ctx context.Context, userHandle string, status model.UploadStatus) (*model.Upload, error)
	SaveExtraction(ctx context.Context, id, text string, payload *model.ExtractionPayload, status model.UploadStatus) error
	FailUpload(ctx context.Context, id, text, reason string) error
	ApplyUpload(ctx context.Context, id, userHandle string, slots []model.Slot) ([]model.ClassRecord, error)

	// Audit log
	LogEvent(ctx context.Context, event model.Event) error
	GetEvents(ctx context.Context, userHandle string, limit int) ([]model.Event, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Extractor turns a timetable image into a structured extraction.
type Extractor interface {
	Extract(ctx context.Context, image model.Image) (model.Extraction, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

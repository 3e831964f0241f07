// Package storage provides the data persistence layer for the timetable application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/timetable/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidStatus = errors.New("invalid upload status")
	ErrInvalidSlot   = errors.New("invalid slot")
	ErrInvalidEvent  = errors.New("invalid event")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSlots rejects slots that could never produce a canonical key.
func validateSlots(slots []model.Slot) error {
	for i, slot := range slots {
		if !slot.Complete() {
			return fmt.Errorf("slot at index %d: %w: %q %q-%q %s",
				i, ErrInvalidSlot, slot.ClassCode, slot.Start, slot.End, slot.Days)
		}
	}
	return nil
}

func validateUpload(upload *model.Upload) error {
	if upload == nil {
		return fmt.Errorf("%w: upload", ErrNilParameter)
	}
	if err := validateString(upload.UserHandle, "userHandle"); err != nil {
		return err
	}
	if err := validateString(upload.FilePath, "filePath"); err != nil {
		return err
	}
	if upload.Status != "" && !upload.Status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, upload.Status)
	}
	return nil
}

func validateStatus(status model.UploadStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return nil
}

func validateEvent(event model.Event) error {
	if strings.TrimSpace(event.UserHandle) == "" {
		return fmt.Errorf("%w: missing user handle", ErrInvalidEvent)
	}
	if strings.TrimSpace(event.Kind) == "" {
		return fmt.Errorf("%w: missing kind", ErrInvalidEvent)
	}
	if strings.TrimSpace(event.Status) == "" {
		return fmt.Errorf("%w: missing status", ErrInvalidEvent)
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/timetable/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "test"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: " \t\n", wantErr: true},
		{name: "arabic text", str: "الأحد"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateSlots(t *testing.T) {
	complete := model.Slot{ClassCode: "CS101", Start: "08:00", End: "09:30", Days: model.NewDaySet(model.Sunday)}

	tests := []struct {
		name    string
		slots   []model.Slot
		wantErr bool
	}{
		{name: "nil slots", slots: nil},
		{name: "complete slot", slots: []model.Slot{complete}},
		{
			name: "missing code",
			slots: []model.Slot{complete, {
				ClassCode: "  ", Start: "08:00", End: "09:00", Days: model.NewDaySet(model.Monday),
			}},
			wantErr: true,
		},
		{
			name:    "missing days",
			slots:   []model.Slot{{ClassCode: "CS101", Start: "08:00", End: "09:00"}},
			wantErr: true,
		},
		{
			name:    "missing end",
			slots:   []model.Slot{{ClassCode: "CS101", Start: "08:00", Days: model.NewDaySet(model.Monday)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlots(tt.slots)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSlots() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSlot) {
				t.Errorf("validateSlots() error = %v, want ErrInvalidSlot", err)
			}
		})
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		upload  *model.Upload
		wantIs  error
		name    string
		wantErr bool
	}{
		{
			name:   "valid upload",
			upload: &model.Upload{UserHandle: "u1", FilePath: "/tmp/a.png"},
		},
		{
			name:    "nil upload",
			upload:  nil,
			wantErr: true,
			wantIs:  ErrNilParameter,
		},
		{
			name:    "missing user",
			upload:  &model.Upload{FilePath: "/tmp/a.png"},
			wantErr: true,
			wantIs:  ErrEmptyString,
		},
		{
			name:    "missing path",
			upload:  &model.Upload{UserHandle: "u1"},
			wantErr: true,
			wantIs:  ErrEmptyString,
		},
		{
			name:    "unknown status",
			upload:  &model.Upload{UserHandle: "u1", FilePath: "/tmp/a.png", Status: "done"},
			wantErr: true,
			wantIs:  ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUpload(tt.upload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateUpload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("validateUpload() error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   model.Event
		wantErr bool
	}{
		{name: "valid", event: model.Event{UserHandle: "u1", Kind: "parse", Status: "ok"}},
		{name: "no user", event: model.Event{Kind: "parse", Status: "ok"}, wantErr: true},
		{name: "no kind", event: model.Event{UserHandle: "u1", Status: "ok"}, wantErr: true},
		{name: "no status", event: model.Event{UserHandle: "u1", Kind: "parse"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEvent(tt.event)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

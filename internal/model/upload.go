package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// UploadStatus tracks a timetable image through extraction and apply.
type UploadStatus string

// Upload lifecycle: new -> parsed | error -> applied.
const (
	UploadNew     UploadStatus = "new"
	UploadParsed  UploadStatus = "parsed"
	UploadError   UploadStatus = "error"
	UploadApplied UploadStatus = "applied"
)

// Valid reports whether s is a known status.
func (s UploadStatus) Valid() bool {
	switch s {
	case UploadNew, UploadParsed, UploadError, UploadApplied:
		return true
	}
	return false
}

// Upload is a timetable source (an image or an extraction document) and what
// was extracted from it.
type Upload struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Payload    *ExtractionPayload
	ID         string
	UserHandle string
	FilePath   string
	MIMEType   string
	OCRText    string
	Error      string
	Status     UploadStatus
}

// ExtractionPayload is the structured document returned by the extraction
// model. Either list may be absent.
type ExtractionPayload struct {
	Classes    []RawSlotItem `json:"classes"`
	Normalized []RawSlotItem `json:"normalized,omitempty"`
}

// UnmarshalJSON also accepts a bare array of rows.
func (p *ExtractionPayload) UnmarshalJSON(data []byte) error {
	*p = ExtractionPayload{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.Classes)
	}

	type plain ExtractionPayload
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = ExtractionPayload(v)
	return nil
}

// Items returns the rows to normalize, preferring an already normalized list.
func (p *ExtractionPayload) Items() []RawSlotItem {
	if p == nil {
		return nil
	}
	if len(p.Normalized) > 0 {
		return p.Normalized
	}
	return p.Classes
}

// Event is an audit entry for a pipeline step.
type Event struct {
	CreatedAt  time.Time
	UserHandle string
	Kind       string
	Status     string
	Message    string
	ID         int64
}

// Image is a timetable picture handed to the extraction model.
type Image struct {
	Data     []byte
	MIMEType string
}

// Extraction is what the model returned for one image: the raw text, always,
// and the decoded document when the text held one.
type Extraction struct {
	Payload *ExtractionPayload
	RawText string
}

// Parsed reports whether a structured document was recovered.
func (e Extraction) Parsed() bool {
	return e.Payload != nil
}

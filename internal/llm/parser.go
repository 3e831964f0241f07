package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Veraticus/timetable/internal/model"
)

// ErrNoJSON is returned when a model answer holds no usable JSON document.
var ErrNoJSON = errors.New("no JSON document in model output")

// cleanMarkdownWrapper removes a surrounding ```json ... ``` fence.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		// Drop the language tag line
		if tag := strings.TrimSpace(content[:nl]); !strings.ContainsAny(tag, "{[") {
			content = content[nl+1:]
		}
	}
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// ParseExtraction decodes the schedule document in a model answer. The whole
// answer is tried first (a bare array counts as the class list), then the
// text between the first '{' and the last '}'.
func ParseExtraction(text string) (*model.ExtractionPayload, error) {
	content := cleanMarkdownWrapper(text)
	if content == "" {
		return nil, ErrNoJSON
	}

	if payload, ok := decodePayload(content); ok {
		return payload, nil
	}

	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start >= 0 && end > start {
		if payload, ok := decodePayload(content[start : end+1]); ok {
			return payload, nil
		}
	}

	return nil, ErrNoJSON
}

func decodePayload(s string) (*model.ExtractionPayload, bool) {
	data := bytes.TrimSpace([]byte(s))
	if len(data) == 0 || (data[0] != '{' && data[0] != '[') {
		return nil, false
	}

	var payload model.ExtractionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	return &payload, true
}

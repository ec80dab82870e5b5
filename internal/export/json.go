// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/AnirudhGatech/IECS-UI/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to JSON. The output always contains every
// entry; Options only control the metadata block.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonMeta struct {
	Title     string    `json:"title"`
	Assistant string    `json:"assistant"`
	Endpoint  string    `json:"endpoint,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Exported  time.Time `json:"exported_at"`
}

type jsonDocument struct {
	SessionID string        `json:"session_id"`
	Meta      *jsonMeta     `json:"meta,omitempty"`
	Entries   []model.Entry `json:"entries"`
}

// Export converts a transcript document to indented JSON.
func (e *JSONExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	out := jsonDocument{
		SessionID: doc.SessionID,
		Entries:   doc.Entries,
	}
	if e.options.IncludeMetadata {
		out.Meta = &jsonMeta{
			Title:     doc.Title,
			Assistant: doc.AssistantName,
			Endpoint:  doc.Endpoint,
			CreatedAt: doc.CreatedAt,
			Exported:  time.Now(),
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

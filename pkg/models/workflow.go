// Package models defines the domain records for the workflow compiler.
package models

import (
	"time"
)

// DefaultColor is the fallback hex color applied when a workflow submission
// leaves the color field blank.
const DefaultColor = "#3972F6"

// BlockType enumerates the supported block kinds.
type BlockType string

const (
	BlockTypeStarter BlockType = "starter"
	BlockTypeAgent   BlockType = "agent"
	BlockTypeAPI     BlockType = "api"
	BlockTypeWebhook BlockType = "webhook"
	BlockTypeAction  BlockType = "action"
)

// Document is a parsed key-value configuration document. Values may nest
// further documents, arrays, strings, numbers, booleans and nulls.
type Document map[string]any

// EmptyDocument returns a fresh empty document.
func EmptyDocument() Document {
	return Document{}
}

// Timestamp wraps time.Time so every serialization of a submission renders
// the same millisecond-precision UTC instant.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to millisecond precision in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

// ISO renders the timestamp in the fixed 2006-01-02T15:04:05.000Z form.
func (t Timestamp) ISO() string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// MarshalJSON renders the timestamp as its ISO string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.ISO() + `"`), nil
}

// UnmarshalJSON accepts RFC 3339 timestamps.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var inner time.Time
	if err := inner.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = NewTimestamp(inner)
	return nil
}

// Workflow is the canonical workflow row assembled from a submission.
// It maps 1:1 onto public.workflow_rows.
type Workflow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WorkspaceID *string   `json:"workspace_id"`
	FolderID    *string   `json:"folder_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	Variables   Document  `json:"variables"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	LastSynced  Timestamp `json:"last_synced"`
	State       Document  `json:"state"`
}

// Block is one canonical block row. It maps 1:1 onto
// public.workflow_blocks_rows and keeps the order it was submitted in.
type Block struct {
	ID                string    `json:"id"`
	WorkflowID        string    `json:"workflow_id"`
	Type              BlockType `json:"type"`
	Name              string    `json:"name"`
	PositionX         float64   `json:"position_x"`
	PositionY         float64   `json:"position_y"`
	Enabled           bool      `json:"enabled"`
	HorizontalHandles bool      `json:"horizontal_handles"`
	IsWide            bool      `json:"is_wide"`
	AdvancedMode      bool      `json:"advanced_mode"`
	Height            float64   `json:"height"`
	SubBlocks         Document  `json:"sub_blocks"`
	Outputs           Document  `json:"outputs"`
	Data              Document  `json:"data"`
	ParentID          *string   `json:"parent_id"`
	Extent            *string   `json:"extent"`
	CreatedAt         Timestamp `json:"created_at"`
	UpdatedAt         Timestamp `json:"updated_at"`
}

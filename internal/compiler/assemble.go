package compiler

import (
	"fmt"
	"time"

	"agent-forge/backend/pkg/models"
)

// FatalError reports a structurally required field that was entirely absent.
// Assembly produces no records when this is returned.
type FatalError struct {
	Field   string
	OwnerID string
}

func (e *FatalError) Error() string {
	if e.OwnerID == "" {
		return fmt.Sprintf("missing required field %q", e.Field)
	}
	return fmt.Sprintf("missing required field %q on %q", e.Field, e.OwnerID)
}

// Result is a fully assembled submission: one workflow, its ordered blocks,
// and any warnings accumulated along the way. Records are not mutated after
// assembly.
type Result struct {
	Workflow *models.Workflow
	Blocks   []*models.Block
	Warnings []models.Warning
}

// Assemble builds the canonical record pair for one submission, stamping
// every timestamp with the current instant.
func Assemble(sub models.RawSubmission) (*Result, error) {
	return AssembleAt(sub, time.Now())
}

// AssembleAt is Assemble with an explicit submission instant. The instant is
// shared by every timestamp field produced for this submission.
//
// Only three conditions are fatal: a missing workflow id, a missing block id
// and a missing block type. Everything else degrades to a default or an
// empty document plus a warning.
func AssembleAt(sub models.RawSubmission, now time.Time) (*Result, error) {
	if sub.Workflow.ID == "" {
		return nil, &FatalError{Field: "workflow_id"}
	}
	if len(sub.Blocks) == 0 {
		return nil, &FatalError{Field: "blocks", OwnerID: sub.Workflow.ID}
	}

	stamp := models.NewTimestamp(now)
	var warnings []models.Warning

	parseField := func(ownerID, field, raw string) models.Document {
		doc, err := ParseDocument(raw)
		if err != nil {
			warnings = append(warnings, models.Warning{
				OwnerID: ownerID,
				Field:   field,
				Reason:  err.Error(),
			})
		}
		return doc
	}

	workflow := &models.Workflow{
		ID:          sub.Workflow.ID,
		UserID:      sub.Workflow.UserID,
		WorkspaceID: OptionalString(sub.Workflow.WorkspaceID),
		FolderID:    OptionalString(sub.Workflow.FolderID),
		Name:        sub.Workflow.Name,
		Description: OptionalString(sub.Workflow.Description),
		Color:       StringOr(sub.Workflow.Color, models.DefaultColor),
		Variables:   parseField(sub.Workflow.ID, "variables", sub.Workflow.Variables),
		IsPublished: false,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
		LastSynced:  stamp,
		State:       models.EmptyDocument(),
	}

	blocks := make([]*models.Block, 0, len(sub.Blocks))
	for _, raw := range sub.Blocks {
		if raw.ID == "" {
			return nil, &FatalError{Field: "block_id", OwnerID: sub.Workflow.ID}
		}
		if raw.Type == "" {
			return nil, &FatalError{Field: "block_type", OwnerID: raw.ID}
		}

		blocks = append(blocks, &models.Block{
			ID:                raw.ID,
			WorkflowID:        workflow.ID,
			Type:              models.BlockType(raw.Type),
			Name:              raw.Name,
			PositionX:         Number(raw.PositionX),
			PositionY:         Number(raw.PositionY),
			Enabled:           Bool(raw.Enabled, true),
			HorizontalHandles: Bool(raw.HorizontalHandles, true),
			IsWide:            Bool(raw.IsWide, false),
			AdvancedMode:      Bool(raw.AdvancedMode, false),
			Height:            Number(raw.Height),
			SubBlocks:         parseField(raw.ID, "sub_blocks", raw.SubBlocks),
			Outputs:           parseField(raw.ID, "outputs", raw.Outputs),
			Data:              parseField(raw.ID, "data", raw.Data),
			ParentID:          OptionalString(raw.ParentID),
			Extent:            OptionalString(raw.Extent),
			CreatedAt:         stamp,
			UpdatedAt:         stamp,
		})
	}

	return &Result{Workflow: workflow, Blocks: blocks, Warnings: warnings}, nil
}

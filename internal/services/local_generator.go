package services

import (
	"context"
	"fmt"

	"agent-forge/backend/pkg/models"
)

// LocalGenerator builds a workflow state without calling the sidecar. It is
// the demo fallback: the state mirrors the submitted blocks one to one.
type LocalGenerator struct{}

// NewLocalGenerator creates a new LocalGenerator.
func NewLocalGenerator() *LocalGenerator {
	return &LocalGenerator{}
}

// GenerateState converts the block rows into the generated block mapping and
// runs the basic structural checks the sidecar would run.
func (g *LocalGenerator) GenerateState(ctx context.Context, req *models.GenerateStateRequest) (*models.GenerateStateResponse, error) {
	blocks := make(map[string]models.Document, len(req.BlocksRows))
	starters := 0
	for _, row := range req.BlocksRows {
		if row.Type == models.BlockTypeStarter {
			starters++
		}
		blocks["block_"+row.ID] = models.Document{
			"id":   "block_" + row.ID,
			"type": string(row.Type),
			"name": row.Name,
			"position": models.Document{
				"x": row.PositionX,
				"y": row.PositionY,
			},
			"enabled":   row.Enabled,
			"subblocks": row.SubBlocks,
			"outputs":   row.Outputs,
		}
	}

	report := &models.ValidationReport{IsValid: true, Warnings: []string{}, Errors: []string{}}
	if starters == 0 {
		report.Warnings = append(report.Warnings, "workflow has no starter block")
	}
	if starters > 1 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("workflow has %d starter blocks", starters))
	}

	state := &models.GeneratedState{
		Blocks:    blocks,
		Edges:     []models.Document{},
		Subflows:  models.EmptyDocument(),
		Variables: req.WorkflowRows.Variables,
		Metadata: models.Document{
			"version":      "1.0.0",
			"pattern":      "custom",
			"generated_by": "local_generator",
			"timestamp":    req.WorkflowRows.CreatedAt.ISO(),
		},
	}

	return &models.GenerateStateResponse{
		WorkflowID:     req.WorkflowID,
		GeneratedState: state,
		Validation:     report,
	}, nil
}

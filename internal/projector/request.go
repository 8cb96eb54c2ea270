// Package projector serializes an assembled record pair into its two
// external representations: the generator request payload and the literal
// SQL statement sequence. Both projections are pure and independent.
package projector

import (
	"agent-forge/backend/pkg/models"
)

// Request projects the record pair into the generator service payload.
// Document fields ride as nested values, not escaped text.
func Request(workflow *models.Workflow, blocks []*models.Block) *models.GenerateStateRequest {
	return &models.GenerateStateRequest{
		WorkflowID:   workflow.ID,
		WorkflowRows: workflow,
		BlocksRows:   blocks,
	}
}

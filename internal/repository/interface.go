package repository

import (
	"context"

	"agent-forge/backend/pkg/models"
)

// WorkflowStore persists assembled workflow records. The SQL projection is a
// display artifact; actual persistence always goes through parameterized
// statements here.
type WorkflowStore interface {
	// SaveWorkflow inserts the workflow row and its block rows atomically.
	SaveWorkflow(ctx context.Context, workflow *models.Workflow, blocks []*models.Block) error
	// GetWorkflow retrieves a workflow row by its id.
	GetWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	// ListWorkflows returns all stored workflow rows.
	ListWorkflows(ctx context.Context) ([]*models.Workflow, error)
	// ListBlocks returns a workflow's block rows in insertion order.
	ListBlocks(ctx context.Context, workflowID string) ([]*models.Block, error)
	// UpdateState replaces a workflow's state document.
	UpdateState(ctx context.Context, workflowID string, state models.Document) error
}

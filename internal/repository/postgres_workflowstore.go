package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agent-forge/backend/pkg/models"
)

// PostgresWorkflowStore is a PostgreSQL implementation of the WorkflowStore
// interface, targeting the workflow_rows / workflow_blocks_rows schema.
type PostgresWorkflowStore struct {
	db *pgxpool.Pool
}

// NewPostgresWorkflowStore creates a new PostgresWorkflowStore.
func NewPostgresWorkflowStore(db *pgxpool.Pool) *PostgresWorkflowStore {
	return &PostgresWorkflowStore{db: db}
}

// SaveWorkflow inserts the workflow row and its block rows in one transaction.
func (s *PostgresWorkflowStore) SaveWorkflow(ctx context.Context, workflow *models.Workflow, blocks []*models.Block) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO public.workflow_rows
			(id, user_id, workspace_id, folder_id, name, description, color, variables,
			 is_published, created_at, updated_at, last_synced, state)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		workflow.ID, workflow.UserID, workflow.WorkspaceID, workflow.FolderID,
		workflow.Name, workflow.Description, workflow.Color, workflow.Variables,
		workflow.IsPublished, workflow.CreatedAt.Time, workflow.UpdatedAt.Time,
		workflow.LastSynced.Time, workflow.State)
	if err != nil {
		return fmt.Errorf("failed to insert workflow %s: %w", workflow.ID, err)
	}

	for _, block := range blocks {
		_, err = tx.Exec(ctx,
			`INSERT INTO public.workflow_blocks_rows
				(id, workflow_id, type, name, position_x, position_y, enabled,
				 horizontal_handles, is_wide, advanced_mode, height, sub_blocks, outputs, data,
				 parent_id, extent, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
			block.ID, block.WorkflowID, string(block.Type), block.Name,
			block.PositionX, block.PositionY, block.Enabled,
			block.HorizontalHandles, block.IsWide, block.AdvancedMode, block.Height,
			block.SubBlocks, block.Outputs, block.Data,
			block.ParentID, block.Extent, block.CreatedAt.Time, block.UpdatedAt.Time)
		if err != nil {
			return fmt.Errorf("failed to insert block %s: %w", block.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetWorkflow retrieves a workflow row by its id.
func (s *PostgresWorkflowStore) GetWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, user_id, workspace_id, folder_id, name, description, color, variables,
			is_published, created_at, updated_at, last_synced, state
		 FROM public.workflow_rows WHERE id = $1`, id)
	return scanWorkflow(row)
}

// ListWorkflows returns all stored workflow rows.
func (s *PostgresWorkflowStore) ListWorkflows(ctx context.Context) ([]*models.Workflow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, workspace_id, folder_id, name, description, color, variables,
			is_published, created_at, updated_at, last_synced, state
		 FROM public.workflow_rows ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []*models.Workflow
	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, workflow)
	}
	return workflows, rows.Err()
}

// ListBlocks returns a workflow's block rows in insertion order.
func (s *PostgresWorkflowStore) ListBlocks(ctx context.Context, workflowID string) ([]*models.Block, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, workflow_id, type, name, position_x, position_y, enabled,
			horizontal_handles, is_wide, advanced_mode, height, sub_blocks, outputs, data,
			parent_id, extent, created_at, updated_at
		 FROM public.workflow_blocks_rows WHERE workflow_id = $1 ORDER BY created_at, id`, workflowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*models.Block
	for rows.Next() {
		var block models.Block
		var blockType string
		var createdAt, updatedAt time.Time
		err := rows.Scan(&block.ID, &block.WorkflowID, &blockType, &block.Name,
			&block.PositionX, &block.PositionY, &block.Enabled,
			&block.HorizontalHandles, &block.IsWide, &block.AdvancedMode, &block.Height,
			&block.SubBlocks, &block.Outputs, &block.Data,
			&block.ParentID, &block.Extent, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		block.Type = models.BlockType(blockType)
		block.CreatedAt = models.NewTimestamp(createdAt)
		block.UpdatedAt = models.NewTimestamp(updatedAt)
		blocks = append(blocks, &block)
	}
	return blocks, rows.Err()
}

// UpdateState replaces a workflow's state document, typically with the
// generator's output.
func (s *PostgresWorkflowStore) UpdateState(ctx context.Context, workflowID string, state models.Document) error {
	_, err := s.db.Exec(ctx,
		`UPDATE public.workflow_rows SET state = $1, updated_at = $2 WHERE id = $3`,
		state, time.Now().UTC(), workflowID)
	return err
}

func scanWorkflow(row pgx.Row) (*models.Workflow, error) {
	var workflow models.Workflow
	var createdAt, updatedAt, lastSynced time.Time
	err := row.Scan(&workflow.ID, &workflow.UserID, &workflow.WorkspaceID, &workflow.FolderID,
		&workflow.Name, &workflow.Description, &workflow.Color, &workflow.Variables,
		&workflow.IsPublished, &createdAt, &updatedAt, &lastSynced, &workflow.State)
	if err != nil {
		return nil, err
	}
	workflow.CreatedAt = models.NewTimestamp(createdAt)
	workflow.UpdatedAt = models.NewTimestamp(updatedAt)
	workflow.LastSynced = models.NewTimestamp(lastSynced)
	return &workflow, nil
}

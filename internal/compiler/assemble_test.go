package compiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-forge/backend/pkg/models"
)

var submissionInstant = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func demoSubmission() models.RawSubmission {
	return models.RawSubmission{
		Workflow: models.RawWorkflow{
			ID:     "wf-1",
			UserID: "u-1",
			Name:   "Demo",
		},
		Blocks: []models.RawBlock{
			{
				ID:        "b-1",
				Type:      "starter",
				Name:      "Start",
				PositionX: "100",
				PositionY: "100",
				Enabled:   "true",
				SubBlocks: "{}",
				Outputs:   "{}",
			},
		},
	}
}

func TestAssembleAt_Defaults(t *testing.T) {
	result, err := AssembleAt(demoSubmission(), submissionInstant)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)
	assert.Empty(t, result.Warnings)

	wf := result.Workflow
	assert.Equal(t, "wf-1", wf.ID)
	assert.Equal(t, "u-1", wf.UserID)
	assert.Nil(t, wf.WorkspaceID)
	assert.Nil(t, wf.FolderID)
	assert.Nil(t, wf.Description)
	assert.Equal(t, models.DefaultColor, wf.Color)
	assert.Equal(t, models.EmptyDocument(), wf.Variables)
	assert.False(t, wf.IsPublished)
	assert.Equal(t, models.EmptyDocument(), wf.State)

	block := result.Blocks[0]
	assert.Equal(t, "wf-1", block.WorkflowID)
	assert.Equal(t, models.BlockTypeStarter, block.Type)
	assert.Equal(t, 100.0, block.PositionX)
	assert.Equal(t, 100.0, block.PositionY)
	assert.True(t, block.Enabled)
	assert.True(t, block.HorizontalHandles)
	assert.False(t, block.IsWide)
	assert.False(t, block.AdvancedMode)
	assert.Equal(t, 0.0, block.Height)
	assert.Equal(t, models.EmptyDocument(), block.SubBlocks)
	assert.Equal(t, models.EmptyDocument(), block.Outputs)
	assert.Equal(t, models.EmptyDocument(), block.Data)
	assert.Nil(t, block.ParentID)
	assert.Nil(t, block.Extent)
}

func TestAssembleAt_SingleInstant(t *testing.T) {
	result, err := AssembleAt(demoSubmission(), submissionInstant)
	require.NoError(t, err)

	wf := result.Workflow
	assert.Equal(t, wf.CreatedAt, wf.UpdatedAt)
	assert.Equal(t, wf.CreatedAt, wf.LastSynced)

	for _, block := range result.Blocks {
		assert.Equal(t, wf.CreatedAt, block.CreatedAt)
		assert.Equal(t, wf.CreatedAt, block.UpdatedAt)
	}

	assert.Equal(t, "2026-08-31T12:00:00.000Z", wf.CreatedAt.ISO())
}

func TestAssembleAt_MalformedDocumentWarns(t *testing.T) {
	sub := demoSubmission()
	sub.Blocks[0].SubBlocks = `{"startWorkflow":{"value":"manual"}}`
	sub.Blocks[0].Data = `{"a": 1,}`

	result, err := AssembleAt(sub, submissionInstant)
	require.NoError(t, err)

	block := result.Blocks[0]
	assert.Equal(t, models.EmptyDocument(), block.Data)

	// the sibling field on the same block is untouched
	assert.Contains(t, block.SubBlocks, "startWorkflow")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "b-1", result.Warnings[0].OwnerID)
	assert.Equal(t, "data", result.Warnings[0].Field)
}

func TestAssembleAt_MalformedVariablesWarnsOnWorkflow(t *testing.T) {
	sub := demoSubmission()
	sub.Workflow.Variables = "not json"

	result, err := AssembleAt(sub, submissionInstant)
	require.NoError(t, err)
	assert.Equal(t, models.EmptyDocument(), result.Workflow.Variables)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "wf-1", result.Warnings[0].OwnerID)
	assert.Equal(t, "variables", result.Warnings[0].Field)
}

func TestAssembleAt_BadBlockDoesNotAffectSiblings(t *testing.T) {
	sub := demoSubmission()
	sub.Blocks = append(sub.Blocks, models.RawBlock{
		ID:        "b-2",
		Type:      "agent",
		Name:      "Agent",
		Outputs:   `{"content":"string"}`,
		SubBlocks: `{"broken":`,
	})

	result, err := AssembleAt(sub, submissionInstant)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 2)

	assert.Equal(t, models.EmptyDocument(), result.Blocks[1].SubBlocks)
	assert.Contains(t, result.Blocks[1].Outputs, "content")
	assert.Equal(t, models.EmptyDocument(), result.Blocks[0].SubBlocks)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "b-2", result.Warnings[0].OwnerID)
}

func TestAssembleAt_PreservesBlockOrder(t *testing.T) {
	sub := demoSubmission()
	sub.Blocks = append(sub.Blocks,
		models.RawBlock{ID: "b-2", Type: "api", Name: "Fetch"},
		models.RawBlock{ID: "b-3", Type: "agent", Name: "Decide"},
	)

	result, err := AssembleAt(sub, submissionInstant)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 3)
	assert.Equal(t, "b-1", result.Blocks[0].ID)
	assert.Equal(t, "b-2", result.Blocks[1].ID)
	assert.Equal(t, "b-3", result.Blocks[2].ID)
}

func TestAssembleAt_FatalPreconditions(t *testing.T) {
	t.Run("missing workflow id", func(t *testing.T) {
		sub := demoSubmission()
		sub.Workflow.ID = ""
		result, err := AssembleAt(sub, submissionInstant)
		assert.Nil(t, result)
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, "workflow_id", fatal.Field)
	})

	t.Run("no blocks", func(t *testing.T) {
		sub := demoSubmission()
		sub.Blocks = nil
		result, err := AssembleAt(sub, submissionInstant)
		assert.Nil(t, result)
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, "blocks", fatal.Field)
	})

	t.Run("missing block id", func(t *testing.T) {
		sub := demoSubmission()
		sub.Blocks[0].ID = ""
		result, err := AssembleAt(sub, submissionInstant)
		assert.Nil(t, result)
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, "block_id", fatal.Field)
	})

	t.Run("missing block type", func(t *testing.T) {
		sub := demoSubmission()
		sub.Blocks[0].Type = ""
		result, err := AssembleAt(sub, submissionInstant)
		assert.Nil(t, result)
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, "block_type", fatal.Field)
		assert.Equal(t, "b-1", fatal.OwnerID)
	})
}

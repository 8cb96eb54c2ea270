package projector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Shape(t *testing.T) {
	sub := demoSubmission()
	sub.Workflow.Variables = `{"trading_pair":"BTC/USD"}`
	workflow, blocks := compile(t, sub)

	req := Request(workflow, blocks)
	assert.Equal(t, "wf-1", req.WorkflowID)
	assert.Same(t, workflow, req.WorkflowRows)
	require.Len(t, req.BlocksRows, 1)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "wf-1", decoded["workflow_id"])

	rows, ok := decoded["workflow_rows"].(map[string]any)
	require.True(t, ok)

	// document fields ride as nested values, not escaped text
	variables, ok := rows["variables"].(map[string]any)
	require.True(t, ok, "variables must be a nested document")
	assert.Equal(t, "BTC/USD", variables["trading_pair"])

	assert.Equal(t, "2026-08-31T12:00:00.000Z", rows["created_at"])
	assert.Nil(t, rows["workspace_id"])

	blocksRows, ok := decoded["blocks_rows"].([]any)
	require.True(t, ok)
	require.Len(t, blocksRows, 1)
	blockRow := blocksRows[0].(map[string]any)
	assert.Equal(t, "wf-1", blockRow["workflow_id"])
	assert.Equal(t, 100.0, blockRow["position_x"])
	_, ok = blockRow["sub_blocks"].(map[string]any)
	assert.True(t, ok, "sub_blocks must be a nested document")
}

func TestRequest_Deterministic(t *testing.T) {
	workflow, blocks := compile(t, demoSubmission())

	first, err := json.Marshal(Request(workflow, blocks))
	require.NoError(t, err)
	second, err := json.Marshal(Request(workflow, blocks))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProjectionsAreIndependent(t *testing.T) {
	workflow, blocks := compile(t, demoSubmission())

	before := SQL(workflow, blocks)
	req := Request(workflow, blocks)
	data, err := json.Marshal(req)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// serializing the request payload leaves the SQL projection untouched
	assert.Equal(t, before, SQL(workflow, blocks))
}

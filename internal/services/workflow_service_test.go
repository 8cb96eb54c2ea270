package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-forge/backend/internal/compiler"
	"agent-forge/backend/internal/projector"
	"agent-forge/backend/pkg/models"
)

func demoSubmission() models.RawSubmission {
	return models.RawSubmission{
		Workflow: models.RawWorkflow{
			ID:     "wf-1",
			UserID: "u-1",
			Name:   "Demo",
		},
		Blocks: []models.RawBlock{
			{ID: "b-1", Type: "starter", Name: "Start", PositionX: "100", PositionY: "100"},
			{ID: "b-2", Type: "agent", Name: "Decide", PositionX: "300", PositionY: "100"},
		},
	}
}

func demoRequest(t *testing.T) *models.GenerateStateRequest {
	t.Helper()
	result, err := compiler.AssembleAt(demoSubmission(), time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return projector.Request(result.Workflow, result.Blocks)
}

func TestLocalGenerator(t *testing.T) {
	resp, err := NewLocalGenerator().GenerateState(context.Background(), demoRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "wf-1", resp.WorkflowID)
	require.NotNil(t, resp.GeneratedState)
	assert.Len(t, resp.GeneratedState.Blocks, 2)

	block, ok := resp.GeneratedState.Blocks["block_b-1"]
	require.True(t, ok)
	assert.Equal(t, "starter", block["type"])

	require.NotNil(t, resp.Validation)
	assert.True(t, resp.Validation.IsValid)
	assert.Empty(t, resp.Validation.Warnings)
}

func TestLocalGenerator_WarnsWithoutStarter(t *testing.T) {
	req := demoRequest(t)
	req.BlocksRows = req.BlocksRows[1:]

	resp, err := NewLocalGenerator().GenerateState(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, resp.Validation.Warnings, "workflow has no starter block")
}

func TestHTTPGeneratorClient(t *testing.T) {
	canned := models.GenerateStateResponse{
		WorkflowID: "wf-1",
		Validation: &models.ValidationReport{IsValid: true},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-state", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.GenerateStateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wf-1", req.WorkflowID)

		json.NewEncoder(w).Encode(canned)
	}))
	defer server.Close()

	client := NewHTTPGeneratorClient(server.URL)
	resp, err := client.GenerateState(context.Background(), demoRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "wf-1", resp.WorkflowID)
	assert.True(t, resp.Validation.IsValid)
}

func TestHTTPGeneratorClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewHTTPGeneratorClient(server.URL).GenerateState(context.Background(), demoRequest(t))
	assert.Error(t, err)
}

func TestWorkflowService_GenerateState(t *testing.T) {
	svc := NewWorkflowService(NewLocalGenerator())

	sub := demoSubmission()
	sub.Blocks[1].Data = `{"broken":`

	result, err := svc.GenerateState(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "wf-1", result.WorkflowID)
	assert.Contains(t, result.SQL, "INSERT INTO public.workflow_rows")
	assert.Contains(t, result.SQL, "INSERT INTO public.workflow_blocks_rows")

	// the malformed field surfaced as a warning, not a failure
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "b-2", result.Warnings[0].OwnerID)
	require.NotNil(t, result.Response.GeneratedState)
}

type generatorFunc func(ctx context.Context, req *models.GenerateStateRequest) (*models.GenerateStateResponse, error)

func (f generatorFunc) GenerateState(ctx context.Context, req *models.GenerateStateRequest) (*models.GenerateStateResponse, error) {
	return f(ctx, req)
}

func TestWorkflowService_FatalAbortsBeforeGeneration(t *testing.T) {
	called := false
	svc := NewWorkflowService(generatorFunc(func(ctx context.Context, req *models.GenerateStateRequest) (*models.GenerateStateResponse, error) {
		called = true
		return nil, nil
	}))

	sub := demoSubmission()
	sub.Workflow.ID = ""

	result, err := svc.GenerateState(context.Background(), sub)
	assert.Nil(t, result)

	var fatal *compiler.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.False(t, called, "no projection or generator call after a fatal precondition")
}

func TestBuildSubmission(t *testing.T) {
	sub, err := BuildSubmission("trading_bot", map[string]string{"trading_pair": "ETH/USD"})
	require.NoError(t, err)
	assert.Equal(t, "Trading Bot - ETH/USD", sub.Workflow.Name)
	require.Len(t, sub.Blocks, 3)

	// template JSON fields compile without warnings
	compiled, err := compiler.Assemble(sub)
	require.NoError(t, err)
	assert.Empty(t, compiled.Warnings)

	_, err = BuildSubmission("nope", nil)
	assert.Error(t, err)
}

package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"agent-forge/backend/internal/compiler"
	"agent-forge/backend/internal/projector"
	"agent-forge/backend/pkg/models"
)

// WorkflowService runs the full submission pipeline: assemble the records,
// project the generator payload, call the generator and project the SQL.
type WorkflowService struct {
	generator   GeneratorClient
	submissions metric.Int64Counter
}

// GenerateStateResult is everything a submission produces: the generator's
// response, the compiler warnings and the SQL statement text.
type GenerateStateResult struct {
	WorkflowID string                        `json:"workflow_id"`
	Response   *models.GenerateStateResponse `json:"response"`
	Warnings   []models.Warning              `json:"warnings"`
	SQL        string                        `json:"sql"`
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(generator GeneratorClient) *WorkflowService {
	meter := otel.Meter("agent-forge/backend")
	submissions, _ := meter.Int64Counter("workflow_submissions_total",
		metric.WithDescription("Number of workflow submissions compiled"))

	return &WorkflowService{
		generator:   generator,
		submissions: submissions,
	}
}

// Compile assembles a raw submission into its canonical record pair.
func (s *WorkflowService) Compile(sub models.RawSubmission) (*compiler.Result, error) {
	return compiler.Assemble(sub)
}

// GenerateState compiles the submission, asks the generator for a state and
// renders the SQL projection. A fatal assembly error aborts before any
// projection runs; compiler warnings ride along with the result.
func (s *WorkflowService) GenerateState(ctx context.Context, sub models.RawSubmission) (*GenerateStateResult, error) {
	compiled, err := compiler.Assemble(sub)
	if err != nil {
		return nil, err
	}
	s.submissions.Add(ctx, 1)

	req := projector.Request(compiled.Workflow, compiled.Blocks)
	resp, err := s.generator.GenerateState(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generator call failed: %w", err)
	}

	return &GenerateStateResult{
		WorkflowID: compiled.Workflow.ID,
		Response:   resp,
		Warnings:   compiled.Warnings,
		SQL:        projector.SQL(compiled.Workflow, compiled.Blocks),
	}, nil
}

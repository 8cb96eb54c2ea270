package models

// GenerateStateRequest is the payload sent to the state generator service:
// the workflow id, the full workflow row and the ordered block rows, with
// document fields embedded as nested values rather than escaped text.
type GenerateStateRequest struct {
	WorkflowID   string    `json:"workflow_id"`
	WorkflowRows *Workflow `json:"workflow_rows"`
	BlocksRows   []*Block  `json:"blocks_rows"`
}

// GeneratedState is the generator's block mapping for a workflow.
type GeneratedState struct {
	Blocks    map[string]Document `json:"blocks"`
	Edges     []Document          `json:"edges"`
	Subflows  Document            `json:"subflows"`
	Variables Document            `json:"variables"`
	Metadata  Document            `json:"metadata"`
}

// ValidationReport carries the generator's findings about a state.
type ValidationReport struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// GenerateStateResponse is the generator service's reply. The compiler does
// not interpret it beyond handing it to the caller.
type GenerateStateResponse struct {
	WorkflowID     string            `json:"workflow_id"`
	GeneratedState *GeneratedState   `json:"generated_state"`
	Validation     *ValidationReport `json:"validation"`
}

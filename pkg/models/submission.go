package models

// RawWorkflow carries the loosely-typed workflow fields exactly as the form
// layer collected them. Every field is text; absence is the empty string.
type RawWorkflow struct {
	ID          string `json:"workflow_id"`
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	FolderID    string `json:"folder_id"`
	Name        string `json:"workflow_name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Variables   string `json:"variables"`
}

// RawBlock carries one block's loosely-typed fields. Numeric and boolean
// fields arrive as text tokens; the three JSON fields arrive unparsed.
type RawBlock struct {
	ID                string `json:"block_id"`
	Type              string `json:"block_type"`
	Name              string `json:"block_name"`
	Enabled           string `json:"enabled"`
	PositionX         string `json:"position_x"`
	PositionY         string `json:"position_y"`
	HorizontalHandles string `json:"horizontal_handles"`
	IsWide            string `json:"is_wide"`
	AdvancedMode      string `json:"advanced_mode"`
	Height            string `json:"height"`
	SubBlocks         string `json:"sub_blocks"`
	Outputs           string `json:"outputs"`
	Data              string `json:"data"`
	ParentID          string `json:"parent_id"`
	Extent            string `json:"extent"`
}

// RawSubmission is one complete form submission: one workflow plus its
// ordered blocks.
type RawSubmission struct {
	Workflow RawWorkflow `json:"workflow"`
	Blocks   []RawBlock  `json:"blocks"`
}

// Warning records a recoverable per-field problem found while assembling a
// submission. OwnerID is the block id the field belongs to, or the workflow
// id for workflow-level fields.
type Warning struct {
	OwnerID string `json:"owner_id"`
	Field   string `json:"field"`
	Reason  string `json:"reason"`
}

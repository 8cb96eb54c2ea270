package projector

import (
	"encoding/json"
	"strconv"
	"strings"

	"agent-forge/backend/pkg/models"
)

// SQL projects the record pair into literal INSERT statements: one row into
// public.workflow_rows, then one row per block into
// public.workflow_blocks_rows, in block order. The output is deterministic:
// the same record pair always yields byte-identical text.
func SQL(workflow *models.Workflow, blocks []*models.Block) string {
	var b strings.Builder

	b.WriteString("-- Insert workflow into public.workflow_rows\n")
	b.WriteString("INSERT INTO public.workflow_rows (\n")
	b.WriteString("    id, user_id, workspace_id, folder_id, name, description, color, variables,\n")
	b.WriteString("    is_published, created_at, updated_at, last_synced, state\n")
	b.WriteString(") VALUES (\n")
	writeValues(&b,
		quote(workflow.ID),
		quote(workflow.UserID),
		nullable(workflow.WorkspaceID),
		nullable(workflow.FolderID),
		quote(workflow.Name),
		nullable(workflow.Description),
		quote(workflow.Color),
		document(workflow.Variables, "json"),
		strconv.FormatBool(workflow.IsPublished),
		quote(workflow.CreatedAt.ISO()),
		quote(workflow.UpdatedAt.ISO()),
		quote(workflow.LastSynced.ISO()),
		document(workflow.State, "json"),
	)
	b.WriteString(");\n")

	b.WriteString("\n-- Insert blocks into public.workflow_blocks_rows\n")
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("INSERT INTO public.workflow_blocks_rows (\n")
		b.WriteString("    id, workflow_id, type, name, position_x, position_y, enabled,\n")
		b.WriteString("    horizontal_handles, is_wide, advanced_mode, height, sub_blocks, outputs, data,\n")
		b.WriteString("    parent_id, extent, created_at, updated_at\n")
		b.WriteString(") VALUES (\n")
		writeValues(&b,
			quote(block.ID),
			quote(block.WorkflowID),
			quote(string(block.Type)),
			quote(block.Name),
			number(block.PositionX),
			number(block.PositionY),
			strconv.FormatBool(block.Enabled),
			strconv.FormatBool(block.HorizontalHandles),
			strconv.FormatBool(block.IsWide),
			strconv.FormatBool(block.AdvancedMode),
			number(block.Height),
			document(block.SubBlocks, "jsonb"),
			document(block.Outputs, "jsonb"),
			document(block.Data, "jsonb"),
			nullable(block.ParentID),
			nullable(block.Extent),
			quote(block.CreatedAt.ISO()),
			quote(block.UpdatedAt.ISO()),
		)
		b.WriteString(");\n")
	}

	return b.String()
}

func writeValues(b *strings.Builder, values ...string) {
	for i, v := range values {
		b.WriteString("    ")
		b.WriteString(v)
		if i < len(values)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
}

// quote wraps s as a SQL string literal, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// nullable renders an optional text column: the bare NULL token when the
// value is absent, never an empty literal.
func nullable(s *string) string {
	if s == nil {
		return "NULL"
	}
	return quote(*s)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// document renders a Document to its canonical JSON text, quotes it like any
// other literal, and appends the column's structured-type cast. Go's JSON
// encoder sorts object keys, which keeps the projection deterministic.
func document(doc models.Document, cast string) string {
	text, err := json.Marshal(doc)
	if err != nil {
		// documents come out of the parser, so this cannot happen;
		// degrade to the empty document rather than emit broken SQL
		text = []byte("{}")
	}
	return quote(string(text)) + "::" + cast
}

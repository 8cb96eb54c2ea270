package compiler

import (
	"encoding/json"

	"agent-forge/backend/pkg/models"
)

// ParseDocument parses raw text expected to hold a JSON key-value document.
// Empty input yields an empty document. Malformed input also yields an empty
// document, together with the parse error so the caller can record a warning
// instead of failing the submission.
func ParseDocument(raw string) (models.Document, error) {
	if raw == "" {
		return models.EmptyDocument(), nil
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return models.EmptyDocument(), err
	}
	if doc == nil {
		// the literal "null" parses but carries nothing
		return models.EmptyDocument(), nil
	}
	return doc, nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"agent-forge/backend/pkg/models"
)

// GeneratorClient produces a workflow state for an assembled submission.
// The live implementation talks to the generator sidecar; the local one
// builds a state without leaving the process.
type GeneratorClient interface {
	GenerateState(ctx context.Context, req *models.GenerateStateRequest) (*models.GenerateStateResponse, error)
}

// HTTPGeneratorClient is the HTTP implementation of GeneratorClient.
type HTTPGeneratorClient struct {
	url string
}

// NewHTTPGeneratorClient creates a new HTTPGeneratorClient.
func NewHTTPGeneratorClient(url string) *HTTPGeneratorClient {
	return &HTTPGeneratorClient{url: url}
}

// GenerateState posts the request payload to the generator sidecar and
// decodes its response.
func (c *HTTPGeneratorClient) GenerateState(ctx context.Context, req *models.GenerateStateRequest) (*models.GenerateStateResponse, error) {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url+"/generate-state", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to generate state: status code %d", resp.StatusCode)
	}

	var result models.GenerateStateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &result, nil
}

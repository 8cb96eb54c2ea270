package services

import (
	"fmt"

	"github.com/google/uuid"

	"agent-forge/backend/pkg/models"
)

// Template describes one catalog entry the form layer can start from.
type Template struct {
	Name               string   `json:"name"`
	DisplayName        string   `json:"display_name"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	CustomizableFields []string `json:"customizable_fields"`
}

// Templates lists the available workflow templates.
func Templates() []Template {
	return []Template{
		{
			Name:               "trading_bot",
			DisplayName:        "Crypto Trading Bot",
			Description:        "Automated trading with stop-loss and take-profit",
			Category:           "Web3 Trading",
			CustomizableFields: []string{"trading_pair", "stop_loss"},
		},
		{
			Name:               "lead_generation",
			DisplayName:        "Lead Generation System",
			Description:        "Capture and qualify leads from multiple sources",
			Category:           "Sales & Marketing",
			CustomizableFields: []string{"source"},
		},
	}
}

// BuildSubmission expands a template into a raw submission, applying the
// caller's customization values. The result goes through the same compiler
// as a hand-filled form.
func BuildSubmission(name string, customization map[string]string) (models.RawSubmission, error) {
	pick := func(key, def string) string {
		if v, ok := customization[key]; ok && v != "" {
			return v
		}
		return def
	}

	switch name {
	case "trading_bot":
		pair := pick("trading_pair", "BTC/USD")
		stopLoss := pick("stop_loss", "0.02")
		return models.RawSubmission{
			Workflow: models.RawWorkflow{
				ID:          uuid.New().String(),
				UserID:      "template-user",
				Name:        "Trading Bot - " + pair,
				Description: "Automated trading bot for " + pair + " with stop-loss protection",
				Color:       "#FF6B6B",
				Variables:   fmt.Sprintf(`{"trading_pair": %q, "stop_loss": %s}`, pair, stopLoss),
			},
			Blocks: []models.RawBlock{
				{
					ID:        uuid.New().String(),
					Type:      "starter",
					Name:      "Start Trading Bot",
					PositionX: "100", PositionY: "100",
					SubBlocks: `{"startWorkflow":{"id":"startWorkflow","type":"dropdown","value":"manual"}}`,
					Outputs:   `{"response":{"type":{"input":"any"}}}`,
				},
				{
					ID:        uuid.New().String(),
					Type:      "api",
					Name:      "Fetch Market Data",
					PositionX: "300", PositionY: "100",
					SubBlocks: `{"url":{"id":"url","type":"short-input","value":"https://api.coingecko.com/api/v3/coins/bitcoin"},"method":{"id":"method","type":"dropdown","value":"GET"}}`,
					Outputs:   `{"data":"any","status":"number","headers":"json"}`,
				},
				{
					ID:        uuid.New().String(),
					Type:      "agent",
					Name:      "Trading Decision Agent",
					PositionX: "500", PositionY: "100",
					SubBlocks: `{"model":{"id":"model","type":"combobox","value":"gpt-4"}}`,
					Outputs:   `{"model":"string","content":"string"}`,
					Data:      fmt.Sprintf(`{"risk_tolerance": %s}`, stopLoss),
				},
			},
		}, nil

	case "lead_generation":
		source := pick("source", "website")
		return models.RawSubmission{
			Workflow: models.RawWorkflow{
				ID:          uuid.New().String(),
				UserID:      "template-user",
				Name:        "Lead Generation - " + source,
				Description: "Automated lead capture and qualification from " + source,
				Color:       "#4ECDC4",
			},
			Blocks: []models.RawBlock{
				{
					ID:        uuid.New().String(),
					Type:      "webhook",
					Name:      "Incoming Lead",
					PositionX: "100", PositionY: "100",
					SubBlocks: `{"webhookPath":{"id":"webhookPath","type":"short-input","value":"/leads"}}`,
				},
				{
					ID:        uuid.New().String(),
					Type:      "agent",
					Name:      "Lead Qualifier",
					PositionX: "300", PositionY: "100",
					SubBlocks: `{"model":{"id":"model","type":"combobox","value":"gpt-4"}}`,
					Outputs:   `{"score":"number","content":"string"}`,
				},
			},
		}, nil
	}

	return models.RawSubmission{}, fmt.Errorf("template %q not found", name)
}

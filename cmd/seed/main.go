// seed compiles the template workflows and inserts them into the database,
// giving a fresh install something to show.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"agent-forge/backend/internal/compiler"
	"agent-forge/backend/internal/config"
	"agent-forge/backend/internal/logging"
	"agent-forge/backend/internal/repository"
	"agent-forge/backend/internal/services"
)

func main() {
	ctx := context.Background()
	logger := logging.NewLogger()

	// Load config
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to DB
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pool.Close()

	store := repository.NewPostgresWorkflowStore(pool)

	// Check for existing workflows to prevent duplicates
	existingWorkflows, err := store.ListWorkflows(ctx)
	if err != nil {
		log.Fatalf("Failed to list existing workflows: %v", err)
	}

	existingMap := make(map[string]bool)
	for _, w := range existingWorkflows {
		existingMap[w.Name] = true
	}

	// Compile and insert each template
	for _, tmpl := range services.Templates() {
		sub, err := services.BuildSubmission(tmpl.Name, nil)
		if err != nil {
			log.Fatalf("Failed to build template %s: %v", tmpl.Name, err)
		}

		if existingMap[sub.Workflow.Name] {
			logger.Info("Skipping existing workflow %s", sub.Workflow.Name)
			continue
		}

		compiled, err := compiler.Assemble(sub)
		if err != nil {
			log.Fatalf("Failed to compile template %s: %v", tmpl.Name, err)
		}
		for _, w := range compiled.Warnings {
			logger.Warn("template warning: %s.%s: %s", w.OwnerID, w.Field, w.Reason)
		}

		if err := store.SaveWorkflow(ctx, compiled.Workflow, compiled.Blocks); err != nil {
			log.Printf("Failed to save workflow %s: %v", sub.Workflow.Name, err)
		} else {
			logger.Info("Seeded workflow %s (%s)", sub.Workflow.Name, compiled.Workflow.ID)
		}
	}
	logger.Info("Seeding complete!")
}

// Package api contains the HTTP handlers for the workflow compiler service.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agent-forge/backend/internal/compiler"
	"agent-forge/backend/internal/logging"
	"agent-forge/backend/internal/repository"
	"agent-forge/backend/internal/services"
	"agent-forge/backend/pkg/models"
)

// Server holds the dependencies for the API server.
type Server struct {
	svc    *services.WorkflowService
	store  repository.WorkflowStore
	logger *logging.Logger
}

// NewServer creates a new Server. store may be nil when the service runs
// without a database; persistence endpoints then answer 503.
func NewServer(svc *services.WorkflowService, store repository.WorkflowStore, logger *logging.Logger) *Server {
	return &Server{svc: svc, store: store, logger: logger}
}

// RegisterRoutes mounts the API routes on the given group.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.POST("/workflows/generate-state", s.GenerateState)
	g.POST("/workflows", s.CreateWorkflow)
	g.GET("/workflows", s.ListWorkflows)
	g.GET("/workflows/:id", s.GetWorkflow)
	g.GET("/templates", s.ListTemplates)
	g.POST("/templates/:name", s.CreateFromTemplate)
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// HandleHealth returns basic health status (always returns 200 OK).
func (s *Server) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   "agent-forge",
		Version:   "1.0.0",
	})
}

// GenerateState compiles a raw submission, asks the generator for a state
// and returns it together with the SQL projection and compiler warnings.
// (POST /api/v1/workflows/generate-state)
func (s *Server) GenerateState(c echo.Context) error {
	ctx := c.Request().Context()

	var sub models.RawSubmission
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := s.svc.GenerateState(ctx, sub)
	if err != nil {
		var fatal *compiler.FatalError
		if errors.As(err, &fatal) {
			return echo.NewHTTPError(http.StatusBadRequest, fatal.Error())
		}
		s.logger.Error("generate state failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "State generation failed: "+err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

// CreateWorkflowResult is the persistence endpoint's response body.
type CreateWorkflowResult struct {
	Workflow *models.Workflow `json:"workflow"`
	Blocks   []*models.Block  `json:"blocks"`
	Warnings []models.Warning `json:"warnings"`
}

// CreateWorkflow compiles a raw submission and persists the record pair.
// (POST /api/v1/workflows)
func (s *Server) CreateWorkflow(c echo.Context) error {
	ctx := c.Request().Context()

	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Persistence is not configured")
	}

	var sub models.RawSubmission
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	compiled, err := s.svc.Compile(sub)
	if err != nil {
		var fatal *compiler.FatalError
		if errors.As(err, &fatal) {
			return echo.NewHTTPError(http.StatusBadRequest, fatal.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := s.store.SaveWorkflow(ctx, compiled.Workflow, compiled.Blocks); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save workflow: "+err.Error())
	}

	return c.JSON(http.StatusCreated, CreateWorkflowResult{
		Workflow: compiled.Workflow,
		Blocks:   compiled.Blocks,
		Warnings: compiled.Warnings,
	})
}

// ListWorkflows returns all stored workflows.
// (GET /api/v1/workflows)
func (s *Server) ListWorkflows(c echo.Context) error {
	ctx := c.Request().Context()

	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Persistence is not configured")
	}

	workflows, err := s.store.ListWorkflows(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, workflows)
}

// GetWorkflow returns one stored workflow with its blocks.
// (GET /api/v1/workflows/:id)
func (s *Server) GetWorkflow(c echo.Context) error {
	ctx := c.Request().Context()

	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Persistence is not configured")
	}

	workflow, err := s.store.GetWorkflow(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Workflow not found")
	}
	blocks, err := s.store.ListBlocks(ctx, workflow.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, CreateWorkflowResult{Workflow: workflow, Blocks: blocks})
}

// ListTemplates returns the template catalog.
// (GET /api/v1/templates)
func (s *Server) ListTemplates(c echo.Context) error {
	templates := services.Templates()
	return c.JSON(http.StatusOK, map[string]any{
		"templates":   templates,
		"total_count": len(templates),
	})
}

// CreateFromTemplate expands a template into a submission and runs it
// through the same pipeline as a hand-filled form.
// (POST /api/v1/templates/:name)
func (s *Server) CreateFromTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	customization := map[string]string{}
	if err := c.Bind(&customization); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	sub, err := services.BuildSubmission(c.Param("name"), customization)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	result, err := s.svc.GenerateState(ctx, sub)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

package api

import (
	"context"

	"github.com/rpupo63/myfolio-api/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	demoProjectHandler demoProjectHandler
	diagnosticsHandler diagnosticsHandler
}

type projectLister interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
}

type demoProjectStore interface {
	FindAll(ctx context.Context) ([]*models.DemoProject, error)
	FindByID(ctx context.Context, id uint) (*models.DemoProject, error)
	Add(ctx context.Context, project *models.DemoProject) error
	Delete(ctx context.Context, id uint) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Detail string `json:"detail" example:"Project not found"`
	Status string `json:"status" example:"error"`
	Field  string `json:"field,omitempty" example:"title"`
}

// MessageResponse acknowledges a mutation
type MessageResponse struct {
	Detail string `json:"detail" example:"Project deleted successfully"`
}

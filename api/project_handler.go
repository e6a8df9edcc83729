package api

import (
	"net/http"

	"github.com/rpupo63/myfolio-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo projectLister
}

func newProjectHandler(projectRepo projectLister) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// ProjectResponse is one portfolio entry with its image URLs decoded.
type ProjectResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	TechStack   *string          `json:"tech_stack"`
	GithubLink  *string          `json:"github_link"`
	DemoLink    *string          `json:"demo_link"`
	Images      models.ImageList `json:"images"`
}

func newProjectResponse(p *models.Project) ProjectResponse {
	images := p.ImageURL
	if images == nil {
		images = models.ImageList{}
	}
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		TechStack:   p.TechStack,
		GithubLink:  p.GithubLink,
		DemoLink:    p.DemoLink,
		Images:      images,
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves every project. Images that cannot be decoded are returned as an empty list.
// @Tags Projects
// @Produce json
// @Success 200 {array} ProjectResponse "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		response := make([]ProjectResponse, 0, len(projects))
		for _, project := range projects {
			response = append(response, newProjectResponse(project))
		}

		h.responder.WriteJSON(w, response)
	}
}

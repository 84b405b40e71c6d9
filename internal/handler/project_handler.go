package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
	"github.com/brightforge/agency-backend/internal/validator"
)

const projectNotFound = "Project not found"

// ProjectHandler handles admin-facing project management (CRUD).
type ProjectHandler struct {
	projectService *service.ProjectService
	log            zerolog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *service.ProjectService, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log.With().Str("component", "project_handler").Logger(),
	}
}

var unknownClientField = []response.FieldError{
	{Field: "clientId", Message: "clientId does not reference an existing client"},
}

// Create godoc
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req model.CreateProjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &req)
	if errors.Is(err, repository.ErrInvalidReference) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, unknownClientField)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to create project")
		return
	}
	response.SuccessMessage(c, http.StatusOK, project, "Project created successfully")
}

// List godoc
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch projects")
		return
	}
	response.SuccessList(c, projects, len(projects))
}

// Get godoc
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, projectNotFound)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch project")
		return
	}
	response.Success(c, http.StatusOK, project)
}

// Update godoc
// PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "project")
	if !ok {
		return
	}

	var req model.UpdateProjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.projectService.Update(c.Request.Context(), id, &req)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		notFound(c, projectNotFound)
		return
	case errors.Is(err, repository.ErrInvalidReference):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, unknownClientField)
		return
	case err != nil:
		failInternal(c, h.log, err, "Failed to update project")
		return
	}
	response.SuccessMessage(c, http.StatusOK, updated, "Project updated successfully")
}

// Delete godoc
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "project")
	if !ok {
		return
	}

	deleted, err := h.projectService.Delete(c.Request.Context(), id)
	if err != nil {
		failInternal(c, h.log, err, "Failed to delete project")
		return
	}
	if !deleted {
		notFound(c, projectNotFound)
		return
	}
	response.SuccessMessage(c, http.StatusOK, nil, "Project deleted successfully")
}

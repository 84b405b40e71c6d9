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

const clientNotFound = "Client not found"

// ClientHandler handles admin-facing client management (CRUD).
type ClientHandler struct {
	clientService *service.ClientService
	log           zerolog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService *service.ClientService, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		log:           log.With().Str("component", "client_handler").Logger(),
	}
}

// Create godoc
// POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req model.CreateClientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), &req)
	if err != nil {
		if h.writeStoreError(c, err) {
			return
		}
		failInternal(c, h.log, err, "Failed to create client")
		return
	}
	response.SuccessMessage(c, http.StatusOK, client, "Client created successfully")
}

// List godoc
// GET /api/clients
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch clients")
		return
	}
	response.SuccessList(c, clients, len(clients))
}

// Get godoc
// GET /api/clients/:id
// Returns the client with its projects embedded.
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "client")
	if !ok {
		return
	}

	client, err := h.clientService.GetWithProjects(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, clientNotFound)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch client")
		return
	}
	response.Success(c, http.StatusOK, client)
}

// Update godoc
// PATCH /api/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "client")
	if !ok {
		return
	}

	var req model.UpdateClientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.clientService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if h.writeStoreError(c, err) {
			return
		}
		failInternal(c, h.log, err, "Failed to update client")
		return
	}
	response.SuccessMessage(c, http.StatusOK, updated, "Client updated successfully")
}

// Delete godoc
// DELETE /api/clients/:id
// Clients that still own projects are refused with 409.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "client")
	if !ok {
		return
	}

	deleted, err := h.clientService.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrHasDependents) {
		response.FailMessage(c, http.StatusConflict, response.ErrDependencyExists, "Client still has projects")
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to delete client")
		return
	}
	if !deleted {
		notFound(c, clientNotFound)
		return
	}
	response.SuccessMessage(c, http.StatusOK, nil, "Client deleted successfully")
}

// writeStoreError answers the expected repository failures of create/update.
func (h *ClientHandler) writeStoreError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		notFound(c, clientNotFound)
	case errors.Is(err, repository.ErrConflict):
		response.FailMessage(c, http.StatusConflict, response.ErrConflict, "A client with this email already exists")
	case errors.Is(err, repository.ErrInvalidReference):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, []response.FieldError{
			{Field: "contactSubmissionId", Message: "contactSubmissionId does not reference an existing submission"},
		})
	default:
		return false
	}
	return true
}

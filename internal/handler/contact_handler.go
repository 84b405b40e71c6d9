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

const contactNotFound = "Contact submission not found"

// ContactHandler serves the public contact form and the submission back-office.
type ContactHandler struct {
	contactService *service.ContactService
	log            zerolog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *service.ContactService, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		log:            log.With().Str("component", "contact_handler").Logger(),
	}
}

// Submit godoc
// POST /api/contact
// Accepts a public contact form submission.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.CreateContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		failInternal(c, h.log, err, "Failed to submit contact form")
		return
	}

	response.SuccessWith(c, http.StatusOK, gin.H{
		"id":      submission.ID,
		"message": "Contact form submitted successfully",
	})
}

// List godoc
// GET /api/contact
func (h *ContactHandler) List(c *gin.Context) {
	submissions, err := h.contactService.List(c.Request.Context())
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch contact submissions")
		return
	}
	response.SuccessList(c, submissions, len(submissions))
}

// Stats godoc
// GET /api/contact/stats
// Counts submissions for today, the last 7 days and the last 30 days.
func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.contactService.Stats(c.Request.Context())
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch contact statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Get godoc
// GET /api/contact/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "submission")
	if !ok {
		return
	}

	submission, err := h.contactService.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, contactNotFound)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to fetch contact submission")
		return
	}
	response.Success(c, http.StatusOK, submission)
}

// Update godoc
// PATCH /api/contact/:id
// Applies a partial update (status, priority, assignment, tags...).
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "submission")
	if !ok {
		return
	}

	var req model.UpdateContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.contactService.Update(c.Request.Context(), id, &req)
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c, contactNotFound)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to update contact submission")
		return
	}
	response.SuccessMessage(c, http.StatusOK, updated, "Contact submission updated successfully")
}

// Delete godoc
// DELETE /api/contact/:id
// A missing id is reported as 404 every time, so repeated deletes are harmless.
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "submission")
	if !ok {
		return
	}

	deleted, err := h.contactService.Delete(c.Request.Context(), id)
	if err != nil {
		failInternal(c, h.log, err, "Failed to delete contact submission")
		return
	}
	if !deleted {
		notFound(c, contactNotFound)
		return
	}
	response.SuccessMessage(c, http.StatusOK, nil, "Contact submission deleted successfully")
}

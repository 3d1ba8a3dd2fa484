package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/dto"
	apierrors "tasktrack/internal/errors"
	"tasktrack/internal/middleware"
	"tasktrack/internal/services"
)

// AttachmentHandler coordinates attachment-related HTTP handlers.
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// Upload stores a multipart file against one of the caller's tasks.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "No file provided")
		return
	}

	attachment, err := h.attachmentService.Upload(taskID, userID, file)
	if err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// List returns the attachment metadata of one of the caller's tasks.
func (h *AttachmentHandler) List(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.List(taskID, userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentDTOs(attachments))
}

// Delete removes one of the caller's attachments.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	attachmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid attachment id")
		return
	}

	if err := h.attachmentService.Delete(attachmentID, userID); err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attachment deleted",
	})
}

func respondAttachmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMimetypeNotAllowed),
		errors.Is(err, services.ErrFileTooLarge):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAttachmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrStorageFailed):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	eventRepo "slotwise/database/repository/event"
	"slotwise/models"
	"slotwise/utils"
)

// EventTypeHandler exposes event-type listing for the public page and CRUD
// for hosts. Host identity arrives from the excluded auth layer as the
// hostID path segment.
type EventTypeHandler struct {
	Repo   eventRepo.EventTypeRepository
	Logger *zap.Logger
}

func NewEventTypeHandler(repo eventRepo.EventTypeRepository, logger *zap.Logger) *EventTypeHandler {
	return &EventTypeHandler{Repo: repo, Logger: logger}
}

// ListPublic handles GET /api/book/:hostID/events — only active event
// types, ordered by name, for the visitor-facing page.
func (h *EventTypeHandler) ListPublic(c *gin.Context) {
	events, err := h.Repo.ListByHost(c.Request.Context(), c.Param("hostID"), true)
	if err != nil {
		h.Logger.Error("failed to list public event types", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list event types", "")
		return
	}
	if len(events) == 0 {
		utils.JSONError(c, http.StatusNotFound, "no bookable events for this host", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// List handles GET /api/hosts/:hostID/events — the host's own view,
// including inactive event types.
func (h *EventTypeHandler) List(c *gin.Context) {
	events, err := h.Repo.ListByHost(c.Request.Context(), c.Param("hostID"), false)
	if err != nil {
		h.Logger.Error("failed to list event types", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list event types", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Create handles POST /api/hosts/:hostID/events.
func (h *EventTypeHandler) Create(c *gin.Context) {
	var req models.CreateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	now := time.Now()
	et := models.EventType{
		ID:              uuid.New().String(),
		HostID:          c.Param("hostID"),
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.IsActive != nil {
		et.IsActive = *req.IsActive
	}

	if err := h.Repo.Create(c.Request.Context(), &et); err != nil {
		h.Logger.Error("failed to create event type", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create event type", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": et})
}

// Update handles PUT /api/hosts/:hostID/events/:id.
func (h *EventTypeHandler) Update(c *gin.Context) {
	var req models.UpdateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	et, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || et.HostID != c.Param("hostID") {
		utils.JSONError(c, http.StatusNotFound, "event type not found", c.Param("id"))
		return
	}

	if req.Name != nil {
		et.Name = *req.Name
	}
	if req.Description != nil {
		et.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "durationMinutes must be positive")
			return
		}
		et.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		et.IsActive = *req.IsActive
	}
	et.UpdatedAt = time.Now()

	if err := h.Repo.Update(c.Request.Context(), et); err != nil {
		h.Logger.Error("failed to update event type", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update event type", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": et})
}

// Delete handles DELETE /api/hosts/:hostID/events/:id.
func (h *EventTypeHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("hostID"), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "event type not found", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	scheduleRepo "slotwise/database/repository/schedule"
	"slotwise/models"
	"slotwise/utils"
)

// ScheduleHandler manages a host's working-hours policy.
type ScheduleHandler struct {
	Repo   scheduleRepo.ScheduleRepository
	Logger *zap.Logger
}

func NewScheduleHandler(repo scheduleRepo.ScheduleRepository, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Repo: repo, Logger: logger}
}

// Get handles GET /api/hosts/:hostID/schedule.
func (h *ScheduleHandler) Get(c *gin.Context) {
	sched, err := h.Repo.GetByHost(c.Request.Context(), c.Param("hostID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "no schedule configured", c.Param("hostID"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// Put handles PUT /api/hosts/:hostID/schedule, replacing the full policy.
func (h *ScheduleHandler) Put(c *gin.Context) {
	var sched models.HostSchedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	sched.HostID = c.Param("hostID")

	if _, err := sched.Location(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid timezone", err.Error())
		return
	}
	for _, rule := range sched.Rules {
		if err := rule.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid working-hours rule", err.Error())
			return
		}
	}
	if sched.MinNoticeMinutes < 0 || sched.BufferBeforeMinutes < 0 || sched.BufferAfterMinutes < 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "notice and buffers must be non-negative")
		return
	}

	if err := h.Repo.Upsert(c.Request.Context(), &sched); err != nil {
		h.Logger.Error("failed to save schedule", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save schedule", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

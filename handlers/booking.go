package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/booking"
	"slotwise/utils"
)

// BookingHandler exposes the public booking-page endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// GetSlots handles GET /api/book/:hostID/:eventTypeID/slots.
// Query: from, to (RFC 3339), tz (IANA zone), granularity (minutes, optional).
func (h *BookingHandler) GetSlots(c *gin.Context) {
	var query struct {
		From        time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		To          time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		Timezone    string    `form:"tz"`
		Granularity int       `form:"granularity"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	tz := query.Timezone
	if tz == "" {
		tz = "UTC"
	}

	q := models.SlotQuery{
		HostID:             c.Param("hostID"),
		EventTypeID:        c.Param("eventTypeID"),
		RangeStart:         query.From,
		RangeEnd:           query.To,
		VisitorTimezone:    tz,
		GranularityMinutes: query.Granularity,
	}

	result, err := h.Service.Availability(c.Request.Context(), q)
	if err != nil {
		switch availability.ErrorCode(err) {
		case availability.CodeRangeTooLarge, availability.CodeValidation:
			utils.JSONError(c, http.StatusBadRequest, "invalid availability request", err.Error())
		default:
			h.Logger.Error("availability resolution failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to resolve availability", "")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Commit handles POST /api/bookings.
func (h *BookingHandler) Commit(c *gin.Context) {
	var req models.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Service.Commit(c.Request.Context(), req)
	if err != nil {
		switch booking.ErrorCode(err) {
		case booking.CodeSlotTaken:
			// Expected race, not a fault: the client re-fetches slots.
			c.JSON(http.StatusConflict, gin.H{
				"code":    booking.CodeSlotTaken,
				"message": "This time was just taken, please choose another.",
			})
		case booking.CodeValidation, booking.CodeRangeTooLarge:
			utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		default:
			h.Logger.Error("booking commit failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to commit booking", "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// Cancel handles DELETE /api/bookings/:id.
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID := c.Param("id")
	if err := h.Service.Cancel(c.Request.Context(), bookingID); err != nil {
		if booking.ErrorCode(err) == booking.CodeValidation {
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
			return
		}
		h.Logger.Error("booking cancel failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", "")
		return
	}
	c.Status(http.StatusNoContent)
}

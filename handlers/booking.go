package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/services/booking"
	"slotify/utils"
)

// BookingHandler exposes the booking service over HTTP.
type BookingHandler struct {
	Service booking.Service
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// FreeSlotsHandler returns the free slots of one date. An empty list is a
// valid answer, not an error.
func (h *BookingHandler) FreeSlotsHandler(c *gin.Context) {
	var req models.FreeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slots, err := h.Service.FreeSlots(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"free_slots": slots})
}

// NextFreeHandler serves both the POST body form and the GET query form. A
// short list means the lookahead ceiling was reached first.
func (h *BookingHandler) NextFreeHandler(c *gin.Context) {
	var req models.NextFreeRequest
	if c.Request.Method == http.MethodGet {
		if raw := c.Query("count"); raw != "" {
			count, err := strconv.Atoi(raw)
			if err != nil || count <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid count parameter"})
				return
			}
			req.Count = count
		}
		req.Timezone = c.Query("timezone")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	days, err := h.Service.NextFree(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"next_slots": days})
}

// CheckSlotHandler reports whether one slot is currently free. The answer is
// advisory; only a successful booking reserves the slot.
func (h *BookingHandler) CheckSlotHandler(c *gin.Context) {
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	available, err := h.Service.CheckSlot(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// BookHandler books a slot. An optional X-Idempotency-Key header makes
// retries of the same booking replay the original confirmation.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	confirmation, err := h.Service.Book(c.Request.Context(), req, c.GetHeader("X-Idempotency-Key"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("booking confirmed",
		zap.String("eventID", confirmation.EventID),
		zap.String("date", req.Date),
		zap.String("time", req.Time))
	c.JSON(http.StatusOK, confirmation)
}

// DeleteHandler cancels a booking by event id or by date and time.
func (h *BookingHandler) DeleteHandler(c *gin.Context) {
	var req models.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// respondError maps the service error taxonomy onto HTTP statuses.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var conflictErr *booking.ConflictError
	var notFoundErr *booking.NotFoundError
	var gatewayErr *booking.GatewayError

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", validationErr.Message)
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Time slot already booked", conflictErr.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", notFoundErr.Message)
	case errors.As(err, &gatewayErr):
		h.Logger.Error("calendar gateway failure", zap.String("op", gatewayErr.Op), zap.Error(gatewayErr.Err))
		utils.JSONError(c, http.StatusBadGateway, "Calendar provider unavailable", "Please try again later.")
	default:
		h.Logger.Error("unexpected booking error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

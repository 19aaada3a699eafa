package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
	"github.com/driveeasy/booking-service/internal/validator"
)

type BookingHandler struct {
	BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService, logger utils.Logger) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    NewBaseHandler(logger),
		bookingService: bookingService,
	}
}

// Create submits a booking for the authenticated user.
func (h *BookingHandler) Create(c *gin.Context) {
	var req validator.BookingCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID := CurrentUserID(c)
	bookingID, err := h.bookingService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.RespondError(c, err, "Booking failed. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Booking submitted successfully! Admin will review and approve shortly.",
		"bookingId": bookingID,
	})
}

// ListMine returns the authenticated user's bookings.
func (h *BookingHandler) ListMine(c *gin.Context) {
	rows, err := h.bookingService.ListByUser(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.RespondError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListForInstructor returns the approved lessons of the instructor mapped
// to the session user.
func (h *BookingHandler) ListForInstructor(c *gin.Context) {
	rows, err := h.bookingService.ListForInstructor(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.RespondError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListAll returns every booking for the admin dashboard.
func (h *BookingHandler) ListAll(c *gin.Context) {
	rows, err := h.bookingService.ListAll(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpdateStatus drives the admin approval/rejection transition.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid booking id"})
		return
	}

	var req validator.BookingUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.bookingService.UpdateStatus(c.Request.Context(), uint(bookingID), &req); err != nil {
		h.RespondError(c, err, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Booking %s successfully and user has been notified", req.Status),
		"bookingId": uint(bookingID),
	})
}

// ExportReport streams all bookings as an xlsx workbook.
func (h *BookingHandler) ExportReport(c *gin.Context) {
	report, err := h.bookingService.ExportReport(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to export bookings")
		return
	}
	defer report.Close()

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := report.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream booking report")
	}
}

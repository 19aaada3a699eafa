package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
	"github.com/driveeasy/booking-service/internal/validator"
)

// ErrorResponse is the JSON error shape for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BaseHandler carries shared handler dependencies.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// RespondError maps service errors to HTTP responses. Unknown errors are
// logged with their cause and surfaced with the generic fallback only.
func (h BaseHandler) RespondError(c *gin.Context, err error, fallback string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verrs[0].Message})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email already registered"})
	case errors.Is(err, services.ErrDuplicateActiveBooking):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "You already have an active booking. Please wait for it to be processed or contact admin.",
		})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status"})
	case errors.Is(err, services.ErrInstructorRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Instructor must be assigned when approving"})
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, services.ErrInstructorNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Instructor not found"})
	case errors.Is(err, services.ErrInstructorProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Instructor profile not found"})
	default:
		h.LogError(c, err, fallback)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// BindJSON binds the request body, answering 400 on malformed payloads.
func (h BaseHandler) BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return false
	}
	return true
}

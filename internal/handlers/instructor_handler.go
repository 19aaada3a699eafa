package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
)

type InstructorHandler struct {
	BaseHandler
	instructorService services.InstructorService
}

func NewInstructorHandler(instructorService services.InstructorService, logger utils.Logger) *InstructorHandler {
	return &InstructorHandler{
		BaseHandler:       NewBaseHandler(logger),
		instructorService: instructorService,
	}
}

// List returns all instructors ordered by name.
func (h *InstructorHandler) List(c *gin.Context) {
	instructors, err := h.instructorService.List(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to fetch instructors")
		return
	}
	c.JSON(http.StatusOK, instructors)
}

// Get returns a single instructor.
func (h *InstructorHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid instructor id"})
		return
	}

	instructor, err := h.instructorService.Get(c.Request.Context(), uint(id))
	if err != nil {
		h.RespondError(c, err, "Failed to fetch instructor")
		return
	}
	c.JSON(http.StatusOK, instructor)
}

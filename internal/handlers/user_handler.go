package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	authService  services.AuthService
	statsService services.StatsService
}

func NewUserHandler(authService services.AuthService, statsService services.StatsService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:  NewBaseHandler(logger),
		authService:  authService,
		statsService: statsService,
	}
}

// ListUsers returns every account for the admin dashboard.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Stats returns the dashboard counters.
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to fetch statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

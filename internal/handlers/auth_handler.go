package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/auth"
	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
	"github.com/driveeasy/booking-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	sessions    *auth.Manager
	middleware  *SessionAuthMiddleware
}

func NewAuthHandler(
	authService services.AuthService,
	sessions *auth.Manager,
	middleware *SessionAuthMiddleware,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		sessions:    sessions,
		middleware:  middleware,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req validator.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Registration failed. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration successful! Please login.",
		"userId":  userID,
	})
}

// Login verifies credentials and establishes a fresh session. Any session
// previously presented by this client is invalidated first, and the cookie
// is only set once the session store write has succeeded.
func (h *AuthHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Login failed. Please try again.")
		return
	}

	token, err := h.sessions.Regenerate(c.Request.Context(), h.middleware.Token(c), auth.SessionData{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		Email:  user.Email,
	})
	if err != nil {
		h.LogError(c, err, "Failed to establish session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Login failed. Please try again."})
		return
	}

	h.middleware.SetSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"role":    user.Role,
		"name":    user.Name,
		"email":   user.Email,
		"userId":  user.ID,
	})
}

// Logout destroys the session and clears the client cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := h.middleware.Token(c)

	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
		h.LogError(c, err, "Failed to destroy session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Logout failed"})
		return
	}

	h.middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CheckSession reports the authentication state for the presented cookie.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	data, ok, err := h.sessions.Get(c.Request.Context(), h.middleware.Token(c))
	if err != nil {
		h.LogError(c, err, "Session lookup failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Session lookup failed. Please try again."})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loggedIn": true,
		"userId":   data.UserID,
		"role":     data.Role,
		"name":     data.Name,
		"email":    data.Email,
	})
}

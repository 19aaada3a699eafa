package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/auth"
	"github.com/driveeasy/booking-service/internal/models"
)

// SessionCookieName is the client-held session identifier cookie.
const SessionCookieName = "driveeasy_sid"

// SessionAuthMiddleware authenticates requests against the session store.
type SessionAuthMiddleware struct {
	sessions *auth.Manager
	secure   bool
}

func NewSessionAuthMiddleware(sessions *auth.Manager, secure bool) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessions: sessions,
		secure:   secure,
	}
}

// SetSessionCookie writes the session cookie; httpOnly, max-age bound to
// the session TTL.
func (m *SessionAuthMiddleware) SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, int(m.sessions.TTL().Seconds()), "/", "", m.secure, true)
}

// ClearSessionCookie instructs the client to drop the session cookie.
func (m *SessionAuthMiddleware) ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}

// Token returns the presented session token, if any.
func (m *SessionAuthMiddleware) Token(c *gin.Context) string {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

// RequireAuth resolves the session cookie and binds the identity snapshot
// into the request context, rejecting unauthenticated requests.
func (m *SessionAuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok, err := m.sessions.Get(c.Request.Context(), m.Token(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Session lookup failed. Please try again.",
			})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "Authentication required",
				Message: "Please login to access this resource",
			})
			c.Abort()
			return
		}

		c.Set("user_id", data.UserID)
		c.Set("user_role", data.Role)
		c.Set("user_name", data.Name)
		c.Set("user_email", data.Email)

		c.Next()
	}
}

// RequireRole gates an endpoint on the role snapshot bound at login. An
// exact match is required; a role change after login takes effect at the
// next login.
func (m *SessionAuthMiddleware) RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists || userRole != role {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   string(role) + " access required",
				Message: "You do not have permission to access this resource",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id bound by RequireAuth.
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentSession rebuilds the identity snapshot from the request context.
func CurrentSession(c *gin.Context) auth.SessionData {
	data := auth.SessionData{UserID: CurrentUserID(c)}
	if v, exists := c.Get("user_role"); exists {
		if role, ok := v.(models.UserRole); ok {
			data.Role = role
		}
	}
	data.Name = c.GetString("user_name")
	data.Email = c.GetString("user_email")
	return data
}

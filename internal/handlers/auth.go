package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/garasiku/garasiku-server/api/v1"
	"github.com/garasiku/garasiku-server/internal/models"
)

const sessionContextKey = "session"

// Login authenticates with email and password and opens a session
// (POST /auth/login)
func (h *Handler) Login(c *gin.Context) {
	var req v1.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, user, err := h.authSrv.Login(c.Request.Context(), string(req.Email), req.Password)
	if err != nil {
		respondError(c, zap.S().Named("auth_handler"), "login", err)
		return
	}

	h.setAuthCookie(c, session)
	c.JSON(http.StatusOK, v1.AuthResponse{
		Token: session.Token,
		User:  v1.NewUserFromModel(*user),
	})
}

// GoogleCallback exchanges an OAuth authorization code and authenticates a
// pre-registered user by email
// (POST /auth/google-callback)
func (h *Handler) GoogleCallback(c *gin.Context) {
	var req v1.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, user, err := h.authSrv.LoginWithGoogle(c.Request.Context(), req.Code, req.RedirectUri)
	if err != nil {
		respondError(c, zap.S().Named("auth_handler"), "google login", err)
		return
	}

	h.setAuthCookie(c, session)
	c.JSON(http.StatusOK, v1.AuthResponse{
		Token: session.Token,
		User:  v1.NewUserFromModel(*user),
	})
}

// Logout revokes the session and clears the cookie
// (POST /auth/logout)
func (h *Handler) Logout(c *gin.Context) {
	if token := tokenFromRequest(c); token != "" {
		h.authSrv.Logout(token)
	}
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user
// (GET /auth/me)
func (h *Handler) Me(c *gin.Context) {
	user, err := h.authSrv.CurrentUser(c.Request.Context(), tokenFromRequest(c))
	if err != nil {
		respondError(c, zap.S().Named("auth_handler"), "current user", err)
		return
	}
	c.JSON(http.StatusOK, v1.NewUserFromModel(*user))
}

// RequireAuth guards dashboard mutations. The token comes from the
// Authorization header or, for browser clients, the auth cookie.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := h.authSrv.Validate(tokenFromRequest(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func sessionFromContext(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if session, ok := v.(*models.Session); ok {
			return session
		}
	}
	return nil
}

func tokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

func (h *Handler) setAuthCookie(c *gin.Context, session *models.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	secure := c.Request.TLS != nil
	c.SetCookie(AuthCookieName, session.Token, maxAge, "/", "", secure, true)
}

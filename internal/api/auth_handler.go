package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guestbook-api/internal/auth"
	"github.com/rs/zerolog"
)

type loginRequest struct {
	Key string `json:"key"`
}

// AuthHandler exchanges the admin key for a bearer token
type AuthHandler struct {
	issuer *auth.Issuer
	log    zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(issuer *auth.Issuer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		issuer: issuer,
		log:    log.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	if h.issuer == nil || !h.issuer.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin login is not configured", "code": codeUnavailable})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	token, err := h.issuer.Login(req.Key)
	switch {
	case errors.Is(err, auth.ErrInvalidKey):
		h.log.Warn().Str("client_ip", clientID(c)).Msg("Admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key", "code": codeUnauthorized})
		return
	case err != nil:
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Str("client_ip", clientID(c)).Msg("Admin logged in")
	c.JSON(http.StatusOK, token)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/service"
	"github.com/rs/zerolog"
)

// ModerationHandler handles the admin moderation endpoints
type ModerationHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(services *service.Services, log zerolog.Logger) *ModerationHandler {
	return &ModerationHandler{
		services: services,
		log:      log.With().Str("handler", "moderation").Logger(),
	}
}

// List handles GET /v1/admin/posts
func (h *ModerationHandler) List(c *gin.Context) {
	var params models.ModerationListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "limit and cursor must be integers")
		return
	}

	page, err := h.services.Moderation.List(c.Request.Context(), &params)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Moderate handles PATCH /v1/admin/posts/:id
func (h *ModerationHandler) Moderate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.ModerateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	post, err := h.services.Moderation.Moderate(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Stats handles GET /v1/admin/stats
func (h *ModerationHandler) Stats(c *gin.Context) {
	stats, err := h.services.Moderation.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/service"
	"github.com/rs/zerolog"
)

// PostHandler handles the public guestbook endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// Hello handles GET /v1/hello
func (h *PostHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Post.Hello(c.Query("text")))
}

// Create handles POST /v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	var in models.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetLatest handles GET /v1/posts/latest. The body is null when there are no posts.
func (h *PostHandler) GetLatest(c *gin.Context) {
	post, err := h.services.Post.GetLatest(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// List handles GET /v1/posts
func (h *PostHandler) List(c *gin.Context) {
	var params models.ListPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "limit and cursor must be integers")
		return
	}

	page, err := h.services.Post.List(c.Request.Context(), &params)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Update handles PUT /v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.UpdatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.services.Post.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// AvatarSeed handles GET /v1/avatars/seed
func (h *PostHandler) AvatarSeed(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Post.NewAvatarSeed())
}

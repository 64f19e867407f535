package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guestbook-api/internal/service"
	"github.com/rs/zerolog"
)

// Error codes returned in the "code" field
const (
	codeValidation   = "VALIDATION_ERROR"
	codeNotFound     = "NOT_FOUND"
	codeBadRequest   = "BAD_REQUEST"
	codeRateLimited  = "RATE_LIMITED"
	codeUnauthorized = "UNAUTHORIZED"
	codeUnavailable  = "UNAVAILABLE"
	codeTimeout      = "TIMEOUT"
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var (
		verr *service.ValidationError
		rerr *service.RateLimitError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"code":   codeValidation,
			"fields": verr.Errors,
		})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found", "code": codeNotFound})
	case errors.Is(err, service.ErrRateLimited):
		body := gin.H{
			"error": "too many requests, please try again later",
			"code":  codeRateLimited,
		}
		if errors.As(err, &rerr) {
			body["resetAt"] = rerr.ResetAt.UTC().Format(time.RFC3339)
		}
		c.JSON(http.StatusTooManyRequests, body)
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Request timed out")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out", "code": codeTimeout})
	default:
		log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": codeBadRequest})
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message, "code": codeUnauthorized})
}

// parseID reads the positive integer :id path parameter
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownClient is returned when no proxy header identifies the caller
const UnknownClient = "unknown"

// ClientIP returns the caller identifier from proxy headers, in order:
// X-Forwarded-For (first hop), X-Real-IP, CF-Connecting-IP.
func ClientIP(h http.Header) string {
	if forwarded := h.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
		return UnknownClient
	}

	if realIP := h.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if cfIP := h.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	return UnknownClient
}

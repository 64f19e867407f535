package models

import (
	"time"
)

// ModerationStatus represents where a post is in the moderation workflow
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "PENDING"
	StatusApproved ModerationStatus = "APPROVED"
	StatusRejected ModerationStatus = "REJECTED"
)

// DefaultModerationStatus is assigned to newly created posts
const DefaultModerationStatus = StatusPending

// ValidModerationStatuses defines allowed moderation statuses
var ValidModerationStatuses = map[ModerationStatus]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// Valid reports whether s is one of the known statuses
func (s ModerationStatus) Valid() bool {
	return ValidModerationStatuses[s]
}

// Post limits
const (
	MaxMessageLength = 500
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Post represents a guestbook entry
type Post struct {
	ID               int64            `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Message          string           `json:"message" db:"message"`
	AvatarSeed       string           `json:"avatarSeed" db:"avatar_seed"`
	AvatarURL        string           `json:"avatarUrl" db:"-"` // derived, not stored
	ModerationStatus ModerationStatus `json:"moderationStatus" db:"moderation_status"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`
}

// PostFilter describes a paginated listing query.
// A zero Cursor means "start from the newest post".
type PostFilter struct {
	Limit  int
	Cursor int64
	Search string
	Status *ModerationStatus
}

// PostPage is one page of a cursor-paginated listing
type PostPage struct {
	Posts      []*Post `json:"posts"`
	NextCursor *int64  `json:"nextCursor"`
}

// ModerationStats holds post counts per moderation status
type ModerationStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// CreatePostInput is the payload for creating a post
type CreatePostInput struct {
	Name       string  `json:"name" validate:"required,min=1"`
	Message    string  `json:"message" validate:"required,min=1,max=500"`
	AvatarSeed *string `json:"avatarSeed,omitempty"`
}

// UpdatePostInput is the payload for editing a post
type UpdatePostInput struct {
	Name    string `json:"name" validate:"required,min=1"`
	Message string `json:"message" validate:"required,min=1,max=500"`
}

// ListPostsParams are the public listing query parameters
type ListPostsParams struct {
	Limit  int    `form:"limit" validate:"min=1,max=100"`
	Cursor int64  `form:"cursor"`
	Search string `form:"search"`
}

// ModerationListParams are the moderation listing query parameters
type ModerationListParams struct {
	Limit  int              `form:"limit" validate:"min=1,max=100"`
	Cursor int64            `form:"cursor"`
	Status ModerationStatus `form:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

// ModerateInput is the payload for changing a post's moderation status
type ModerateInput struct {
	Status ModerationStatus `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

// Greeting is the response of the hello endpoint
type Greeting struct {
	Greeting string `json:"greeting"`
}

// AvatarSeed is a freshly generated avatar seed with its image URL
type AvatarSeed struct {
	Seed      string `json:"seed"`
	AvatarURL string `json:"avatarUrl"`
}

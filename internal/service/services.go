package service

import (
	"context"

	"github.com/guestbook-api/internal/metrics"
	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/notify"
	"github.com/guestbook-api/internal/repository"
	"github.com/guestbook-api/internal/validation"
	"github.com/rs/zerolog"
)

// PostService defines the public guestbook operations
type PostService interface {
	Hello(text string) *models.Greeting
	Create(ctx context.Context, in *models.CreatePostInput) (*models.Post, error)
	GetLatest(ctx context.Context) (*models.Post, error)
	List(ctx context.Context, params *models.ListPostsParams) (*models.PostPage, error)
	Update(ctx context.Context, id int64, in *models.UpdatePostInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) (*models.Post, error)
	NewAvatarSeed() *models.AvatarSeed
}

// ModerationService defines the administrator operations
type ModerationService interface {
	List(ctx context.Context, params *models.ModerationListParams) (*models.PostPage, error)
	Moderate(ctx context.Context, id int64, in *models.ModerateInput) (*models.Post, error)
	Stats(ctx context.Context) (*models.ModerationStats, error)
}

// Dispatcher hands new entries to the notification pipeline without blocking
type Dispatcher interface {
	Dispatch(entry notify.NewEntry)
}

// Services holds all service interfaces
type Services struct {
	Post       PostService
	Moderation ModerationService
}

// NewServices creates all services. m may be nil.
func NewServices(repos *repository.Repositories, dispatcher Dispatcher, m *metrics.Metrics, log zerolog.Logger) *Services {
	v := validation.NewValidator()

	return &Services{
		Post:       newPostService(repos.Post, dispatcher, v, m, log),
		Moderation: newModerationService(repos.Post, v, m, log),
	}
}

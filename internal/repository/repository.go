package repository

import (
	"context"

	"github.com/guestbook-api/internal/database"
	"github.com/guestbook-api/internal/models"
)

// PostRepository defines the interface for post data operations.
// Lookups and mutations of a missing id return (nil, nil).
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetLatest(ctx context.Context) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) (*models.PostPage, error)
	Update(ctx context.Context, id int64, name, message string) (*models.Post, error)
	UpdateStatus(ctx context.Context, id int64, status models.ModerationStatus) (*models.Post, error)
	Delete(ctx context.Context, id int64) (*models.Post, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.ModerationStatus) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post PostRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post: NewPostRepo(db),
	}
}

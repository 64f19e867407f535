package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guestbook-api/internal/metrics"
	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/notify"
	"github.com/guestbook-api/internal/repository"
	"github.com/guestbook-api/internal/validation"
	"github.com/guestbook-api/pkg/avatar"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	posts      repository.PostRepository
	dispatcher Dispatcher
	validator  *validation.Validator
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

func newPostService(posts repository.PostRepository, dispatcher Dispatcher, v *validation.Validator, m *metrics.Metrics, log zerolog.Logger) *postService {
	return &postService{
		posts:      posts,
		dispatcher: dispatcher,
		validator:  v,
		metrics:    m,
		log:        log.With().Str("service", "post").Logger(),
	}
}

// Hello greets text
func (s *postService) Hello(text string) *models.Greeting {
	return &models.Greeting{Greeting: "Hello " + text}
}

// Create validates and stores a new entry, then hands it to the notifier.
// Notification problems never fail the call.
func (s *postService) Create(ctx context.Context, in *models.CreatePostInput) (*models.Post, error) {
	if err := newValidationError(s.validator.ValidateCreate(in)); err != nil {
		return nil, err
	}

	post := &models.Post{
		Name:             in.Name,
		Message:          in.Message,
		ModerationStatus: models.DefaultModerationStatus,
	}
	if in.AvatarSeed != nil {
		post.AvatarSeed = *in.AvatarSeed
	}

	if err := s.posts.Create(ctx, post); err != nil {
		var cerr *repository.ConstraintError
		if errors.As(err, &cerr) {
			return nil, constraintError(cerr)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	decorate(post)

	if s.metrics != nil {
		s.metrics.PostsCreated.Inc()
	}
	s.log.Info().
		Int64("post_id", post.ID).
		Str("status", string(post.ModerationStatus)).
		Msg("Post created")

	s.dispatcher.Dispatch(notify.NewEntry{
		ID:        post.ID,
		Name:      post.Name,
		Message:   post.Message,
		CreatedAt: post.CreatedAt,
	})

	return post, nil
}

// GetLatest returns the newest post of any status, or nil when there are none
func (s *postService) GetLatest(ctx context.Context) (*models.Post, error) {
	post, err := s.posts.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest post: %w", err)
	}
	if post != nil {
		decorate(post)
	}
	return post, nil
}

// List returns one page of approved posts
func (s *postService) List(ctx context.Context, params *models.ListPostsParams) (*models.PostPage, error) {
	if params.Limit == 0 {
		params.Limit = models.DefaultPageLimit
	}
	if err := newValidationError(s.validator.ValidateListParams(params)); err != nil {
		return nil, err
	}

	approved := models.StatusApproved
	page, err := s.posts.List(ctx, models.PostFilter{
		Limit:  params.Limit,
		Cursor: params.Cursor,
		Search: params.Search,
		Status: &approved,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	decorateAll(page.Posts)
	return page, nil
}

// Update edits a post's name and message
func (s *postService) Update(ctx context.Context, id int64, in *models.UpdatePostInput) (*models.Post, error) {
	if err := newValidationError(s.validator.ValidateUpdate(in)); err != nil {
		return nil, err
	}

	post, err := s.posts.Update(ctx, id, in.Name, in.Message)
	if err != nil {
		var cerr *repository.ConstraintError
		if errors.As(err, &cerr) {
			return nil, constraintError(cerr)
		}
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	decorate(post)

	s.log.Info().Int64("post_id", id).Msg("Post updated")
	return post, nil
}

// Delete permanently removes a post and returns it
func (s *postService) Delete(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	decorate(post)

	s.log.Info().Int64("post_id", id).Msg("Post deleted")
	return post, nil
}

// NewAvatarSeed returns a random seed and its avatar URL
func (s *postService) NewAvatarSeed() *models.AvatarSeed {
	seed := avatar.RandomSeed()
	return &models.AvatarSeed{Seed: seed, AvatarURL: avatar.URL(seed, avatar.DefaultStyle)}
}

func decorate(post *models.Post) {
	post.AvatarURL = avatar.ForPost(post.AvatarSeed, post.Name)
}

func decorateAll(posts []*models.Post) {
	for _, p := range posts {
		decorate(p)
	}
}

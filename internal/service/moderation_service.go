package service

import (
	"context"
	"fmt"

	"github.com/guestbook-api/internal/metrics"
	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/repository"
	"github.com/guestbook-api/internal/validation"
	"github.com/rs/zerolog"
)

// moderationService is the concrete implementation of ModerationService
type moderationService struct {
	posts     repository.PostRepository
	validator *validation.Validator
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

func newModerationService(posts repository.PostRepository, v *validation.Validator, m *metrics.Metrics, log zerolog.Logger) *moderationService {
	return &moderationService{
		posts:     posts,
		validator: v,
		metrics:   m,
		log:       log.With().Str("service", "moderation").Logger(),
	}
}

// List returns one page of posts of any status, optionally filtered by status
func (s *moderationService) List(ctx context.Context, params *models.ModerationListParams) (*models.PostPage, error) {
	if params.Limit == 0 {
		params.Limit = models.DefaultPageLimit
	}
	if err := newValidationError(s.validator.ValidateModerationListParams(params)); err != nil {
		return nil, err
	}

	filter := models.PostFilter{Limit: params.Limit, Cursor: params.Cursor}
	if params.Status != "" {
		status := params.Status
		filter.Status = &status
	}

	page, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for moderation: %w", err)
	}
	decorateAll(page.Posts)
	return page, nil
}

// Moderate sets a post's status. Setting the current status again succeeds.
func (s *moderationService) Moderate(ctx context.Context, id int64, in *models.ModerateInput) (*models.Post, error) {
	if err := newValidationError(s.validator.ValidateModerate(in)); err != nil {
		return nil, err
	}

	post, err := s.posts.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to moderate post %d: %w", id, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	decorate(post)

	if s.metrics != nil {
		s.metrics.ModerationActions.WithLabelValues(string(in.Status)).Inc()
	}
	s.log.Info().
		Int64("post_id", id).
		Str("status", string(in.Status)).
		Msg("Post moderated")

	return post, nil
}

// Stats counts posts per status. Each count is a separate query, so the
// numbers are not guaranteed to add up under concurrent writes.
func (s *moderationService) Stats(ctx context.Context) (*models.ModerationStats, error) {
	var stats models.ModerationStats
	var err error

	if stats.Pending, err = s.posts.CountByStatus(ctx, models.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending posts: %w", err)
	}
	if stats.Approved, err = s.posts.CountByStatus(ctx, models.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to count approved posts: %w", err)
	}
	if stats.Rejected, err = s.posts.CountByStatus(ctx, models.StatusRejected); err != nil {
		return nil, fmt.Errorf("failed to count rejected posts: %w", err)
	}
	if stats.Total, err = s.posts.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	return &stats, nil
}

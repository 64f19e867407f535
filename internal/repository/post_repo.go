package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/guestbook-api/internal/database"
	"github.com/guestbook-api/internal/models"
	"github.com/lib/pq"
)

// ConstraintError is returned when the store rejects a row that violates a CHECK constraint
type ConstraintError struct {
	Constraint string
}

func (e *ConstraintError) Error() string {
	return "constraint violation: " + e.Constraint
}

// Column guesses the offending column from the posts_<column>_check naming
func (e *ConstraintError) Column() string {
	return strings.TrimSuffix(strings.TrimPrefix(e.Constraint, "posts_"), "_check")
}

func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "check_violation" {
		return &ConstraintError{Constraint: pqErr.Constraint}
	}
	return err
}

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Name, &post.Message, &post.AvatarSeed,
		&post.ModerationStatus, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// scanOne maps sql.ErrNoRows to (nil, nil)
func scanOne(row *sql.Row) (*models.Post, error) {
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return post, nil
}

// Create inserts a new post and fills in the store-assigned fields
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	if post.ModerationStatus == "" {
		post.ModerationStatus = models.DefaultModerationStatus
	}

	query := `
		INSERT INTO posts (name, message, avatar_seed, moderation_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.Name, post.Message, post.AvatarSeed, post.ModerationStatus,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	return mapError(err)
}

// GetByID retrieves a post by ID
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = $1"
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetLatest retrieves the newest post regardless of moderation status
func (r *postRepo) GetLatest(ctx context.Context) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts ORDER BY created_at DESC, id DESC LIMIT 1"
	return scanOne(r.db.QueryRowContext(ctx, query))
}

// List returns one page of posts matching filter, newest first
func (r *postRepo) List(ctx context.Context, filter models.PostFilter) (*models.PostPage, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.Post, 0, filter.Limit+1)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return Paginate(posts, filter.Limit), nil
}

// Update edits a post's name and message
func (r *postRepo) Update(ctx context.Context, id int64, name, message string) (*models.Post, error) {
	query := `
		UPDATE posts SET name = $2, message = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id, name, message))
}

// UpdateStatus sets a post's moderation status
func (r *postRepo) UpdateStatus(ctx context.Context, id int64, status models.ModerationStatus) (*models.Post, error) {
	query := `
		UPDATE posts SET moderation_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id, status))
}

// Delete permanently removes a post and returns the removed row
func (r *postRepo) Delete(ctx context.Context, id int64) (*models.Post, error) {
	query := "DELETE FROM posts WHERE id = $1 RETURNING " + postColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

// CountByStatus returns the number of posts with the given moderation status
func (r *postRepo) CountByStatus(ctx context.Context, status models.ModerationStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE moderation_status = $1", status).Scan(&count)
	return count, err
}

package repository

import (
	"fmt"
	"strings"

	"github.com/guestbook-api/internal/models"
)

const postColumns = "id, name, message, avatar_seed, moderation_status, created_at, updated_at"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery renders the SELECT for a cursor-paginated listing.
// It fetches Limit+1 rows so the caller can tell whether another page exists.
func buildListQuery(filter models.PostFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		where = append(where, "moderation_status = "+arg(string(*filter.Status)))
	}
	if filter.Cursor != 0 {
		where = append(where, "id < "+arg(filter.Cursor))
	}
	if filter.Search != "" {
		p := arg("%" + likeEscaper.Replace(filter.Search) + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR message ILIKE %s)", p, p))
	}

	var b strings.Builder
	b.WriteString("SELECT " + postColumns + " FROM posts")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	b.WriteString(" LIMIT " + arg(filter.Limit+1))

	return b.String(), args
}

// paginate trims an over-fetched result to limit. The next cursor is the id
// of the last row kept, so "id < cursor" resumes at the trimmed row.
func paginate(posts []*models.Post, limit int) ([]*models.Post, *int64) {
	if limit <= 0 || len(posts) <= limit {
		return posts, nil
	}
	next := posts[limit-1].ID
	return posts[:limit], &next
}

// Paginate is exported for services and mocks that page through
// List results fetched with limit+1 rows.
func Paginate(posts []*models.Post, limit int) *models.PostPage {
	page, next := paginate(posts, limit)
	if page == nil {
		page = []*models.Post{}
	}
	return &models.PostPage{Posts: page, NextCursor: next}
}

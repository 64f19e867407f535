package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/repository"
)

// MockPostRepository is an in-memory implementation of PostRepository.
// Ids are assigned sequentially starting at 1.
type MockPostRepository struct {
	mu     sync.Mutex
	Posts  map[int64]*models.Post
	NextID int64

	// Err, when set, is returned by every method
	Err         error
	CreateCalls int
	Now         func() time.Time
}

// Verify interface compliance
var _ repository.PostRepository = (*MockPostRepository)(nil)

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts:  make(map[int64]*models.Post),
		NextID: 1,
		Now:    time.Now,
	}
}

// Seed stores n posts with the given status and returns them in id order
func (m *MockPostRepository) Seed(n int, status models.ModerationStatus) []*models.Post {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Post{Name: "Visitor", Message: "Hello", ModerationStatus: status}
		m.Create(context.Background(), p)
		posts = append(posts, p)
	}
	return posts
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.Err != nil {
		return m.Err
	}
	if post.ModerationStatus == "" {
		post.ModerationStatus = models.DefaultModerationStatus
	}
	now := m.Now()
	post.ID = m.NextID
	post.CreatedAt = now
	post.UpdatedAt = now
	m.NextID++

	stored := *post
	m.Posts[post.ID] = &stored
	return nil
}

func (m *MockPostRepository) get(id int64) *models.Post {
	p, ok := m.Posts[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.get(id), nil
}

func (m *MockPostRepository) GetLatest(ctx context.Context) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	sorted := m.newestFirst()
	if len(sorted) == 0 {
		return nil, nil
	}
	return m.get(sorted[0].ID), nil
}

func (m *MockPostRepository) newestFirst() []*models.Post {
	posts := make([]*models.Post, 0, len(m.Posts))
	for _, p := range m.Posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

func (m *MockPostRepository) List(ctx context.Context, filter models.PostFilter) (*models.PostPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	search := strings.ToLower(filter.Search)
	var matched []*models.Post
	for _, p := range m.newestFirst() {
		if filter.Status != nil && p.ModerationStatus != *filter.Status {
			continue
		}
		if filter.Cursor != 0 && p.ID >= filter.Cursor {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Message), search) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
		if len(matched) > filter.Limit {
			break
		}
	}
	return repository.Paginate(matched, filter.Limit), nil
}

func (m *MockPostRepository) Update(ctx context.Context, id int64, name, message string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	p.Name = name
	p.Message = message
	p.UpdatedAt = m.Now()
	return m.get(id), nil
}

func (m *MockPostRepository) UpdateStatus(ctx context.Context, id int64, status models.ModerationStatus) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	p.ModerationStatus = status
	p.UpdatedAt = m.Now()
	return m.get(id), nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p := m.get(id)
	delete(m.Posts, id)
	return p, nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Posts), nil
}

func (m *MockPostRepository) CountByStatus(ctx context.Context, status models.ModerationStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, p := range m.Posts {
		if p.ModerationStatus == status {
			count++
		}
	}
	return count, nil
}

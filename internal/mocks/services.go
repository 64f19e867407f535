package mocks

import (
	"context"
	"sync"

	"github.com/guestbook-api/internal/models"
	"github.com/guestbook-api/internal/notify"
	"github.com/guestbook-api/internal/service"
)

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	CreateFunc    func(ctx context.Context, in *models.CreatePostInput) (*models.Post, error)
	GetLatestFunc func(ctx context.Context) (*models.Post, error)
	ListFunc      func(ctx context.Context, params *models.ListPostsParams) (*models.PostPage, error)
	UpdateFunc    func(ctx context.Context, id int64, in *models.UpdatePostInput) (*models.Post, error)
	DeleteFunc    func(ctx context.Context, id int64) (*models.Post, error)
	ListCalls     []models.ListPostsParams
}

// Verify interface compliance
var _ service.PostService = (*MockPostService)(nil)

func NewMockPostService() *MockPostService {
	return &MockPostService{}
}

func (m *MockPostService) Hello(text string) *models.Greeting {
	return &models.Greeting{Greeting: "Hello " + text}
}

func (m *MockPostService) Create(ctx context.Context, in *models.CreatePostInput) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &models.Post{ID: 1, Name: in.Name, Message: in.Message, ModerationStatus: models.StatusPending}, nil
}

func (m *MockPostService) GetLatest(ctx context.Context) (*models.Post, error) {
	if m.GetLatestFunc != nil {
		return m.GetLatestFunc(ctx)
	}
	return nil, nil
}

func (m *MockPostService) List(ctx context.Context, params *models.ListPostsParams) (*models.PostPage, error) {
	m.ListCalls = append(m.ListCalls, *params)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return &models.PostPage{Posts: []*models.Post{}}, nil
}

func (m *MockPostService) Update(ctx context.Context, id int64, in *models.UpdatePostInput) (*models.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return &models.Post{ID: id, Name: in.Name, Message: in.Message}, nil
}

func (m *MockPostService) Delete(ctx context.Context, id int64) (*models.Post, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return &models.Post{ID: id}, nil
}

func (m *MockPostService) NewAvatarSeed() *models.AvatarSeed {
	return &models.AvatarSeed{Seed: "seed", AvatarURL: "https://api.dicebear.com/9.x/adventurer/svg?seed=seed"}
}

// MockModerationService is a mock implementation of ModerationService
type MockModerationService struct {
	ListFunc     func(ctx context.Context, params *models.ModerationListParams) (*models.PostPage, error)
	ModerateFunc func(ctx context.Context, id int64, in *models.ModerateInput) (*models.Post, error)
	StatsResult  *models.ModerationStats
}

// Verify interface compliance
var _ service.ModerationService = (*MockModerationService)(nil)

func NewMockModerationService() *MockModerationService {
	return &MockModerationService{StatsResult: &models.ModerationStats{}}
}

func (m *MockModerationService) List(ctx context.Context, params *models.ModerationListParams) (*models.PostPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return &models.PostPage{Posts: []*models.Post{}}, nil
}

func (m *MockModerationService) Moderate(ctx context.Context, id int64, in *models.ModerateInput) (*models.Post, error) {
	if m.ModerateFunc != nil {
		return m.ModerateFunc(ctx, id, in)
	}
	return &models.Post{ID: id, ModerationStatus: in.Status}, nil
}

func (m *MockModerationService) Stats(ctx context.Context) (*models.ModerationStats, error) {
	return m.StatsResult, nil
}

// MockDispatcher records dispatched entries
type MockDispatcher struct {
	mu      sync.Mutex
	Entries []notify.NewEntry
}

// Verify interface compliance
var _ service.Dispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) Dispatch(entry notify.NewEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
}

// Dispatched returns a copy of the recorded entries
func (m *MockDispatcher) Dispatched() []notify.NewEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.NewEntry(nil), m.Entries...)
}

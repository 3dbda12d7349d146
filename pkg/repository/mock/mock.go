package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/skillsphere/backend/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Users    *mockUserRepo
	Roadmaps *MockRoadmapRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:    &mockUserRepo{},
		Roadmaps: NewMockRoadmapRepo(),
	}
}

type mockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Email: u.Email, PasswordHash: u.PasswordHash, Created: u.Created, Updated: u.Updated}
	return 1, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

// MockRoadmapRepo is an in-memory artifact store that preserves insertion
// order for timestamp ties, matching the real store's listing contract.
type MockRoadmapRepo struct {
	mu      sync.Mutex
	Records []models.RoadmapRecord

	CreateErr error
	GetErr    error
	ListErr   error
	DeleteErr error
}

func NewMockRoadmapRepo() *MockRoadmapRepo {
	return &MockRoadmapRepo{}
}

func (m *MockRoadmapRepo) CreateRoadmap(ctx context.Context, rec *models.RoadmapRecord) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, *rec)
	return nil
}

func (m *MockRoadmapRepo) GetRoadmap(ctx context.Context, id string) (*models.RoadmapRecord, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Records {
		if m.Records[i].ID == id {
			rec := m.Records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *MockRoadmapRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.RoadmapRecord, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.RoadmapRecord{}
	for _, r := range m.Records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockRoadmapRepo) DeleteRoadmap(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}

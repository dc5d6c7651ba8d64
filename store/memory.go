package store

import (
	"context"
	"sync"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/models"
)

// MemoryRecordStore keeps records in process memory. The mutex makes id
// assignment atomic with insertion under gin's concurrent handlers.
type MemoryRecordStore struct {
	mu      sync.Mutex
	records []models.ScanRecord
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{}
}

func (s *MemoryRecordStore) Append(_ context.Context, rec *models.ScanRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := int64(len(s.records))
	r := *rec
	r.ID = id
	s.records = append(s.records, r)
	return id, nil
}

func (s *MemoryRecordStore) ListFor(_ context.Context, requesterID string, role models.Role) ([]models.ScanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ScanRecord, 0, len(s.records))
	for _, r := range s.records {
		if role == models.RoleDoctor || r.OwnerID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryRecordStore) SetNotes(_ context.Context, id int64, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= int64(len(s.records)) {
		return ErrNotFound
	}
	s.records[id].Notes = notes
	return nil
}

// MemoryUserStore is the in-memory user directory.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return ErrDuplicateUser
	}
	s.users[user.Username] = *user
	return nil
}

func (s *MemoryUserStore) Get(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) ListPatients(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0)
	for _, u := range s.users {
		if u.Role == models.RolePatient {
			out = append(out, u)
		}
	}
	return out, nil
}

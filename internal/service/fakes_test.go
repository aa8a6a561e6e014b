package service

import (
	"context"
	"sync"
	"time"

	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/repository"
)

// fakeUserStore is an in-memory UserStore that reproduces the repository's
// sentinel errors.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) UpdateUserEmail(_ context.Context, id int64, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for otherID, u := range s.users {
		if otherID != id && u.Email == email {
			return repository.ErrEmailExists
		}
	}
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Email = email
	return nil
}

func (s *fakeUserStore) UpdateUserPassword(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *fakeUserStore) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// fakeMeasurementStore is an in-memory MeasurementStore with the same
// ownership behavior as the real repository.
type fakeMeasurementStore struct {
	mu           sync.Mutex
	nextID       int64
	measurements map[int64]*model.Measurement
}

func newFakeMeasurementStore() *fakeMeasurementStore {
	return &fakeMeasurementStore{measurements: make(map[int64]*model.Measurement)}
}

func (s *fakeMeasurementStore) CreateMeasurement(_ context.Context, m *model.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	cp := *m
	s.measurements[m.ID] = &cp
	return nil
}

func (s *fakeMeasurementStore) UpdateMeasurementFields(_ context.Context, id, userID int64, fields model.MeasurementFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.measurements[id]
	if !ok || m.UserID != userID {
		return repository.ErrMeasurementNotFound
	}
	m.MeasurementFields = fields
	return nil
}

func (s *fakeMeasurementStore) DeleteMeasurement(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.measurements[id]
	if !ok || m.UserID != userID {
		return repository.ErrMeasurementNotFound
	}
	delete(s.measurements, id)
	return nil
}

func (s *fakeMeasurementStore) ListMeasurements(_ context.Context, userID int64) ([]*model.Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Measurement
	for id := int64(1); id <= s.nextID; id++ {
		m, ok := s.measurements[id]
		if !ok || m.UserID != userID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	// Insertion order doubles as recorded_at order here; ids are assigned
	// monotonically.
	return out, nil
}

// fakeSessionStore is an in-memory SessionStore.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Principal
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*model.Principal)}
}

func (s *fakeSessionStore) SaveSession(_ context.Context, token string, p *model.Principal, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.sessions[token] = &cp
	return nil
}

func (s *fakeSessionStore) GetSession(_ context.Context, token string) (*model.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeSessionStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *fakeSessionStore) DeleteUserSessions(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, p := range s.sessions {
		if p.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s *fakeSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// fakePublisher records published activity events synchronously.
type fakePublisher struct {
	mu    sync.Mutex
	kinds []string
}

func (p *fakePublisher) PublishAsync(_ int64, kind, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, kind)
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.kinds...)
}

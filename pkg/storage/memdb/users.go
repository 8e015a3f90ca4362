package memdb

import (
	"context"
	"slices"
	"sync"

	"pulse/pkg/models"
	"pulse/pkg/storage"
)

type UserStore struct {
	mu    sync.Mutex
	users []models.User
	ids   idSeq
	opts  options
}

var _ storage.UserStore = (*UserStore)(nil)

func NewUserStore(users []models.User, opts ...Option) *UserStore {
	s := UserStore{
		users: slices.Clone(users),
		opts:  newOptions(opts),
	}
	if s.users == nil {
		s.users = []models.User{}
	}
	for _, u := range users {
		s.ids.observe(u.ID)
	}

	return &s
}

func (s *UserStore) Users(ctx context.Context) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.users)
}

func (s *UserStore) User(ctx context.Context, id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.User{}, storage.ErrUserNotFound
	}

	return s.users[i], nil
}

func (s *UserStore) FindUser(ctx context.Context, id int, hasID bool, key string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if (hasID && u.ID == id) || (key != "" && u.Key == key) {
			return u, nil
		}
	}

	return models.User{}, storage.ErrUserNotFound
}

// AddUser appends a user built from draft with all counters at zero.
func (s *UserStore) AddUser(ctx context.Context, draft models.UserDraft) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := models.User{
		ID:          s.ids.next(),
		Key:         opaqueKey("user", s.opts.now()),
		Username:    draft.Username,
		DisplayName: draft.DisplayName,
		Avatar:      draft.Avatar,
		Bio:         draft.Bio,
	}
	s.users = append(s.users, user)

	return user, nil
}

func (s *UserStore) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.User{}, storage.ErrUserNotFound
	}
	patch.Apply(&s.users[i])

	return s.users[i], nil
}

func (s *UserStore) DeleteUser(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.ErrUserNotFound
	}
	s.users = slices.Delete(s.users, i, i+1)

	return nil
}

func (s *UserStore) AdjustFollowers(ctx context.Context, id int, delta int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.User{}, storage.ErrUserNotFound
	}
	s.users[i].Followers = max(0, s.users[i].Followers+delta)

	return s.users[i], nil
}

func (s *UserStore) index(id int) int {
	return slices.IndexFunc(s.users, func(u models.User) bool {
		return u.ID == id
	})
}

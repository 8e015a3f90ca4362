package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"pulse/pkg/models"
	"pulse/pkg/storage"
)

// Users is the user operation set.
//
// GetByID accepts either identity form. Follow and Unfollow, like Update and
// Delete, resolve only the numeric form, so Follow("user_123") fails with
// ErrUserNotFound even when GetByID("user_123") succeeds.
type Users interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, draft models.UserDraft) (models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Follow(ctx context.Context, id string) (models.User, error)
	Unfollow(ctx context.Context, id string) (models.User, error)
}

type UserService struct {
	store storage.UserStore
	r     runner
}

var _ Users = (*UserService)(nil)

func NewUserService(store storage.UserStore, opts ...Option) *UserService {
	return &UserService{store: store, r: newRunner("UserService", opts)}
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return call(ctx, &s.r, OpList, func() ([]models.User, error) {
		return s.store.Users(ctx), nil
	})
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return call(ctx, &s.r, OpGet, func() (models.User, error) {
		n, ok := storage.ParseID(id)
		return s.store.FindUser(ctx, n, ok, id)
	})
}

func (s *UserService) Create(ctx context.Context, draft models.UserDraft) (models.User, error) {
	return call(ctx, &s.r, OpCreate, func() (models.User, error) {
		user, err := s.store.AddUser(ctx, draft)
		if err != nil {
			return models.User{}, err
		}
		log.Debugf("[UserService] created user Id:%d id:%s", user.ID, user.Key)
		return user, nil
	})
}

func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	return call(ctx, &s.r, OpUpdate, func() (models.User, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.User{}, storage.ErrUserNotFound
		}
		user, err := s.store.UpdateUser(ctx, n, patch)
		if err != nil {
			return models.User{}, err
		}
		log.Debugf("[UserService] updated user Id:%d", user.ID)
		return user, nil
	})
}

func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return call(ctx, &s.r, OpDelete, func() (bool, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return false, storage.ErrUserNotFound
		}
		if err := s.store.DeleteUser(ctx, n); err != nil {
			return false, err
		}
		log.Debugf("[UserService] deleted user Id:%d", n)
		return true, nil
	})
}

func (s *UserService) Follow(ctx context.Context, id string) (models.User, error) {
	return s.adjustFollowers(ctx, id, 1)
}

func (s *UserService) Unfollow(ctx context.Context, id string) (models.User, error) {
	return s.adjustFollowers(ctx, id, -1)
}

func (s *UserService) adjustFollowers(ctx context.Context, id string, delta int) (models.User, error) {
	return call(ctx, &s.r, OpReact, func() (models.User, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.User{}, storage.ErrUserNotFound
		}
		user, err := s.store.AdjustFollowers(ctx, n, delta)
		if err != nil {
			return models.User{}, err
		}
		log.Debugf("[UserService] user Id:%d followers:%d", user.ID, user.Followers)
		return user, nil
	})
}

package client

import (
	"context"
	"net/http"
	"net/url"

	"pulse/pkg/models"
	"pulse/pkg/service"
	"pulse/pkg/storage"
)

type Users struct {
	c *Client
}

var _ service.Users = (*Users)(nil)

func (u *Users) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := u.c.do(ctx, http.MethodGet, "/users", nil, nil, &users, storage.ErrUserNotFound)
	return users, err
}

func (u *Users) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := u.c.do(ctx, http.MethodGet, idPath("users", id), nil, nil, &user, storage.ErrUserNotFound)
	return user, err
}

func (u *Users) Create(ctx context.Context, draft models.UserDraft) (models.User, error) {
	var user models.User
	err := u.c.do(ctx, http.MethodPost, "/users", nil, draft, &user, storage.ErrUserNotFound)
	return user, err
}

func (u *Users) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := u.c.do(ctx, http.MethodPatch, idPath("users", id), nil, patch, &user, storage.ErrUserNotFound)
	return user, err
}

func (u *Users) Delete(ctx context.Context, id string) (bool, error) {
	var res deleteResponse
	if err := u.c.do(ctx, http.MethodDelete, idPath("users", id), nil, nil, &res, storage.ErrUserNotFound); err != nil {
		return false, err
	}
	return res.Deleted, nil
}

func (u *Users) Follow(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := u.c.do(ctx, http.MethodPost, idPath("users", id, "/follow"), nil, nil, &user, storage.ErrUserNotFound)
	return user, err
}

func (u *Users) Unfollow(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := u.c.do(ctx, http.MethodDelete, idPath("users", id, "/follow"), nil, nil, &user, storage.ErrUserNotFound)
	return user, err
}

// Search runs a user search on the server.
func (u *Users) Search(ctx context.Context, q string) ([]models.User, error) {
	var users []models.User
	err := u.c.do(ctx, http.MethodGet, "/search/users", url.Values{"q": {q}}, nil, &users, storage.ErrUserNotFound)
	return users, err
}

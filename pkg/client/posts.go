package client

import (
	"context"
	"net/http"
	"net/url"

	"pulse/pkg/models"
	"pulse/pkg/service"
	"pulse/pkg/storage"
)

type Posts struct {
	c *Client
}

var _ service.Posts = (*Posts)(nil)

func (p *Posts) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := p.c.do(ctx, http.MethodGet, "/posts", nil, nil, &posts, storage.ErrPostNotFound)
	return posts, err
}

func (p *Posts) GetByID(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := p.c.do(ctx, http.MethodGet, idPath("posts", id), nil, nil, &post, storage.ErrPostNotFound)
	return post, err
}

func (p *Posts) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := p.c.do(ctx, http.MethodGet, idPath("users", userID, "/posts"), nil, nil, &posts, storage.ErrPostNotFound)
	return posts, err
}

func (p *Posts) Create(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	var post models.Post
	err := p.c.do(ctx, http.MethodPost, "/posts", nil, draft, &post, storage.ErrPostNotFound)
	return post, err
}

func (p *Posts) Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	var post models.Post
	err := p.c.do(ctx, http.MethodPatch, idPath("posts", id), nil, patch, &post, storage.ErrPostNotFound)
	return post, err
}

func (p *Posts) Delete(ctx context.Context, id string) (bool, error) {
	var res deleteResponse
	if err := p.c.do(ctx, http.MethodDelete, idPath("posts", id), nil, nil, &res, storage.ErrPostNotFound); err != nil {
		return false, err
	}
	return res.Deleted, nil
}

func (p *Posts) Like(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := p.c.do(ctx, http.MethodPost, idPath("posts", id, "/like"), nil, nil, &post, storage.ErrPostNotFound)
	return post, err
}

func (p *Posts) Unlike(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := p.c.do(ctx, http.MethodDelete, idPath("posts", id, "/like"), nil, nil, &post, storage.ErrPostNotFound)
	return post, err
}

// Search runs a post search on the server.
func (p *Posts) Search(ctx context.Context, q string) ([]models.Post, error) {
	var posts []models.Post
	err := p.c.do(ctx, http.MethodGet, "/search/posts", url.Values{"q": {q}}, nil, &posts, storage.ErrPostNotFound)
	return posts, err
}

func (p *Posts) Hashtags(ctx context.Context, q string) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	err := p.c.do(ctx, http.MethodGet, "/search/hashtags", url.Values{"q": {q}}, nil, &tags, storage.ErrPostNotFound)
	return tags, err
}

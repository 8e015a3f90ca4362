package client

import (
	"context"
	"net/http"

	"pulse/pkg/models"
	"pulse/pkg/service"
	"pulse/pkg/storage"
)

type Comments struct {
	c *Client
}

var _ service.Comments = (*Comments)(nil)

func (cc *Comments) GetAll(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	err := cc.c.do(ctx, http.MethodGet, "/comments", nil, nil, &comments, storage.ErrCommentNotFound)
	return comments, err
}

func (cc *Comments) GetByID(ctx context.Context, id string) (models.Comment, error) {
	var comment models.Comment
	err := cc.c.do(ctx, http.MethodGet, idPath("comments", id), nil, nil, &comment, storage.ErrCommentNotFound)
	return comment, err
}

func (cc *Comments) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := cc.c.do(ctx, http.MethodGet, idPath("posts", postID, "/comments"), nil, nil, &comments, storage.ErrCommentNotFound)
	return comments, err
}

func (cc *Comments) Create(ctx context.Context, draft models.CommentDraft) (models.Comment, error) {
	var comment models.Comment
	err := cc.c.do(ctx, http.MethodPost, "/comments", nil, draft, &comment, storage.ErrCommentNotFound)
	return comment, err
}

func (cc *Comments) Update(ctx context.Context, id string, patch models.CommentPatch) (models.Comment, error) {
	var comment models.Comment
	err := cc.c.do(ctx, http.MethodPatch, idPath("comments", id), nil, patch, &comment, storage.ErrCommentNotFound)
	return comment, err
}

func (cc *Comments) Delete(ctx context.Context, id string) (bool, error) {
	var res deleteResponse
	if err := cc.c.do(ctx, http.MethodDelete, idPath("comments", id), nil, nil, &res, storage.ErrCommentNotFound); err != nil {
		return false, err
	}
	return res.Deleted, nil
}

func (cc *Comments) Like(ctx context.Context, id string) (models.Comment, error) {
	var comment models.Comment
	err := cc.c.do(ctx, http.MethodPost, idPath("comments", id, "/like"), nil, nil, &comment, storage.ErrCommentNotFound)
	return comment, err
}

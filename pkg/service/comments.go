package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"pulse/pkg/models"
	"pulse/pkg/storage"
)

// Comments is the comment operation set. There is deliberately no Unlike.
type Comments interface {
	GetAll(ctx context.Context) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (models.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Create(ctx context.Context, draft models.CommentDraft) (models.Comment, error)
	Update(ctx context.Context, id string, patch models.CommentPatch) (models.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
	Like(ctx context.Context, id string) (models.Comment, error)
}

type CommentService struct {
	store storage.CommentStore
	r     runner
}

var _ Comments = (*CommentService)(nil)

func NewCommentService(store storage.CommentStore, opts ...Option) *CommentService {
	return &CommentService{store: store, r: newRunner("CommentService", opts)}
}

func (s *CommentService) GetAll(ctx context.Context) ([]models.Comment, error) {
	return call(ctx, &s.r, OpList, func() ([]models.Comment, error) {
		return s.store.Comments(ctx), nil
	})
}

func (s *CommentService) GetByID(ctx context.Context, id string) (models.Comment, error) {
	return call(ctx, &s.r, OpGet, func() (models.Comment, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.Comment{}, storage.ErrCommentNotFound
		}
		return s.store.Comment(ctx, n)
	})
}

// GetByPostID returns the comments whose PostID equals postID exactly, in
// collection order rather than by time.
func (s *CommentService) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	return call(ctx, &s.r, OpFilter, func() ([]models.Comment, error) {
		return s.store.CommentsByPost(ctx, postID), nil
	})
}

// Create requires a PostID but does not check that the post exists.
func (s *CommentService) Create(ctx context.Context, draft models.CommentDraft) (models.Comment, error) {
	return call(ctx, &s.r, OpCreate, func() (models.Comment, error) {
		comment, err := s.store.AddComment(ctx, draft)
		if err != nil {
			return models.Comment{}, err
		}
		log.Debugf("[CommentService] created comment Id:%d on post %s", comment.ID, comment.PostID)
		return comment, nil
	})
}

func (s *CommentService) Update(ctx context.Context, id string, patch models.CommentPatch) (models.Comment, error) {
	return call(ctx, &s.r, OpUpdate, func() (models.Comment, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.Comment{}, storage.ErrCommentNotFound
		}
		comment, err := s.store.UpdateComment(ctx, n, patch)
		if err != nil {
			return models.Comment{}, err
		}
		log.Debugf("[CommentService] updated comment Id:%d", comment.ID)
		return comment, nil
	})
}

func (s *CommentService) Delete(ctx context.Context, id string) (bool, error) {
	return call(ctx, &s.r, OpDelete, func() (bool, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return false, storage.ErrCommentNotFound
		}
		if err := s.store.DeleteComment(ctx, n); err != nil {
			return false, err
		}
		log.Debugf("[CommentService] deleted comment Id:%d", n)
		return true, nil
	})
}

func (s *CommentService) Like(ctx context.Context, id string) (models.Comment, error) {
	return call(ctx, &s.r, OpReact, func() (models.Comment, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.Comment{}, storage.ErrCommentNotFound
		}
		comment, err := s.store.LikeComment(ctx, n)
		if err != nil {
			return models.Comment{}, err
		}
		log.Debugf("[CommentService] comment Id:%d likes:%d", comment.ID, comment.Likes)
		return comment, nil
	})
}

package service

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"pulse/pkg/models"
	"pulse/pkg/storage"
)

// Posts is the post operation set shared by the in-process service and
// remote clients. Identities are strings and parsed leniently.
type Posts interface {
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Post, error)
	Create(ctx context.Context, draft models.PostDraft) (models.Post, error)
	Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	Like(ctx context.Context, id string) (models.Post, error)
	Unlike(ctx context.Context, id string) (models.Post, error)
}

type PostService struct {
	store storage.PostStore
	r     runner
}

var _ Posts = (*PostService)(nil)

func NewPostService(store storage.PostStore, opts ...Option) *PostService {
	return &PostService{store: store, r: newRunner("PostService", opts)}
}

// GetAll returns every post, newest first.
func (s *PostService) GetAll(ctx context.Context) ([]models.Post, error) {
	return call(ctx, &s.r, OpList, func() ([]models.Post, error) {
		posts := s.store.Posts(ctx)
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Timestamp.After(posts[j].Timestamp)
		})
		return posts, nil
	})
}

func (s *PostService) GetByID(ctx context.Context, id string) (models.Post, error) {
	return call(ctx, &s.r, OpGet, func() (models.Post, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.Post{}, storage.ErrPostNotFound
		}
		return s.store.Post(ctx, n)
	})
}

// GetByUserID returns the posts whose author is userID, in collection order.
func (s *PostService) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	return call(ctx, &s.r, OpFilter, func() ([]models.Post, error) {
		return s.store.PostsByAuthor(ctx, userID), nil
	})
}

// Create does not validate content; callers check it before submitting.
func (s *PostService) Create(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	return call(ctx, &s.r, OpCreate, func() (models.Post, error) {
		post, err := s.store.AddPost(ctx, draft)
		if err != nil {
			return models.Post{}, err
		}
		log.Debugf("[PostService] created post Id:%d id:%s", post.ID, post.Key)
		return post, nil
	})
}

func (s *PostService) Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	return call(ctx, &s.r, OpUpdate, func() (models.Post, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.Post{}, storage.ErrPostNotFound
		}
		post, err := s.store.UpdatePost(ctx, n, patch)
		if err != nil {
			return models.Post{}, err
		}
		log.Debugf("[PostService] updated post Id:%d", post.ID)
		return post, nil
	})
}

func (s *PostService) Delete(ctx context.Context, id string) (bool, error) {
	return call(ctx, &s.r, OpDelete, func() (bool, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return false, storage.ErrPostNotFound
		}
		if err := s.store.DeletePost(ctx, n); err != nil {
			return false, err
		}
		log.Debugf("[PostService] deleted post Id:%d", n)
		return true, nil
	})
}

func (s *PostService) Like(ctx context.Context, id string) (models.Post, error) {
	return s.adjustLikes(ctx, id, 1)
}

// Unlike decrements the like counter, stopping at zero.
func (s *PostService) Unlike(ctx context.Context, id string) (models.Post, error) {
	return s.adjustLikes(ctx, id, -1)
}

func (s *PostService) adjustLikes(ctx context.Context, id string, delta int) (models.Post, error) {
	return call(ctx, &s.r, OpReact, func() (models.Post, error) {
		n, ok := storage.ParseID(id)
		if !ok {
			return models.Post{}, storage.ErrPostNotFound
		}
		post, err := s.store.AdjustLikes(ctx, n, delta)
		if err != nil {
			return models.Post{}, err
		}
		log.Debugf("[PostService] post Id:%d likes:%d", post.ID, post.Likes)
		return post, nil
	})
}

package memdb

import (
	"context"
	"slices"
	"sync"

	"pulse/pkg/models"
	"pulse/pkg/storage"
)

type PostStore struct {
	mu    sync.Mutex
	posts []models.Post
	ids   idSeq
	opts  options
}

var _ storage.PostStore = (*PostStore)(nil)

func NewPostStore(posts []models.Post, opts ...Option) *PostStore {
	s := PostStore{
		posts: make([]models.Post, 0, len(posts)),
		opts:  newOptions(opts),
	}
	for _, p := range posts {
		s.posts = append(s.posts, p.Clone())
		s.ids.observe(p.ID)
	}

	return &s
}

func (s *PostStore) Posts(ctx context.Context) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p.Clone())
	}

	return posts
}

func (s *PostStore) Post(ctx context.Context, id int) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Post{}, storage.ErrPostNotFound
	}

	return s.posts[i].Clone(), nil
}

func (s *PostStore) PostsByAuthor(ctx context.Context, authorID string) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := []models.Post{}
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			posts = append(posts, p.Clone())
		}
	}

	return posts
}

// AddPost appends a post built from draft. Counters start at zero and the
// timestamp and opaque key come from the store clock.
func (s *PostStore) AddPost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	post := models.Post{
		ID:           s.ids.next(),
		Key:          opaqueKey("post", now),
		AuthorID:     draft.AuthorID,
		AuthorName:   draft.AuthorName,
		AuthorAvatar: draft.AuthorAvatar,
		Content:      draft.Content,
		Hashtags:     slices.Clone(draft.Hashtags),
		ImageURL:     draft.ImageURL,
		Timestamp:    now.UTC(),
	}
	if post.Hashtags == nil {
		post.Hashtags = []string{}
	}
	s.posts = append(s.posts, post)

	return post.Clone(), nil
}

func (s *PostStore) UpdatePost(ctx context.Context, id int, patch models.PostPatch) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Post{}, storage.ErrPostNotFound
	}
	patch.Apply(&s.posts[i])

	return s.posts[i].Clone(), nil
}

func (s *PostStore) DeletePost(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.ErrPostNotFound
	}
	s.posts = slices.Delete(s.posts, i, i+1)

	return nil
}

func (s *PostStore) AdjustLikes(ctx context.Context, id int, delta int) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Post{}, storage.ErrPostNotFound
	}
	s.posts[i].Likes = max(0, s.posts[i].Likes+delta)

	return s.posts[i].Clone(), nil
}

// index must be called with s.mu held.
func (s *PostStore) index(id int) int {
	return slices.IndexFunc(s.posts, func(p models.Post) bool {
		return p.ID == id
	})
}

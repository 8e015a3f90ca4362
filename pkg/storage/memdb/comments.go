package memdb

import (
	"context"
	"slices"
	"sync"

	"pulse/pkg/models"
	"pulse/pkg/storage"
)

type CommentStore struct {
	mu       sync.Mutex
	comments []models.Comment
	ids      idSeq
	opts     options
}

var _ storage.CommentStore = (*CommentStore)(nil)

func NewCommentStore(comments []models.Comment, opts ...Option) *CommentStore {
	s := CommentStore{
		comments: make([]models.Comment, 0, len(comments)),
		opts:     newOptions(opts),
	}
	for _, c := range comments {
		s.comments = append(s.comments, c.Clone())
		s.ids.observe(c.ID)
	}

	return &s
}

func (s *CommentStore) Comments(ctx context.Context) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		comments = append(comments, c.Clone())
	}

	return comments
}

func (s *CommentStore) Comment(ctx context.Context, id int) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Comment{}, storage.ErrCommentNotFound
	}

	return s.comments[i].Clone(), nil
}

// CommentsByPost returns the comments of a post in collection order.
func (s *CommentStore) CommentsByPost(ctx context.Context, postID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c.Clone())
		}
	}

	return comments
}

// AddComment appends a comment built from draft. The referenced post and
// parent are not checked for existence.
func (s *CommentStore) AddComment(ctx context.Context, draft models.CommentDraft) (models.Comment, error) {
	if draft.PostID == "" {
		return models.Comment{}, storage.ErrPostIDNotProvided
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	comment := models.Comment{
		ID:           s.ids.next(),
		Key:          opaqueKey("comment", now),
		PostID:       draft.PostID,
		ParentID:     draft.ParentID,
		Content:      draft.Content,
		AuthorName:   draft.AuthorName,
		AuthorAvatar: draft.AuthorAvatar,
		Timestamp:    now.UTC(),
	}
	comment = comment.Clone()
	s.comments = append(s.comments, comment)

	return comment.Clone(), nil
}

func (s *CommentStore) UpdateComment(ctx context.Context, id int, patch models.CommentPatch) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Comment{}, storage.ErrCommentNotFound
	}
	patch.Apply(&s.comments[i])

	return s.comments[i].Clone(), nil
}

func (s *CommentStore) DeleteComment(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return storage.ErrCommentNotFound
	}
	s.comments = slices.Delete(s.comments, i, i+1)

	return nil
}

// LikeComment increments the like counter. Comments have no unlike.
func (s *CommentStore) LikeComment(ctx context.Context, id int) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Comment{}, storage.ErrCommentNotFound
	}
	s.comments[i].Likes++

	return s.comments[i].Clone(), nil
}

func (s *CommentStore) index(id int) int {
	return slices.IndexFunc(s.comments, func(c models.Comment) bool {
		return c.ID == id
	})
}

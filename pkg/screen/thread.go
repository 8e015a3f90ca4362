package screen

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"pulse/pkg/models"
	"pulse/pkg/service"
	"pulse/pkg/storage"
)

// Author is the current user as stamped onto new posts and comments.
type Author struct {
	ID     string
	Name   string
	Avatar string
}

func AuthorFrom(u models.User) Author {
	return Author{ID: u.Key, Name: u.DisplayName, Avatar: u.Avatar}
}

// Thread is the comment section of one post. Comments with no parent are
// top-level; every other comment is shown as a reply under its top-level
// ancestor, however deep the reply chain goes.
type Thread struct {
	comments service.Comments
	postID   string
	author   Author
	checker  Checker
	notify   Notifier

	mu    sync.Mutex
	items []models.Comment
	err   error
}

// NewThread builds the thread of the post whose opaque identity is postID.
// checker may be nil.
func NewThread(comments service.Comments, postID string, author Author, checker Checker, notify Notifier) *Thread {
	return &Thread{
		comments: comments,
		postID:   postID,
		author:   author,
		checker:  checker,
		notify:   notifierOrDefault(notify),
	}
}

func (t *Thread) Load(ctx context.Context) error {
	comments, err := t.comments.GetByPostID(ctx, t.postID)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
	if err != nil {
		t.notify.Error("Failed to load comments")
		return err
	}
	t.items = comments

	return nil
}

func (t *Thread) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Thread) TopLevel() []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	res := []models.Comment{}
	for _, c := range t.items {
		if !c.IsReply() {
			res = append(res, c)
		}
	}
	return res
}

// Replies returns the replies rendered under the top-level comment rootKey.
func (t *Thread) Replies(rootKey string) []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	byKey := make(map[string]models.Comment, len(t.items))
	for _, c := range t.items {
		byKey[c.Key] = c
	}

	res := []models.Comment{}
	for _, c := range t.items {
		if !c.IsReply() {
			continue
		}
		if root, ok := rootOf(c, byKey); ok && root == rootKey {
			res = append(res, c)
		}
	}
	return res
}

// Orphans returns replies whose chain never reaches a top-level comment of
// this thread. They are not rendered.
func (t *Thread) Orphans() []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	byKey := make(map[string]models.Comment, len(t.items))
	for _, c := range t.items {
		byKey[c.Key] = c
	}

	res := []models.Comment{}
	for _, c := range t.items {
		if _, ok := rootOf(c, byKey); c.IsReply() && !ok {
			res = append(res, c)
		}
	}
	return res
}

// rootOf follows parent links up to a comment without a parent.
func rootOf(c models.Comment, byKey map[string]models.Comment) (string, bool) {
	seen := map[string]bool{c.Key: true}
	for c.ParentID != nil {
		parent, ok := byKey[*c.ParentID]
		if !ok || seen[parent.Key] {
			return "", false
		}
		seen[parent.Key] = true
		c = parent
	}
	return c.Key, true
}

// Add posts a comment, or a reply when replyTo holds a comment's opaque
// identity. Blank content is rejected before any request is made.
func (t *Thread) Add(ctx context.Context, content string, replyTo *string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, fmt.Errorf("%w: comment is empty", storage.ErrValidation)
	}
	if t.checker != nil {
		if err := t.checker.Validate(content); err != nil {
			t.notify.Error("Your comment could not be posted")
			return models.Comment{}, err
		}
	}

	comment, err := t.comments.Create(ctx, models.CommentDraft{
		PostID:       t.postID,
		ParentID:     replyTo,
		Content:      content,
		AuthorName:   t.author.Name,
		AuthorAvatar: t.author.Avatar,
	})
	if err != nil {
		t.notify.Error("Failed to add comment")
		return models.Comment{}, err
	}

	t.mu.Lock()
	t.items = append(t.items, comment)
	t.mu.Unlock()

	return comment, nil
}

// Like bumps the comment's counter locally and then asks the service.
// Comments cannot be unliked.
func (t *Thread) Like(ctx context.Context, commentKey string) Result[models.Comment] {
	t.mu.Lock()
	i := slices.IndexFunc(t.items, func(c models.Comment) bool { return c.Key == commentKey })
	if i < 0 {
		t.mu.Unlock()
		return Result[models.Comment]{Err: storage.ErrCommentNotFound}
	}
	id := storage.FormatID(t.items[i].ID)
	t.mu.Unlock()

	res := Optimistic(ctx,
		func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i := range t.items {
				if t.items[i].Key == commentKey {
					t.items[i].Likes++
				}
			}
		},
		func(ctx context.Context) (models.Comment, error) { return t.comments.Like(ctx, id) },
		t.Load,
	)
	if !res.OK() {
		t.notify.Error("Failed to like comment")
	}
	return res
}

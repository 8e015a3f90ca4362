package storage

import (
	"context"
	"errors"
	"fmt"

	"pulse/pkg/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrSimulatedFailure = errors.New("simulated failure")

	ErrPostNotFound    = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)

	ErrPostIDNotProvided = fmt.Errorf("%w: postId not provided", ErrValidation)
)

// PostStore owns the post collection. Returned records are copies.
type PostStore interface {
	Posts(ctx context.Context) []models.Post
	Post(ctx context.Context, id int) (models.Post, error)
	PostsByAuthor(ctx context.Context, authorID string) []models.Post
	AddPost(ctx context.Context, draft models.PostDraft) (models.Post, error)
	UpdatePost(ctx context.Context, id int, patch models.PostPatch) (models.Post, error)
	DeletePost(ctx context.Context, id int) error
	// AdjustLikes adds delta to the like counter, never going below zero.
	AdjustLikes(ctx context.Context, id int, delta int) (models.Post, error)
}

// CommentStore owns the comment collection. Returned records are copies.
type CommentStore interface {
	Comments(ctx context.Context) []models.Comment
	Comment(ctx context.Context, id int) (models.Comment, error)
	CommentsByPost(ctx context.Context, postID string) []models.Comment
	AddComment(ctx context.Context, draft models.CommentDraft) (models.Comment, error)
	UpdateComment(ctx context.Context, id int, patch models.CommentPatch) (models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
	LikeComment(ctx context.Context, id int) (models.Comment, error)
}

// UserStore owns the user collection. Returned records are copies.
type UserStore interface {
	Users(ctx context.Context) []models.User
	User(ctx context.Context, id int) (models.User, error)
	// FindUser returns the first user whose numeric identity equals id
	// (when hasID is set) or whose opaque identity equals key.
	FindUser(ctx context.Context, id int, hasID bool, key string) (models.User, error)
	AddUser(ctx context.Context, draft models.UserDraft) (models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id int) error
	// AdjustFollowers adds delta to the follower counter, never going below zero.
	AdjustFollowers(ctx context.Context, id int, delta int) (models.User, error)
}

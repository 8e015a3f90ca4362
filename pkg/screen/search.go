package screen

import (
	"context"

	"pulse/pkg/models"
	"pulse/pkg/search"
	"pulse/pkg/service"
)

// Search answers post, user and hashtag queries. Each query fetches the full
// collection from the service and filters it locally.
type Search struct {
	posts  service.Posts
	users  service.Users
	notify Notifier
}

func NewSearch(posts service.Posts, users service.Users, notify Notifier) *Search {
	return &Search{posts: posts, users: users, notify: notifierOrDefault(notify)}
}

func (s *Search) Posts(ctx context.Context, q string) ([]models.Post, error) {
	posts, err := s.posts.GetAll(ctx)
	if err != nil {
		s.notify.Error("Failed to search posts")
		return nil, err
	}
	return search.Posts(posts, q), nil
}

func (s *Search) Users(ctx context.Context, q string) ([]models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		s.notify.Error("Failed to search users")
		return nil, err
	}
	return search.Users(users, q), nil
}

func (s *Search) Hashtags(ctx context.Context, q string) ([]models.Hashtag, error) {
	posts, err := s.posts.GetAll(ctx)
	if err != nil {
		s.notify.Error("Failed to search hashtags")
		return nil, err
	}
	return search.Hashtags(posts, q), nil
}

package screen

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"pulse/pkg/models"
	"pulse/pkg/service"
	"pulse/pkg/storage"
)

type ProfileState struct {
	User    *models.User
	Posts   []models.Post
	Loading bool
	Err     error
}

type Profile struct {
	users  service.Users
	posts  service.Posts
	notify Notifier

	mu    sync.Mutex
	state ProfileState
}

func NewProfile(users service.Users, posts service.Posts, notify Notifier) *Profile {
	return &Profile{users: users, posts: posts, notify: notifierOrDefault(notify)}
}

func (p *Profile) State() ProfileState {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	if p.state.User != nil {
		u := *p.state.User
		s.User = &u
	}
	s.Posts = slices.Clone(p.state.Posts)
	return s
}

// Load fetches the user and the user's posts in parallel. userRef is used
// both for the user lookup and as the posts' author identity.
func (p *Profile) Load(ctx context.Context, userRef string) error {
	p.mu.Lock()
	p.state.Loading = true
	p.state.Err = nil
	p.mu.Unlock()

	var (
		user  models.User
		posts []models.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = p.users.GetByID(gctx, userRef)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = p.posts.GetByUserID(gctx, userRef)
		return err
	})
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Loading = false
	if err != nil {
		p.state.Err = err
		p.notify.Error("Failed to load profile")
		return err
	}
	p.state.User = &user
	p.state.Posts = posts

	return nil
}

// PostCount is the number shown on the profile's posts tab.
func (p *Profile) PostCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.state.Posts)
}

func (p *Profile) Follow(ctx context.Context) Result[models.User] {
	res := p.react(ctx, 1, p.users.Follow)
	if res.OK() {
		p.notify.Success(fmt.Sprintf("You are now following %s!", res.Value.DisplayName))
	} else {
		p.notify.Error("Failed to follow user")
	}
	return res
}

func (p *Profile) Unfollow(ctx context.Context) Result[models.User] {
	res := p.react(ctx, -1, p.users.Unfollow)
	if !res.OK() {
		p.notify.Error("Failed to unfollow user")
	}
	return res
}

func (p *Profile) react(
	ctx context.Context,
	delta int,
	request func(context.Context, string) (models.User, error),
) Result[models.User] {
	p.mu.Lock()
	if p.state.User == nil {
		p.mu.Unlock()
		return Result[models.User]{Err: storage.ErrUserNotFound}
	}
	id := storage.FormatID(p.state.User.ID)
	p.mu.Unlock()

	return Optimistic(ctx,
		func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.state.User != nil {
				p.state.User.Followers = max(0, p.state.User.Followers+delta)
			}
		},
		func(ctx context.Context) (models.User, error) { return request(ctx, id) },
		func(ctx context.Context) error { return p.reloadUser(ctx, id) },
	)
}

func (p *Profile) reloadUser(ctx context.Context, id string) error {
	user, err := p.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.User = &user
	return nil
}

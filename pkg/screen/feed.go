package screen

import (
	"context"
	"slices"
	"strings"
	"sync"

	"pulse/pkg/models"
	"pulse/pkg/service"
	"pulse/pkg/storage"
)

// FeedState is a snapshot of the feed view.
type FeedState struct {
	Posts      []models.Post
	Loading    bool
	Refreshing bool
	Err        error
}

type Feed struct {
	posts  service.Posts
	notify Notifier

	mu    sync.Mutex
	state FeedState
}

func NewFeed(posts service.Posts, notify Notifier) *Feed {
	return &Feed{posts: posts, notify: notifierOrDefault(notify)}
}

func (f *Feed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.state
	s.Posts = slices.Clone(f.state.Posts)
	return s
}

// Load fetches the feed showing the loading state. It is also the retry action.
func (f *Feed) Load(ctx context.Context) error {
	return f.load(ctx, true)
}

// Refresh reloads the feed in the background, keeping current posts visible.
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.state.Refreshing = true
	f.mu.Unlock()

	return f.load(ctx, false)
}

func (f *Feed) load(ctx context.Context, showLoading bool) error {
	f.mu.Lock()
	if showLoading {
		f.state.Loading = true
	}
	f.state.Err = nil
	f.mu.Unlock()

	posts, err := f.posts.GetAll(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Loading = false
	f.state.Refreshing = false
	if err != nil {
		f.state.Err = err
		f.notify.Error("Failed to load posts")
		return err
	}
	f.state.Posts = posts

	return nil
}

// Like bumps the post's counter locally and then asks the service.
// postKey is the post's opaque identity.
func (f *Feed) Like(ctx context.Context, postKey string) Result[models.Post] {
	res := f.react(ctx, postKey, 1, f.posts.Like)
	if res.OK() {
		f.notify.Success("Post liked!")
	} else {
		f.notify.Error("Failed to like post")
	}
	return res
}

func (f *Feed) Unlike(ctx context.Context, postKey string) Result[models.Post] {
	res := f.react(ctx, postKey, -1, f.posts.Unlike)
	if !res.OK() {
		f.notify.Error("Failed to unlike post")
	}
	return res
}

// Share returns the link to the post under baseURL and reports it as copied.
func (f *Feed) Share(baseURL, postKey string) (string, error) {
	f.mu.Lock()
	found := slices.ContainsFunc(f.state.Posts, func(p models.Post) bool { return p.Key == postKey })
	f.mu.Unlock()
	if !found {
		f.notify.Error("Failed to copy link")
		return "", storage.ErrPostNotFound
	}

	link := strings.TrimRight(baseURL, "/") + "/post/" + postKey
	f.notify.Success("Link copied to clipboard!")
	return link, nil
}

func (f *Feed) react(
	ctx context.Context,
	postKey string,
	delta int,
	request func(context.Context, string) (models.Post, error),
) Result[models.Post] {
	f.mu.Lock()
	i := slices.IndexFunc(f.state.Posts, func(p models.Post) bool { return p.Key == postKey })
	if i < 0 {
		f.mu.Unlock()
		return Result[models.Post]{Err: storage.ErrPostNotFound}
	}
	id := storage.FormatID(f.state.Posts[i].ID)
	f.mu.Unlock()

	return Optimistic(ctx,
		func() { f.adjustLocal(postKey, delta) },
		func(ctx context.Context) (models.Post, error) { return request(ctx, id) },
		func(ctx context.Context) error { return f.load(ctx, false) },
	)
}

func (f *Feed) adjustLocal(postKey string, delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.state.Posts {
		if f.state.Posts[i].Key == postKey {
			f.state.Posts[i].Likes = max(0, f.state.Posts[i].Likes+delta)
		}
	}
}

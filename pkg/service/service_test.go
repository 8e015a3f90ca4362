package service

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"pulse/pkg/models"
	"pulse/pkg/storage"
	"pulse/pkg/storage/memdb"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	exitCode := m.Run()
	os.Exit(exitCode)
}

func noDelay() Option {
	return WithLatency(Latency{})
}

func newPostService(t *testing.T, now time.Time, opts ...Option) *PostService {
	t.Helper()
	store := memdb.NewPostStore([]models.Post{
		{ID: 1, Key: "post1", AuthorID: "user1", Content: "oldest", Likes: 0, Timestamp: testNow.Add(-3 * time.Hour)},
		{ID: 2, Key: "post2", AuthorID: "user2", Content: "newest", Likes: 5, Timestamp: testNow.Add(-1 * time.Hour)},
		{ID: 3, Key: "post3", AuthorID: "user1", Content: "middle", Likes: 1, Timestamp: testNow.Add(-2 * time.Hour)},
	}, memdb.WithClock(func() time.Time { return now }))

	return NewPostService(store, append([]Option{noDelay()}, opts...)...)
}

func postContents(posts []models.Post) []string {
	var s []string
	for _, p := range posts {
		s = append(s, p.Content)
	}
	return s
}

func TestPostService_GetAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	// The clock is earlier than every fixture, so the new post must sort last.
	s := newPostService(t, testNow.Add(-24*time.Hour))

	if _, err := s.Create(ctx, models.PostDraft{Content: "backdated"}); err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}

	posts, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"newest", "middle", "oldest", "backdated"}
	if got := postContents(posts); !reflect.DeepEqual(got, want) {
		t.Errorf("want order %v, got %v", want, got)
	}
}

func TestPostService_CreateAssignsNextID(t *testing.T) {
	s := newPostService(t, testNow)

	post, err := s.Create(context.Background(), models.PostDraft{Content: "hi"})
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}
	if post.ID != 4 {
		t.Errorf("want Id 4, got %d", post.ID)
	}
	if post.Likes != 0 || post.Comments != 0 {
		t.Errorf("want zero counters, got likes=%d comments=%d", post.Likes, post.Comments)
	}
}

func TestPostService_CreateIntoEmpty(t *testing.T) {
	s := NewPostService(memdb.NewPostStore(nil), noDelay())

	post, err := s.Create(context.Background(), models.PostDraft{Content: "first"})
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}
	if post.ID != 1 {
		t.Errorf("want Id 1, got %d", post.ID)
	}
}

func TestPostService_LikeUnlike(t *testing.T) {
	ctx := context.Background()
	s := newPostService(t, testNow)

	post, err := s.Like(ctx, "2")
	if err != nil {
		t.Fatalf("unexpected error liking post: %v", err)
	}
	if post.Likes != 6 {
		t.Errorf("want likes 6, got %d", post.Likes)
	}

	post, err = s.Unlike(ctx, "2")
	if err != nil {
		t.Fatalf("unexpected error unliking post: %v", err)
	}
	if post.Likes != 5 {
		t.Errorf("want likes 5, got %d", post.Likes)
	}

	for i := 0; i < 3; i++ {
		post, err = s.Unlike(ctx, "1")
		if err != nil {
			t.Fatalf("unexpected error unliking post: %v", err)
		}
	}
	if post.Likes != 0 {
		t.Errorf("want likes floored at 0, got %d", post.Likes)
	}

	if _, err := s.Like(ctx, "99"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestPostService_GetByIDForms(t *testing.T) {
	ctx := context.Background()
	s := newPostService(t, testNow)

	fromString, err := s.GetByID(ctx, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromInt, err := s.GetByID(ctx, storage.FormatID(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fromString, fromInt) {
		t.Errorf("want identical posts, got\n%+v\n%+v", fromString, fromInt)
	}

	if _, err := s.GetByID(ctx, "post2"); !errors.Is(err, storage.ErrPostNotFound) {
		t.Errorf("want ErrPostNotFound for opaque id, got %v", err)
	}
}

func TestPostService_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	s := newPostService(t, testNow)

	ok, err := s.Delete(ctx, "3")
	if err != nil || !ok {
		t.Fatalf("want successful delete, got ok=%v err=%v", ok, err)
	}
	if _, err := s.GetByID(ctx, "3"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}
	if ok, err := s.Delete(ctx, "3"); ok || !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("want failed second delete, got ok=%v err=%v", ok, err)
	}
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()
	s := newPostService(t, testNow)

	content := "rewritten"
	post, err := s.Update(ctx, "1", models.PostPatch{Content: &content})
	if err != nil {
		t.Fatalf("unexpected error updating post: %v", err)
	}
	if post.Content != content || post.AuthorID != "user1" {
		t.Errorf("want merged post, got %+v", post)
	}

	if _, err := s.Update(ctx, "42", models.PostPatch{Content: &content}); !errors.Is(err, storage.ErrPostNotFound) {
		t.Errorf("want ErrPostNotFound, got %v", err)
	}
}

func TestPostService_GetByUserID(t *testing.T) {
	s := newPostService(t, testNow)

	posts, err := s.GetByUserID(context.Background(), "user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"oldest", "middle"}
	if got := postContents(posts); !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestCommentService_GetByPostID(t *testing.T) {
	ctx := context.Background()
	var comments []models.Comment
	for i := 1; i <= 30; i++ {
		postID := "post_other"
		if i%7 == 0 {
			postID = "post_target"
		}
		comments = append(comments, models.Comment{ID: i, PostID: postID})
	}
	s := NewCommentService(memdb.NewCommentStore(comments), noDelay())

	got, err := s.GetByPostID(ctx, "post_target")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []int
	for _, c := range got {
		if c.PostID != "post_target" {
			t.Errorf("want only post_target comments, got %+v", c)
		}
		ids = append(ids, c.ID)
	}
	if want := []int{7, 14, 21, 28}; !reflect.DeepEqual(ids, want) {
		t.Errorf("want ids %v, got %v", want, ids)
	}
}

func TestCommentService_CreateAndLike(t *testing.T) {
	ctx := context.Background()
	s := NewCommentService(memdb.NewCommentStore([]models.Comment{
		{ID: 1, Key: "comment1", PostID: "post1", Likes: 2},
	}), noDelay())

	if _, err := s.Create(ctx, models.CommentDraft{Content: "no post"}); !errors.Is(err, storage.ErrValidation) {
		t.Errorf("want ErrValidation without postId, got %v", err)
	}

	c, err := s.Create(ctx, models.CommentDraft{PostID: "missing_post", Content: "dangling ok"})
	if err != nil {
		t.Fatalf("unexpected error creating comment: %v", err)
	}
	if c.ID != 2 {
		t.Errorf("want Id 2, got %d", c.ID)
	}

	liked, err := s.Like(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error liking comment: %v", err)
	}
	if liked.Likes != 3 {
		t.Errorf("want likes 3, got %d", liked.Likes)
	}

	fromString, _ := s.GetByID(ctx, "1")
	fromInt, _ := s.GetByID(ctx, storage.FormatID(1))
	if !reflect.DeepEqual(fromString, fromInt) {
		t.Errorf("want identical comments, got\n%+v\n%+v", fromString, fromInt)
	}
}

func TestUserService_IdentityAsymmetry(t *testing.T) {
	ctx := context.Background()
	s := NewUserService(memdb.NewUserStore([]models.User{
		{ID: 1, Key: "user1", Username: "first", Followers: 10},
		{ID: 7, Key: "user_123", Username: "opaque", Followers: 3},
	}), noDelay())

	u, err := s.GetByID(ctx, "user_123")
	if err != nil {
		t.Fatalf("want lookup by opaque id to succeed, got %v", err)
	}
	if u.ID != 7 {
		t.Errorf("want user Id 7, got %d", u.ID)
	}

	if _, err := s.Follow(ctx, "user_123"); !errors.Is(err, storage.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound following by opaque id, got %v", err)
	}

	u, err = s.GetByID(ctx, "1")
	if err != nil || u.Key != "user1" {
		t.Fatalf("want user1 by numeric id, got %+v, %v", u, err)
	}
}

func TestUserService_FollowUnfollow(t *testing.T) {
	ctx := context.Background()
	s := NewUserService(memdb.NewUserStore([]models.User{
		{ID: 1, Key: "user1", Followers: 1},
	}), noDelay())

	u, err := s.Follow(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if u.Followers != 2 {
		t.Errorf("want followers 2, got %d", u.Followers)
	}

	for i := 0; i < 5; i++ {
		u, err = s.Unfollow(ctx, "1")
		if err != nil {
			t.Fatal(err)
		}
	}
	if u.Followers != 0 {
		t.Errorf("want followers floored at 0, got %d", u.Followers)
	}
}

func TestUserService_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := NewUserService(memdb.NewUserStore(nil), noDelay())

	u, err := s.Create(ctx, models.UserDraft{Username: "new", DisplayName: "New"})
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != 1 {
		t.Errorf("want Id 1, got %d", u.ID)
	}

	bio := "hello"
	u, err = s.Update(ctx, "1", models.UserPatch{Bio: &bio})
	if err != nil {
		t.Fatal(err)
	}
	if u.Bio != bio || u.Username != "new" {
		t.Errorf("want merged user, got %+v", u)
	}

	if ok, err := s.Delete(ctx, "1"); !ok || err != nil {
		t.Fatalf("want delete ok, got %v %v", ok, err)
	}
	if _, err := s.GetByID(ctx, "1"); !errors.Is(err, storage.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}

func TestCall_faultsSkipMutation(t *testing.T) {
	ctx := context.Background()
	s := newPostService(t, testNow, WithFaults(func(op Op) bool { return op == OpReact }))

	if _, err := s.Like(ctx, "2"); !errors.Is(err, storage.ErrSimulatedFailure) {
		t.Fatalf("want ErrSimulatedFailure, got %v", err)
	}

	post, err := s.GetByID(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	if post.Likes != 5 {
		t.Errorf("want likes unchanged at 5, got %d", post.Likes)
	}
}

func TestCall_abandonedMutationStillApplies(t *testing.T) {
	store := memdb.NewPostStore([]models.Post{{ID: 1, Likes: 0}})
	s := NewPostService(store, WithLatency(Latency{React: 20 * time.Millisecond}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Like(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		post, err := store.Post(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if post.Likes == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("want abandoned like to be applied, likes stayed at 0")
}

func TestCall_latency(t *testing.T) {
	store := memdb.NewPostStore([]models.Post{{ID: 1}})
	s := NewPostService(store, WithLatency(Latency{Get: 30 * time.Millisecond}))

	start := time.Now()
	if _, err := s.GetByID(context.Background(), "1"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("want at least 30ms of simulated latency, got %v", elapsed)
	}
}

func TestLatency_For(t *testing.T) {
	l := DefaultLatency()
	tests := []struct {
		op   Op
		want time.Duration
	}{
		{OpList, 300 * time.Millisecond},
		{OpGet, 200 * time.Millisecond},
		{OpFilter, 250 * time.Millisecond},
		{OpCreate, 400 * time.Millisecond},
		{OpUpdate, 300 * time.Millisecond},
		{OpDelete, 200 * time.Millisecond},
		{OpReact, 200 * time.Millisecond},
		{Op("unknown"), 0},
	}
	for _, tt := range tests {
		if got := l.For(tt.op); got != tt.want {
			t.Errorf("For(%s) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/h2non/gock"
	log "github.com/sirupsen/logrus"

	"pulse/pkg/api"
	"pulse/pkg/fixtures"
	"pulse/pkg/models"
	"pulse/pkg/screen"
	"pulse/pkg/service"
	"pulse/pkg/storage"
	"pulse/pkg/storage/memdb"
)

const (
	testURL       = "http://pulse.test"
	testRequestID = "9b4f6c5d-1a32-4d8f-b5a6-23c9e1f7d2a1"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	exitCode := m.Run()
	os.Exit(exitCode)
}

func TestPosts_GetByID(t *testing.T) {
	defer gock.Off()

	gock.New(testURL).
		Get("/posts/2").
		MatchHeader("X-Request-Id", testRequestID).
		Reply(http.StatusOK).
		JSON(map[string]any{"Id": 2, "id": "post2", "content": "ramen", "likes": 128})

	ctx := WithRequestID(context.Background(), testRequestID)
	post, err := New(testURL, nil).Posts().GetByID(ctx, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 2 || post.Key != "post2" || post.Likes != 128 {
		t.Errorf("want post2 with 128 likes, got %+v", post)
	}
	if !gock.IsDone() {
		t.Error("want all mocks to be called")
	}
}

func route(r *gock.Request, method, path string) *gock.Request {
	if method == http.MethodPost {
		return r.Post(path)
	}
	return r.Get(path)
}

func TestClient_statusErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		call   func(*Client) error
		want   error
	}{
		{
			name:   "post not found",
			method: http.MethodPost,
			path:   "/posts/9/like",
			status: http.StatusNotFound,
			call: func(c *Client) error {
				_, err := c.Posts().Like(context.Background(), "9")
				return err
			},
			want: storage.ErrPostNotFound,
		},
		{
			name:   "user not found",
			method: http.MethodPost,
			path:   "/users/user_123/follow",
			status: http.StatusNotFound,
			call: func(c *Client) error {
				_, err := c.Users().Follow(context.Background(), "user_123")
				return err
			},
			want: storage.ErrUserNotFound,
		},
		{
			name:   "validation",
			method: http.MethodPost,
			path:   "/comments",
			status: http.StatusUnprocessableEntity,
			call: func(c *Client) error {
				_, err := c.Comments().Create(context.Background(), models.CommentDraft{Content: "hi"})
				return err
			},
			want: storage.ErrValidation,
		},
		{
			name:   "simulated failure",
			method: http.MethodGet,
			path:   "/users",
			status: http.StatusServiceUnavailable,
			call: func(c *Client) error {
				_, err := c.Users().GetAll(context.Background())
				return err
			},
			want: storage.ErrSimulatedFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()
			route(gock.New(testURL), tt.method, tt.path).
				Reply(tt.status).
				BodyString("nope")

			err := tt.call(New(testURL, nil))
			if !errors.Is(err, tt.want) {
				t.Errorf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClient_generatesRequestID(t *testing.T) {
	defer gock.Off()

	gock.New(testURL).
		Delete("/posts/1").
		MatchHeader("X-Request-Id", "^[0-9a-f-]{36}$").
		Reply(http.StatusOK).
		JSON(map[string]bool{"deleted": true})

	ok, err := New(testURL, nil).Posts().Delete(context.Background(), "1")
	if err != nil || !ok {
		t.Fatalf("want delete ok, got %v %v", ok, err)
	}
}

// newServer serves the fixture data with no simulated latency.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds, err := fixtures.Default()
	if err != nil {
		t.Fatal(err)
	}
	ps, cs, us := memdb.New(ds)
	noDelay := service.WithLatency(service.Latency{})

	srv := httptest.NewServer(api.New("pulse-test", api.Services{
		Posts:    service.NewPostService(ps, noDelay),
		Comments: service.NewCommentService(cs, noDelay),
		Users:    service.NewUserService(us, noDelay),
	}, nil, nil).Router())
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_againstServer(t *testing.T) {
	ctx := context.Background()
	c := New(newServer(t).URL, nil)

	user, err := c.Users().GetByID(ctx, "user2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Users().Follow(ctx, user.Key); !errors.Is(err, storage.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound following by opaque id, got %v", err)
	}

	comment, err := c.Comments().Create(ctx, models.CommentDraft{PostID: "post4", Content: "Lovely"})
	if err != nil {
		t.Fatal(err)
	}
	if comment.ID != 8 {
		t.Errorf("want Id 8, got %d", comment.ID)
	}

	tags, err := c.Posts().Hashtags(ctx, "travel")
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 1 || tags[0].Count != 2 {
		t.Errorf("want travel counted twice, got %+v", tags)
	}
}

func TestClient_drivesScreens(t *testing.T) {
	ctx := context.Background()
	c := New(newServer(t).URL, nil)

	feed := screen.NewFeed(c.Posts(), nil)
	if err := feed.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if res := feed.Like(ctx, "post4"); !res.OK() {
		t.Fatal(res.Err)
	}

	post, err := c.Posts().GetByID(ctx, "4")
	if err != nil {
		t.Fatal(err)
	}
	if post.Likes != 88 {
		t.Errorf("want likes 88, got %d", post.Likes)
	}
}

package fixtures

import (
	"testing"
	"testing/fstest"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatalf("unexpected error loading bundled fixtures: %v", err)
	}

	if len(ds.Posts) == 0 || len(ds.Comments) == 0 || len(ds.Users) == 0 {
		t.Fatalf("want non-empty dataset, got %d posts, %d comments, %d users",
			len(ds.Posts), len(ds.Comments), len(ds.Users))
	}

	for _, p := range ds.Posts {
		if p.ID == 0 || p.Key == "" {
			t.Errorf("post %+v has no identity", p)
		}
		if p.Timestamp.IsZero() {
			t.Errorf("post Id:%d has zero timestamp", p.ID)
		}
	}

	var replies int
	for _, c := range ds.Comments {
		if c.IsReply() {
			replies++
		}
	}
	if replies == 0 {
		t.Error("want at least one reply in bundled comments")
	}
}

func TestLoad(t *testing.T) {
	ds, err := Load("data")
	if err != nil {
		t.Fatalf("unexpected error loading fixtures from dir: %v", err)
	}

	def, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Posts) != len(def.Posts) {
		t.Errorf("want %d posts, got %d", len(def.Posts), len(ds.Posts))
	}
}

func TestFromFS_errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "missing users file",
			fsys: fstest.MapFS{
				"posts.json":    {Data: []byte(`[]`)},
				"comments.json": {Data: []byte(`[]`)},
			},
		},
		{
			name: "malformed posts file",
			fsys: fstest.MapFS{
				"posts.json":    {Data: []byte(`{`)},
				"comments.json": {Data: []byte(`[]`)},
				"users.json":    {Data: []byte(`[]`)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromFS(tt.fsys); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

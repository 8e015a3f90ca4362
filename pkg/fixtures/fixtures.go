// Package fixtures provides the bundled post, comment and user datasets that
// seed the in-memory stores at startup.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"pulse/pkg/models"
)

const (
	postsFile    = "posts.json"
	commentsFile = "comments.json"
	usersFile    = "users.json"
)

//go:embed data/*.json
var bundled embed.FS

type Dataset struct {
	Posts    []models.Post
	Comments []models.Comment
	Users    []models.User
}

// Default returns the dataset compiled into the binary.
func Default() (Dataset, error) {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		return Dataset{}, err
	}
	return FromFS(sub)
}

// Load reads posts.json, comments.json and users.json from dir.
func Load(dir string) (Dataset, error) {
	return FromFS(os.DirFS(dir))
}

func FromFS(fsys fs.FS) (Dataset, error) {
	var ds Dataset
	if err := decode(fsys, postsFile, &ds.Posts); err != nil {
		return Dataset{}, err
	}
	if err := decode(fsys, commentsFile, &ds.Comments); err != nil {
		return Dataset{}, err
	}
	if err := decode(fsys, usersFile, &ds.Users); err != nil {
		return Dataset{}, err
	}

	return ds, nil
}

func decode(fsys fs.FS, name string, v any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", name, err)
	}
	return nil
}

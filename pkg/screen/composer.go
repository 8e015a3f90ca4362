package screen

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"pulse/pkg/models"
	"pulse/pkg/service"
	"pulse/pkg/storage"
)

var hashtagSep = regexp.MustCompile(`[,\s]+`)

const maxImageSize = 5 << 20

var (
	// ErrEmptyPost is returned when a post is submitted without content.
	ErrEmptyPost     = fmt.Errorf("%w: Please write something to share!", storage.ErrValidation)
	ErrImageTooLarge = fmt.Errorf("%w: Image size must be less than 5MB", storage.ErrValidation)
)

// Submission is what the user filled into the create-post form.
// ImageSize is the byte size of the attached image, 0 when none is attached.
type Submission struct {
	Content   string
	Hashtags  string
	ImageURL  string
	ImageSize int64
}

// Composer creates posts as the current user.
type Composer struct {
	posts   service.Posts
	author  Author
	checker Checker
	notify  Notifier
}

func NewComposer(posts service.Posts, author Author, checker Checker, notify Notifier) *Composer {
	return &Composer{posts: posts, author: author, checker: checker, notify: notifierOrDefault(notify)}
}

func (c *Composer) Submit(ctx context.Context, sub Submission) (models.Post, error) {
	content := strings.TrimSpace(sub.Content)
	if content == "" {
		c.notify.Error("Please write something to share!")
		return models.Post{}, ErrEmptyPost
	}
	if sub.ImageSize > maxImageSize {
		c.notify.Error("Image size must be less than 5MB")
		return models.Post{}, ErrImageTooLarge
	}
	if c.checker != nil {
		if err := c.checker.Validate(content); err != nil {
			c.notify.Error("Your post could not be shared")
			return models.Post{}, err
		}
	}

	post, err := c.posts.Create(ctx, models.PostDraft{
		AuthorID:     c.author.ID,
		AuthorName:   c.author.Name,
		AuthorAvatar: c.author.Avatar,
		Content:      content,
		Hashtags:     ParseHashtags(sub.Hashtags),
		ImageURL:     sub.ImageURL,
	})
	if err != nil {
		c.notify.Error("Failed to create post")
		return models.Post{}, err
	}

	c.notify.Success("Post created successfully!")
	return post, nil
}

// ParseHashtags splits s on commas and whitespace and drops a leading '#'
// from each tag.
func ParseHashtags(s string) []string {
	tags := []string{}
	for _, tag := range hashtagSep.Split(s, -1) {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		tags = append(tags, strings.TrimPrefix(tag, "#"))
	}
	return tags
}

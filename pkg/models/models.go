package models

import (
	"slices"
	"time"
)

// Post is a feed entry. ID is the numeric identity, Key the opaque one.
// Author fields are denormalized and Comments is a cached count.
type Post struct {
	ID           int       `json:"Id"`
	Key          string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Content      string    `json:"content"`
	Hashtags     []string  `json:"hashtags"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	Timestamp    time.Time `json:"timestamp"`
}

// Clone returns a copy of p that does not share the hashtag slice.
func (p Post) Clone() Post {
	p.Hashtags = slices.Clone(p.Hashtags)
	return p
}

type Comment struct {
	ID           int       `json:"Id"`
	Key          string    `json:"id"`
	PostID       string    `json:"postId"`
	ParentID     *string   `json:"parentId"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Likes        int       `json:"likes"`
	Timestamp    time.Time `json:"timestamp"`
}

// IsReply reports whether c references a parent comment.
func (c Comment) IsReply() bool {
	return c.ParentID != nil
}

// Clone returns a copy of c that does not share the parent pointer.
func (c Comment) Clone() Comment {
	if c.ParentID != nil {
		parent := *c.ParentID
		c.ParentID = &parent
	}
	return c
}

// User is a profile. Followers, Following and Posts are cached counters.
type User struct {
	ID          int    `json:"Id"`
	Key         string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	Posts       int    `json:"posts"`
}

// PostDraft is the caller-supplied part of a new post.
type PostDraft struct {
	AuthorID     string   `json:"authorId"`
	AuthorName   string   `json:"authorName"`
	AuthorAvatar string   `json:"authorAvatar,omitempty"`
	Content      string   `json:"content"`
	Hashtags     []string `json:"hashtags"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

// PostPatch holds the fields to merge into an existing post. Nil fields are left untouched.
type PostPatch struct {
	AuthorName   *string   `json:"authorName,omitempty"`
	AuthorAvatar *string   `json:"authorAvatar,omitempty"`
	Content      *string   `json:"content,omitempty"`
	Hashtags     *[]string `json:"hashtags,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Likes        *int      `json:"likes,omitempty"`
	Comments     *int      `json:"comments,omitempty"`
}

// Apply merges the non-nil fields of patch into p. Counters are floored at 0.
func (patch PostPatch) Apply(p *Post) {
	if patch.AuthorName != nil {
		p.AuthorName = *patch.AuthorName
	}
	if patch.AuthorAvatar != nil {
		p.AuthorAvatar = *patch.AuthorAvatar
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Hashtags != nil {
		p.Hashtags = slices.Clone(*patch.Hashtags)
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Likes != nil {
		p.Likes = max(0, *patch.Likes)
	}
	if patch.Comments != nil {
		p.Comments = max(0, *patch.Comments)
	}
}

type CommentDraft struct {
	PostID       string  `json:"postId"`
	ParentID     *string `json:"parentId"`
	Content      string  `json:"content"`
	AuthorName   string  `json:"authorName"`
	AuthorAvatar string  `json:"authorAvatar,omitempty"`
}

type CommentPatch struct {
	Content      *string `json:"content,omitempty"`
	AuthorName   *string `json:"authorName,omitempty"`
	AuthorAvatar *string `json:"authorAvatar,omitempty"`
	Likes        *int    `json:"likes,omitempty"`
}

func (patch CommentPatch) Apply(c *Comment) {
	if patch.Content != nil {
		c.Content = *patch.Content
	}
	if patch.AuthorName != nil {
		c.AuthorName = *patch.AuthorName
	}
	if patch.AuthorAvatar != nil {
		c.AuthorAvatar = *patch.AuthorAvatar
	}
	if patch.Likes != nil {
		c.Likes = max(0, *patch.Likes)
	}
}

type UserDraft struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

type UserPatch struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Followers   *int    `json:"followers,omitempty"`
	Following   *int    `json:"following,omitempty"`
	Posts       *int    `json:"posts,omitempty"`
}

func (patch UserPatch) Apply(u *User) {
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.DisplayName != nil {
		u.DisplayName = *patch.DisplayName
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Followers != nil {
		u.Followers = max(0, *patch.Followers)
	}
	if patch.Following != nil {
		u.Following = max(0, *patch.Following)
	}
	if patch.Posts != nil {
		u.Posts = max(0, *patch.Posts)
	}
}

// Hashtag is a tag together with the number of posts carrying it.
type Hashtag struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

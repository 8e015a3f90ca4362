// Package search filters posts and users by a free-text query and ranks hashtags.
// Matching is case-insensitive substring matching; a blank query matches everything.
// Non-blank queries are matched as given, surrounding whitespace included.
package search

import (
	"sort"
	"strings"

	"pulse/pkg/models"
)

// Posts keeps posts whose content, author name or any hashtag contains q.
func Posts(posts []models.Post, q string) []models.Post {
	q, blank := normalize(q)
	if blank {
		return posts
	}

	res := []models.Post{}
	for _, p := range posts {
		if contains(p.Content, q) || contains(p.AuthorName, q) || anyContains(p.Hashtags, q) {
			res = append(res, p)
		}
	}

	return res
}

// Users keeps users whose display name, username or bio contains q.
func Users(users []models.User, q string) []models.User {
	q, blank := normalize(q)
	if blank {
		return users
	}

	res := []models.User{}
	for _, u := range users {
		if contains(u.DisplayName, q) || contains(u.Username, q) || contains(u.Bio, q) {
			res = append(res, u)
		}
	}

	return res
}

// Hashtags counts lower-cased tags across posts, keeps those containing q and
// orders them by count, most used first. Ties keep first-seen order.
func Hashtags(posts []models.Post, q string) []models.Hashtag {
	q, blank := normalize(q)

	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range p.Hashtags {
			tag = strings.ToLower(tag)
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	tags := []models.Hashtag{}
	for _, tag := range order {
		if !blank && !strings.Contains(tag, q) {
			continue
		}
		tags = append(tags, models.Hashtag{Tag: tag, Count: counts[tag]})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})

	return tags
}

// normalize lower-cases q. Whitespace only decides whether q is blank.
func normalize(q string) (string, bool) {
	return strings.ToLower(q), strings.TrimSpace(q) == ""
}

func contains(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

func anyContains(ss []string, q string) bool {
	for _, s := range ss {
		if contains(s, q) {
			return true
		}
	}
	return false
}

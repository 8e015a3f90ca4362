package search

import (
	"reflect"
	"testing"

	"pulse/pkg/models"
)

var testPosts = []models.Post{
	{ID: 1, Content: "Sunrise over the mountains", AuthorName: "Sarah Johnson", Hashtags: []string{"travel", "Photography"}},
	{ID: 2, Content: "Homemade ramen", AuthorName: "Mike Chen", Hashtags: []string{"food"}},
	{ID: 3, Content: "Harbor painting", AuthorName: "Emily Davis", Hashtags: []string{"art", "Travel"}},
	{ID: 4, Content: "Market haul", AuthorName: "Current User", Hashtags: []string{"food", "travel"}},
}

func ids(posts []models.Post) []int {
	res := []int{}
	for _, p := range posts {
		res = append(res, p.ID)
	}
	return res
}

func TestPosts(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "blank query returns all", query: "   ", want: []int{1, 2, 3, 4}},
		{name: "content match", query: "RAMEN", want: []int{2}},
		{name: "author match", query: "emily", want: []int{3}},
		{name: "hashtag match", query: "photo", want: []int{1}},
		{name: "hashtag mixed case", query: "travel", want: []int{1, 3, 4}},
		{name: "no match", query: "zzz", want: []int{}},
		{name: "leading space kept", query: " ramen", want: []int{2}},
		{name: "leading space at start of content", query: " sunrise", want: []int{}},
		{name: "trailing space kept", query: "ramen ", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Posts(testPosts, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestUsers(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "sarahj", DisplayName: "Sarah Johnson", Bio: "Travel photographer"},
		{ID: 2, Username: "mikec", DisplayName: "Mike Chen"},
		{ID: 3, Username: "emilyd", DisplayName: "Emily Davis", Bio: "Painter"},
	}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "display name", query: "chen", want: []int{2}},
		{name: "username", query: "EMILYD", want: []int{3}},
		{name: "bio", query: "photo", want: []int{1}},
		{name: "missing bio does not match", query: "painter", want: []int{3}},
		{name: "blank", query: "", want: []int{1, 2, 3}},
		{name: "whitespace only", query: " \t", want: []int{1, 2, 3}},
		{name: "leading space kept", query: " chen", want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, u := range Users(users, tt.query) {
				got = append(got, u.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHashtags(t *testing.T) {
	got := Hashtags(testPosts, "")
	want := []models.Hashtag{
		{Tag: "travel", Count: 3},
		{Tag: "food", Count: 2},
		{Tag: "photography", Count: 1},
		{Tag: "art", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}

	got = Hashtags(testPosts, "O")
	want = []models.Hashtag{
		{Tag: "food", Count: 2},
		{Tag: "photography", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestHashtags_untrimmedQuery(t *testing.T) {
	if got := Hashtags(testPosts, " food"); len(got) != 0 {
		t.Errorf("want no tags for a padded query, got %v", got)
	}
	if got := Hashtags(testPosts, "  "); len(got) != 4 {
		t.Errorf("want all 4 tags for a blank query, got %v", got)
	}
}

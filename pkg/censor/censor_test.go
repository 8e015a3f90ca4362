package censor

import (
	"errors"
	"path/filepath"
	"testing"

	"pulse/pkg/storage"
)

func TestCensor_Check(t *testing.T) {
	var c Censor

	jsonPath := filepath.Join("test_data", "words.json")
	if err := c.LoadFromJSON(jsonPath); err != nil {
		t.Fatalf("failed to load words: %v", err)
	}

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"No match", "hello world", false},
		{"Match base word", "total scam", true},
		{"Match derivative", "these scammers again", true},
		{"Exception word", "garlic scampi tonight", false},
		{"Exception derivative", "the dog scampered off", false},
		{"Mixed case", "SPAM everywhere", true},
		{"Trailing punctuation", "what a scam!", true},
		{"Digit substitution", "you 1d10t", true},
		{"Mixed text", "scampi and a scam", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Check(tt.content)
			if got != tt.want {
				t.Errorf("Check(%q) = %v; want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestCensor_Validate(t *testing.T) {
	c := New()
	if err := c.Validate("scam"); err != nil {
		t.Errorf("want empty censor to allow everything, got %v", err)
	}

	if err := c.LoadFromJSON(filepath.Join("test_data", "words.json")); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate("scam"); !errors.Is(err, storage.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestCensor_LoadFromJSONErrors(t *testing.T) {
	c := New()
	if err := c.LoadFromJSON(filepath.Join("test_data", "missing.json")); err == nil {
		t.Error("want error for missing file, got nil")
	}
}

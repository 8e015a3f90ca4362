// Package censor rejects post and comment content containing banned words.
package censor

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"pulse/pkg/storage"
)

type Word struct {
	Text       string   `json:"text"`
	Pattern    string   `json:"pattern"`
	Exceptions []string `json:"exceptions"`

	regexPattern *regexp.Regexp
}

type Censor struct {
	bannedWords []Word
}

// New returns a Censor that allows everything until words are loaded.
func New() *Censor {
	return &Censor{}
}

// LoadFromJSON loads banned words from a JSON file and compiles their patterns.
func (c *Censor) LoadFromJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var words []Word
	if err := json.Unmarshal(data, &words); err != nil {
		return err
	}

	for i, word := range words {
		words[i].regexPattern, err = regexp.Compile(word.Pattern)
		if err != nil {
			return fmt.Errorf("failed to compile pattern %q: %w", word.Pattern, err)
		}
	}

	c.bannedWords = words
	return nil
}

// Check reports whether text contains a banned word that is not listed as an exception.
func (c *Censor) Check(text string) bool {
	for _, w := range strings.Fields(normalize(text)) {
		for _, banned := range c.bannedWords {
			match := banned.regexPattern.FindString(w)
			if match == "" {
				continue
			}
			if !slices.Contains(banned.Exceptions, match) {
				return true
			}
		}
	}

	return false
}

// Validate wraps storage.ErrValidation when text fails Check.
func (c *Censor) Validate(text string) error {
	if c.Check(text) {
		return fmt.Errorf("%w: content contains banned words", storage.ErrValidation)
	}
	return nil
}

func normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}

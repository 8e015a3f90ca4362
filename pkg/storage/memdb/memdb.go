// Package memdb keeps the post, comment and user collections in process memory.
// Each collection is owned by its store and only mutated under the store's lock.
package memdb

import (
	"fmt"
	"time"

	"pulse/pkg/fixtures"
)

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for timestamps and opaque keys.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// idSeq hands out numeric identities as max(existing)+1.
// It keeps the high-water mark so deleted identities are not reused.
type idSeq struct {
	max int
}

func (s *idSeq) observe(id int) {
	if id > s.max {
		s.max = id
	}
}

func (s *idSeq) next() int {
	s.max++
	return s.max
}

func opaqueKey(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, t.UnixMilli())
}

// New builds the three stores from a fixture dataset.
func New(ds fixtures.Dataset, opts ...Option) (*PostStore, *CommentStore, *UserStore) {
	return NewPostStore(ds.Posts, opts...),
		NewCommentStore(ds.Comments, opts...),
		NewUserStore(ds.Users, opts...)
}

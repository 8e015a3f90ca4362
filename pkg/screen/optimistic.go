// Package screen holds the view state of the feed, profile, search, comment
// thread and post composer screens, and drives the services on their behalf.
//
// Counters the user can change (likes, followers) are updated optimistically:
// the local state changes first, the request is fired, and only a failure
// causes the screen to reload authoritative state. A successful response is
// not merged back into the view.
package screen

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Result is the outcome of a screen action backed by a service call.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Optimistic applies a tentative local change, fires request and, if it
// fails, calls reconcile to restore authoritative state.
func Optimistic[T any](
	ctx context.Context,
	apply func(),
	request func(context.Context) (T, error),
	reconcile func(context.Context) error,
) Result[T] {
	apply()

	v, err := request(ctx)
	if err != nil {
		if rerr := reconcile(ctx); rerr != nil {
			log.Warnf("[screen] failed to reconcile after %v: %v", err, rerr)
		}
		return Result[T]{Err: err}
	}

	return Result[T]{Value: v}
}

// Notifier shows transient user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	log.Infof("[notify] %s", msg)
}

func (LogNotifier) Error(msg string) {
	log.Warnf("[notify] %s", msg)
}

func notifierOrDefault(n Notifier) Notifier {
	if n == nil {
		return LogNotifier{}
	}
	return n
}

// Checker validates user-written content before it is submitted.
type Checker interface {
	Validate(text string) error
}

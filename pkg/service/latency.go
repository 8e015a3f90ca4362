package service

import (
	"context"
	"fmt"
	"time"

	"pulse/pkg/storage"
)

// Op classifies a service call for latency and fault injection.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpFilter Op = "filter"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpReact  Op = "react"
)

// Latency is the simulated round-trip cost of each operation class.
// The zero value means no delay.
type Latency struct {
	List   time.Duration `toml:"list"`
	Get    time.Duration `toml:"get"`
	Filter time.Duration `toml:"filter"`
	Create time.Duration `toml:"create"`
	Update time.Duration `toml:"update"`
	Delete time.Duration `toml:"delete"`
	React  time.Duration `toml:"react"`
}

// DefaultLatency mirrors the delays the feed was designed against.
func DefaultLatency() Latency {
	return Latency{
		List:   300 * time.Millisecond,
		Get:    200 * time.Millisecond,
		Filter: 250 * time.Millisecond,
		Create: 400 * time.Millisecond,
		Update: 300 * time.Millisecond,
		Delete: 200 * time.Millisecond,
		React:  200 * time.Millisecond,
	}
}

func (l Latency) For(op Op) time.Duration {
	switch op {
	case OpList:
		return l.List
	case OpGet:
		return l.Get
	case OpFilter:
		return l.Filter
	case OpCreate:
		return l.Create
	case OpUpdate:
		return l.Update
	case OpDelete:
		return l.Delete
	case OpReact:
		return l.React
	}
	return 0
}

// FaultFunc decides whether a call of the given class fails with
// storage.ErrSimulatedFailure. It runs before any mutation.
type FaultFunc func(op Op) bool

type Option func(*runner)

func WithLatency(l Latency) Option {
	return func(r *runner) {
		r.latency = l
	}
}

func WithFaults(f FaultFunc) Option {
	return func(r *runner) {
		r.fault = f
	}
}

type runner struct {
	name    string
	latency Latency
	fault   FaultFunc
}

func newRunner(name string, opts []Option) runner {
	r := runner{name: name, latency: DefaultLatency()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

type result[T any] struct {
	val T
	err error
}

// call waits out the latency of op and then runs fn. The wait and fn run on
// their own goroutine: a caller whose context ends stops waiting, but fn still
// runs once the delay elapses, so an abandoned mutation is still applied.
func call[T any](ctx context.Context, r *runner, op Op, fn func() (T, error)) (T, error) {
	exec := func() (T, error) {
		if r.fault != nil && r.fault(op) {
			var zero T
			return zero, fmt.Errorf("%s %s: %w", r.name, op, storage.ErrSimulatedFailure)
		}
		return fn()
	}

	d := r.latency.For(op)
	if d <= 0 {
		return exec()
	}

	done := make(chan result[T], 1)
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		<-timer.C

		v, err := exec()
		done <- result[T]{val: v, err: err}
	}()

	select {
	case res := <-done:
		return res.val, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

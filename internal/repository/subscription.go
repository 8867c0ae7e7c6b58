package repository

import (
	"context"
	"sync"
)

// Subscription is a live view over a collection. Every emission on Updates is
// the full current snapshot; consumers must replace prior state, not diff.
// Cancel is synchronous: once it returns, no further emissions are delivered.
type Subscription[T any] struct {
	updates   chan []T
	stop      chan struct{}
	cancel    context.CancelFunc
	once      sync.Once
	closeOnce sync.Once
}

// NewSubscription creates a subscription to be fed by a producer through Emit
// and ended with Close. cancel, if non-nil, runs once on Cancel to tear the
// producer down.
func NewSubscription[T any](cancel context.CancelFunc) *Subscription[T] {
	return &Subscription[T]{
		updates: make(chan []T),
		stop:    make(chan struct{}),
		cancel:  cancel,
	}
}

// Updates returns the snapshot stream. The channel is closed after Close or
// when the underlying watch terminates.
func (s *Subscription[T]) Updates() <-chan []T {
	return s.updates
}

// Cancel tears the subscription down. Safe to call more than once.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		close(s.stop)
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Close ends the snapshot stream. Called by the producer, never the consumer.
// Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.closeOnce.Do(func() {
		close(s.updates)
	})
}

// Transform derives a subscription whose emissions are the source's snapshots
// mapped through fn. Cancelling the derived subscription cancels the source.
func Transform[T, U any](src *Subscription[T], fn func([]T) []U) *Subscription[U] {
	dst := NewSubscription[U](src.Cancel)

	go func() {
		defer dst.Close()
		for items := range src.Updates() {
			if !dst.Emit(fn(items)) {
				return
			}
		}
	}()

	return dst
}

// Emit delivers one snapshot unless the subscription was cancelled first.
// Sends are unbuffered so a snapshot is only ever handed directly to a
// consumer; missed snapshots are dropped, never queued.
func (s *Subscription[T]) Emit(items []T) bool {
	select {
	case <-s.stop:
		return false
	default:
	}
	select {
	case s.updates <- items:
		return true
	case <-s.stop:
		return false
	}
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var _ Subscription[struct{}] = (*SubscriptionFunc[struct{}])(nil)

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Registry is a set of subscriptions that can be added and removed while
// events are being delivered. It is safe for concurrent use.
type Registry[T any] struct {
	lock   sync.RWMutex
	nextID uint64
	subs   map[uint64]Subscription[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		subs: make(map[uint64]Subscription[T]),
	}
}

// Subscribe adds [sub] and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (r *Registry[T]) Subscribe(sub Subscription[T]) func() {
	r.lock.Lock()
	defer r.lock.Unlock()

	id := r.nextID
	r.nextID++
	r.subs[id] = sub
	return func() {
		r.lock.Lock()
		defer r.lock.Unlock()

		delete(r.subs, id)
	}
}

func (r *Registry[T]) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.subs)
}

// Notify delivers [e] to a snapshot of the current subscriptions in
// subscription order. Subscriptions may unsubscribe from within Accept.
func (r *Registry[T]) Notify(ctx context.Context, e T) error {
	r.lock.RLock()
	ids := make([]uint64, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	subs := make([]Subscription[T], 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		subs = append(subs, r.subs[id])
	}
	r.lock.RUnlock()

	return NotifyAll(ctx, e, subs...)
}

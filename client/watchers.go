// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"slices"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// watchers tracks per-address change callbacks for the local sources.
type watchers struct {
	lock   sync.Mutex
	nextID uint64
	byAddr map[solana.PublicKey]map[uint64]func([]byte)
}

func newWatchers() *watchers {
	return &watchers{
		byAddr: make(map[solana.PublicKey]map[uint64]func([]byte)),
	}
}

func (w *watchers) add(addr solana.PublicKey, onChange func([]byte)) func() {
	w.lock.Lock()
	defer w.lock.Unlock()

	id := w.nextID
	w.nextID++
	if w.byAddr[addr] == nil {
		w.byAddr[addr] = make(map[uint64]func([]byte))
	}
	w.byAddr[addr][id] = onChange
	return func() {
		w.lock.Lock()
		defer w.lock.Unlock()

		delete(w.byAddr[addr], id)
		if len(w.byAddr[addr]) == 0 {
			delete(w.byAddr, addr)
		}
	}
}

// notify calls every watcher of [addr] in subscription order, outside the
// lock, each with its own copy of [data].
func (w *watchers) notify(addr solana.PublicKey, data []byte) {
	w.lock.Lock()
	ids := make([]uint64, 0, len(w.byAddr[addr]))
	for id := range w.byAddr[addr] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	callbacks := make([]func([]byte), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, w.byAddr[addr][id])
	}
	w.lock.Unlock()

	for _, cb := range callbacks {
		cb(slices.Clone(data))
	}
}

func (w *watchers) count(addr solana.PublicKey) int {
	w.lock.Lock()
	defer w.lock.Unlock()

	return len(w.byAddr[addr])
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"slices"
	"sync"

	"github.com/gagliardetto/solana-go"
)

var _ AccountSource = (*MemorySource)(nil)

// MemorySource is an in-process AccountSource. Subscribers are notified
// synchronously from [MemorySource.Set].
type MemorySource struct {
	lock     sync.RWMutex
	accounts map[solana.PublicKey][]byte
	watchers *watchers
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		accounts: make(map[solana.PublicKey][]byte),
		watchers: newWatchers(),
	}
}

func (m *MemorySource) FetchAccount(_ context.Context, addr solana.PublicKey) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	data, ok := m.accounts[addr]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return slices.Clone(data), nil
}

func (m *MemorySource) SubscribeAccount(_ context.Context, addr solana.PublicKey, onChange func([]byte)) (func(), error) {
	return m.watchers.add(addr, onChange), nil
}

// Set stores [data] for [addr] and notifies its subscribers.
func (m *MemorySource) Set(addr solana.PublicKey, data []byte) {
	m.lock.Lock()
	m.accounts[addr] = slices.Clone(data)
	m.lock.Unlock()

	m.watchers.notify(addr, data)
}

func (m *MemorySource) Delete(addr solana.PublicKey) {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.accounts, addr)
}

// Watchers returns the number of live subscriptions on [addr].
func (m *MemorySource) Watchers(addr solana.PublicKey) int {
	return m.watchers.count(addr)
}

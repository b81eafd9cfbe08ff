// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/villefarm/lumberjack/pebble"
)

var _ AccountSource = (*SnapshotSource)(nil)

// SnapshotSource serves accounts recorded on disk, for replaying a session
// offline. Subscribers see every [SnapshotSource.Set].
type SnapshotSource struct {
	db       *pebble.Database
	watchers *watchers
}

func NewSnapshotSource(db *pebble.Database) *SnapshotSource {
	return &SnapshotSource{
		db:       db,
		watchers: newWatchers(),
	}
}

func (s *SnapshotSource) FetchAccount(_ context.Context, addr solana.PublicKey) ([]byte, error) {
	data, err := s.db.Get(addr)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	return data, err
}

func (s *SnapshotSource) SubscribeAccount(_ context.Context, addr solana.PublicKey, onChange func([]byte)) (func(), error) {
	return s.watchers.add(addr, onChange), nil
}

// Set records [data] for [addr] and notifies its subscribers once written.
func (s *SnapshotSource) Set(addr solana.PublicKey, data []byte) error {
	if err := s.db.Put(addr, data); err != nil {
		return err
	}
	s.watchers.notify(addr, data)
	return nil
}

// Record copies the current contents of [addrs] from [from] into the
// snapshot. Missing accounts are skipped.
func (s *SnapshotSource) Record(ctx context.Context, from AccountSource, addrs ...solana.PublicKey) error {
	for _, addr := range addrs {
		data, err := from.FetchAccount(ctx, addr)
		if errors.Is(err, ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := s.Set(addr, data); err != nil {
			return err
		}
	}
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/villefarm/lumberjack/lumberjack"
	"github.com/villefarm/lumberjack/lumberjack/lumberjacktest"
	"github.com/villefarm/lumberjack/pebble"
)

func newSnapshot(t *testing.T) *SnapshotSource {
	cfg := pebble.NewDefaultConfig()
	cfg.Sync = false
	db, _, err := pebble.New(t.TempDir(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return NewSnapshotSource(db)
}

func TestSnapshotReplay(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	player, plot := addresses(t)

	live := NewMemorySource()
	want := lumberjack.PlayerData{Authority: authority, Name: "John", Level: 5, Xp: 1000}
	live.Set(player, lumberjacktest.PlayerDataBytes(want))

	snapshot := newSnapshot(t)
	require.NoError(snapshot.Record(ctx, live, player, plot))

	_, err := snapshot.FetchAccount(ctx, plot)
	require.ErrorIs(err, ErrAccountNotFound)

	c := newTestClient(t, zaptest.NewLogger(t), snapshot, nil, testConfig())
	s, err := c.Load(ctx, authority)
	require.NoError(err)
	require.Equal(want, *s.Player)
	require.Nil(s.Plot)
}

func TestSnapshotWatch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	_, plot := addresses(t)
	snapshot := newSnapshot(t)

	var got []byte
	stop, err := snapshot.SubscribeAccount(ctx, plot, func(b []byte) {
		got = b
	})
	require.NoError(err)

	data := lumberjacktest.PlotBytes(lumberjack.Plot{HumanType: "peasant"})
	require.NoError(snapshot.Set(plot, data))
	require.Equal(data, got)

	stop()
	require.NoError(snapshot.Set(plot, nil))
	require.Equal(data, got)
}

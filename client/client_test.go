// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/villefarm/lumberjack/codec"
	"github.com/villefarm/lumberjack/lumberjack"
	"github.com/villefarm/lumberjack/lumberjack/lumberjacktest"
)

var (
	authority    = lumberjacktest.RepeatedKey(0x0A)
	sessionToken = lumberjacktest.RepeatedKey(0x0B)
	sessionKey   = lumberjacktest.RepeatedKey(0x0C)

	errUnavailable = errors.New("node unavailable")
)

func testConfig() Config {
	config := NewDefaultConfig()
	config.RetryInterval = time.Millisecond
	return config
}

func newTestClient(t *testing.T, log *zap.Logger, source AccountSource, sender Submitter, config Config, opts ...Option) *Client {
	c, err := New(log, source, sender, config, opts...)
	require.NoError(t, err)
	return c
}

func addresses(t *testing.T) (solana.PublicKey, solana.PublicKey) {
	player, _, err := lumberjack.PlayerAddress(lumberjack.ProgramID, authority)
	require.NoError(t, err)
	plot, _, err := lumberjack.PlotAddress(lumberjack.ProgramID, authority)
	require.NoError(t, err)
	return player, plot
}

// flakySource fails the first [failures] fetches.
type flakySource struct {
	*MemorySource
	failures int
	calls    int
}

func (f *flakySource) FetchAccount(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errUnavailable
	}
	return f.MemorySource.FetchAccount(ctx, addr)
}

func TestLoadUninitialized(t *testing.T) {
	require := require.New(t)
	c := newTestClient(t, zaptest.NewLogger(t), NewMemorySource(), nil, testConfig())

	s, err := c.Load(context.Background(), authority)
	require.NoError(err)
	require.False(s.Initialized())
	require.Nil(s.Player)
	require.Nil(s.Plot)

	player, plot := addresses(t)
	require.Equal(player, s.PlayerAddress)
	require.Equal(plot, s.PlotAddress)
}

func TestLoadNotifies(t *testing.T) {
	require := require.New(t)
	player, plot := addresses(t)
	source := NewMemorySource()
	wantPlayer := lumberjack.PlayerData{Authority: authority, Name: "John", Gold: 5, Energy: 10}
	wantPlot := lumberjack.Plot{HumanType: "breadmaker", PlantedAt: 100}
	source.Set(player, lumberjacktest.Padded(lumberjacktest.PlayerDataBytes(wantPlayer), 1000))
	source.Set(plot, lumberjacktest.Padded(lumberjacktest.PlotBytes(wantPlot), 1000))

	c := newTestClient(t, zaptest.NewLogger(t), source, nil, testConfig())
	var gotPlayer *lumberjack.PlayerData
	var gotPlot *lumberjack.Plot
	c.OnPlayerData(func(_ context.Context, p *lumberjack.PlayerData) error {
		gotPlayer = p
		return nil
	})
	c.OnPlot(func(_ context.Context, p *lumberjack.Plot) error {
		gotPlot = p
		return nil
	})

	s, err := c.Load(context.Background(), authority)
	require.NoError(err)
	require.True(s.Initialized())
	require.Equal(wantPlayer, *s.Player)
	require.Equal(wantPlot, *s.Plot)
	require.Same(s.Player, gotPlayer)
	require.Same(s.Plot, gotPlot)
}

func TestFetchErrors(t *testing.T) {
	player, _ := addresses(t)
	plotBytes := lumberjacktest.PlotBytes(lumberjack.Plot{HumanType: "peasant"})
	playerBytes := lumberjacktest.PlayerDataBytes(lumberjack.PlayerData{Name: "John"})

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{
			name: "wrong type",
			data: plotBytes,
			err:  ErrWrongAccountType,
		},
		{
			name: "truncated",
			data: playerBytes[:20],
			err:  codec.ErrTruncatedInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			source := NewMemorySource()
			source.Set(player, tt.data)
			c := newTestClient(t, zaptest.NewLogger(t), source, nil, testConfig())

			_, err := c.PlayerData(context.Background(), player)
			require.ErrorIs(err, tt.err)

			_, err = c.Load(context.Background(), authority)
			require.ErrorIs(err, tt.err)
		})
	}
}

func TestFetchRetries(t *testing.T) {
	_, plot := addresses(t)
	tests := []struct {
		name     string
		failures int
		retries  uint64
		err      error
		// failed attempts recorded before the fetch settles
		wantFailed float64
	}{
		{
			name:       "recovers",
			failures:   2,
			retries:    3,
			wantFailed: 2,
		},
		{
			name:       "gives up",
			failures:   5,
			retries:    2,
			err:        errUnavailable,
			wantFailed: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			source := &flakySource{MemorySource: NewMemorySource(), failures: tt.failures}
			source.Set(plot, lumberjacktest.PlotBytes(lumberjack.Plot{HumanType: "peasant"}))
			config := testConfig()
			config.FetchRetries = tt.retries
			c := newTestClient(t, zaptest.NewLogger(t), source, nil, config)

			p, err := c.Plot(context.Background(), plot)
			require.ErrorIs(err, tt.err)
			if tt.err == nil {
				require.Equal("peasant", p.HumanType)
			}
			require.Equal(tt.wantFailed, testutil.ToFloat64(c.metrics.fetchRetries))
		})
	}
}

func TestFetchNotFoundIsFinal(t *testing.T) {
	require := require.New(t)
	_, plot := addresses(t)
	source := &flakySource{MemorySource: NewMemorySource()}
	c := newTestClient(t, zaptest.NewLogger(t), source, nil, testConfig())

	_, err := c.Plot(context.Background(), plot)
	require.ErrorIs(err, ErrAccountNotFound)
	require.Equal(1, source.calls)
}

func TestWatch(t *testing.T) {
	require := require.New(t)
	player, plot := addresses(t)
	source := NewMemorySource()
	core, logs := observer.New(zapcore.WarnLevel)
	c := newTestClient(t, zap.New(core), source, nil, testConfig())

	var plots []lumberjack.Plot
	c.OnPlot(func(_ context.Context, p *lumberjack.Plot) error {
		plots = append(plots, *p)
		return nil
	})
	var players int
	c.OnPlayerData(func(context.Context, *lumberjack.PlayerData) error {
		players++
		return nil
	})

	stop, err := c.Watch(context.Background(), authority)
	require.NoError(err)
	require.Equal(1, source.Watchers(player))
	require.Equal(1, source.Watchers(plot))

	source.Set(plot, lumberjacktest.PlotBytes(lumberjack.Plot{HumanType: "peasant", PlantedAt: 1}))
	source.Set(plot, lumberjacktest.PlotBytes(lumberjack.Plot{PlantedAt: 1}))
	source.Set(player, lumberjacktest.PlayerDataBytes(lumberjack.PlayerData{Gold: 10}))
	require.Equal([]lumberjack.Plot{
		{HumanType: "peasant", PlantedAt: 1},
		{PlantedAt: 1},
	}, plots)
	require.Equal(1, players)

	// A plot layout landing on the player address is dropped.
	source.Set(player, lumberjacktest.PlotBytes(lumberjack.Plot{}))
	require.Equal(1, players)
	require.Equal(1, logs.FilterMessage("dropping player update").Len())
	require.Equal(float64(1), testutil.ToFloat64(c.metrics.droppedUpdates))
	require.Equal(float64(3), testutil.ToFloat64(c.metrics.updates))

	stop()
	require.Zero(source.Watchers(player))
	require.Zero(source.Watchers(plot))

	source.Set(plot, lumberjacktest.PlotBytes(lumberjack.Plot{HumanType: "blacksmith"}))
	require.Len(plots, 2)
}

func TestInitPlayerSubmits(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	player, plot := addresses(t)

	sender := NewMockSubmitter(ctrl)
	sender.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ix solana.Instruction) (string, error) {
			require.Equal(lumberjack.ProgramID, ix.ProgramID())
			require.Equal([]*solana.AccountMeta{
				solana.NewAccountMeta(player, true, false),
				solana.NewAccountMeta(plot, true, false),
				solana.NewAccountMeta(authority, true, true),
				solana.NewAccountMeta(solana.SystemProgramID, false, false),
			}, ix.Accounts())
			return "sig-init", nil
		},
	)

	c := newTestClient(t, zaptest.NewLogger(t), NewMemorySource(), sender, testConfig())
	sig, err := c.InitPlayer(context.Background(), authority)
	require.NoError(err)
	require.Equal("sig-init", sig)
}

func TestGameplaySigner(t *testing.T) {
	tests := []struct {
		name          string
		sessionToken  solana.PublicKey
		sessionSigner solana.PublicKey
		wantFirst     solana.PublicKey
		wantSigner    solana.PublicKey
	}{
		{
			name:       "wallet",
			wantFirst:  lumberjack.ProgramID,
			wantSigner: authority,
		},
		{
			name:          "session",
			sessionToken:  sessionToken,
			sessionSigner: sessionKey,
			wantFirst:     sessionToken,
			wantSigner:    sessionKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			var got []solana.Instruction
			sender := NewMockSubmitter(ctrl)
			sender.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, ix solana.Instruction) (string, error) {
					got = append(got, ix)
					return "sig", nil
				},
			).Times(3)

			config := testConfig()
			config.SessionToken = tt.sessionToken
			config.SessionSigner = tt.sessionSigner
			c := newTestClient(t, zaptest.NewLogger(t), NewMemorySource(), sender, config)

			ctx := context.Background()
			_, err := c.Plant(ctx, authority, "peasant")
			require.NoError(err)
			_, err = c.Harvest(ctx, authority)
			require.NoError(err)
			_, err = c.Update(ctx, authority)
			require.NoError(err)

			for _, ix := range got {
				accounts := ix.Accounts()
				require.Equal(solana.NewAccountMeta(tt.wantFirst, false, false), accounts[0])
				require.Equal(solana.NewAccountMeta(tt.wantSigner, true, true), accounts[len(accounts)-1])
			}
		})
	}
}

func TestMissingSessionSigner(t *testing.T) {
	require := require.New(t)
	config := testConfig()
	config.SessionToken = sessionToken
	c := newTestClient(t, zaptest.NewLogger(t), NewMemorySource(), nil, config)

	_, err := c.Harvest(context.Background(), authority)
	require.ErrorIs(err, ErrMissingSessionKey)
}

func TestSubmitError(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	rejected := lumberjack.ProgramError(lumberjack.CodeNotReadyYet)

	sender := NewMockSubmitter(ctrl)
	sender.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("", rejected)

	c := newTestClient(t, zaptest.NewLogger(t), NewMemorySource(), sender, testConfig())
	_, err := c.Harvest(context.Background(), authority)
	require.ErrorIs(err, lumberjack.ErrNotReadyYet)
	require.ErrorContains(err, "submitting harvest")
	require.Equal(float64(1), testutil.ToFloat64(c.metrics.rejected.WithLabelValues("harvest")))
	require.Zero(testutil.ToFloat64(c.metrics.submitted.WithLabelValues("harvest")))
}

func TestLoadSpans(t *testing.T) {
	require := require.New(t)
	player, _ := addresses(t)
	source := NewMemorySource()
	source.Set(player, lumberjacktest.PlayerDataBytes(lumberjack.PlayerData{Name: "John"}))

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	c := newTestClient(t, zaptest.NewLogger(t), source, nil, testConfig(), WithTracer(provider.Tracer("test")))

	_, err := c.Load(context.Background(), authority)
	require.NoError(err)

	names := make(map[string]int)
	for _, span := range recorder.Ended() {
		names[span.Name()]++
	}
	require.Equal(map[string]int{
		"Client.Load":  1,
		"Client.fetch": 2,
	}, names)
}

func TestMetricsRegistry(t *testing.T) {
	require := require.New(t)
	c := newTestClient(t, zaptest.NewLogger(t), NewMemorySource(), nil, testConfig())

	families, err := c.Metrics().Gather()
	require.NoError(err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(names, "lumberjack_client_fetches")
	require.Contains(names, "lumberjack_client_dropped_updates")
}

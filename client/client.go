// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/villefarm/lumberjack/chain"
	"github.com/villefarm/lumberjack/event"
	"github.com/villefarm/lumberjack/lumberjack"
)

// Client reads and drives a player's game accounts. Every collaborator is
// injected; callbacks registered with OnPlayerData and OnPlot belong to
// this Client only.
type Client struct {
	log    *zap.Logger
	tracer oteltrace.Tracer
	source AccountSource
	sender Submitter
	config Config

	registry *prometheus.Registry
	metrics  *metrics

	players *event.Registry[*lumberjack.PlayerData]
	plots   *event.Registry[*lumberjack.Plot]
}

type Option func(*Client)

// WithTracer records a span for every fetch, load and submission.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func New(log *zap.Logger, source AccountSource, sender Submitter, config Config, opts ...Option) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, err
	}
	c := &Client{
		log:      log,
		tracer:   oteltrace.NewNoopTracerProvider().Tracer("lumberjack"),
		source:   source,
		sender:   sender,
		config:   config,
		registry: registry,
		metrics:  metrics,
		players:  event.NewRegistry[*lumberjack.PlayerData](),
		plots:    event.NewRegistry[*lumberjack.Plot](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Metrics is the registry holding the client's counters.
func (c *Client) Metrics() *prometheus.Registry {
	return c.registry
}

// State is a snapshot of a player's accounts. Player and Plot are nil until
// InitPlayer has landed.
type State struct {
	Authority     solana.PublicKey       `json:"authority"`
	PlayerAddress solana.PublicKey       `json:"playerAddress"`
	PlotAddress   solana.PublicKey       `json:"plotAddress"`
	Player        *lumberjack.PlayerData `json:"player"`
	Plot          *lumberjack.Plot       `json:"plot"`
}

func (s *State) Initialized() bool {
	return s.Player != nil
}

func (c *Client) PlayerData(ctx context.Context, addr solana.PublicKey) (*lumberjack.PlayerData, error) {
	data, err := c.fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	p, ok, err := lumberjack.DecodePlayerData(data)
	if err != nil {
		c.metrics.decodeFailures.Inc()
		return nil, fmt.Errorf("account %s: %w", addr, err)
	}
	if !ok {
		c.metrics.decodeFailures.Inc()
		return nil, fmt.Errorf("%w: %s is not PlayerData", ErrWrongAccountType, addr)
	}
	return p, nil
}

func (c *Client) Plot(ctx context.Context, addr solana.PublicKey) (*lumberjack.Plot, error) {
	data, err := c.fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	p, ok, err := lumberjack.DecodePlot(data)
	if err != nil {
		c.metrics.decodeFailures.Inc()
		return nil, fmt.Errorf("account %s: %w", addr, err)
	}
	if !ok {
		c.metrics.decodeFailures.Inc()
		return nil, fmt.Errorf("%w: %s is not Plot", ErrWrongAccountType, addr)
	}
	return p, nil
}

// Load fetches both accounts of [authority] concurrently and delivers the
// ones that exist to registered callbacks.
func (c *Client) Load(ctx context.Context, authority solana.PublicKey) (*State, error) {
	ctx, span := c.tracer.Start(ctx, "Client.Load",
		oteltrace.WithAttributes(
			attribute.Stringer("authority", authority),
		),
	)
	defer span.End()

	s, err := c.addresses(authority)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.PlayerData(gctx, s.PlayerAddress)
		if errors.Is(err, ErrAccountNotFound) {
			c.log.Info("player not initialized",
				zap.Stringer("authority", authority),
			)
			return nil
		}
		s.Player = p
		return err
	})
	g.Go(func() error {
		p, err := c.Plot(gctx, s.PlotAddress)
		if errors.Is(err, ErrAccountNotFound) {
			return nil
		}
		s.Plot = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.Player != nil {
		c.notifyPlayer(ctx, s.Player)
	}
	if s.Plot != nil {
		c.notifyPlot(ctx, s.Plot)
	}
	return s, nil
}

// OnPlayerData registers [f] for every decoded PlayerData update and returns
// a function that removes it.
func (c *Client) OnPlayerData(f func(context.Context, *lumberjack.PlayerData) error) func() {
	return c.players.Subscribe(event.SubscriptionFunc[*lumberjack.PlayerData]{AcceptF: f})
}

// OnPlot registers [f] for every decoded Plot update and returns a function
// that removes it.
func (c *Client) OnPlot(f func(context.Context, *lumberjack.Plot) error) func() {
	return c.plots.Subscribe(event.SubscriptionFunc[*lumberjack.Plot]{AcceptF: f})
}

// Watch subscribes to both accounts of [authority]. Updates that do not
// decode are logged and dropped. The returned function ends the
// subscriptions.
func (c *Client) Watch(ctx context.Context, authority solana.PublicKey) (func(), error) {
	s, err := c.addresses(authority)
	if err != nil {
		return nil, err
	}

	stopPlayer, err := c.source.SubscribeAccount(ctx, s.PlayerAddress, func(data []byte) {
		p, ok, err := lumberjack.DecodePlayerData(data)
		if err != nil || !ok {
			c.log.Warn("dropping player update",
				zap.Stringer("address", s.PlayerAddress),
				zap.Bool("matched", ok),
				zap.Error(err),
			)
			c.metrics.droppedUpdates.Inc()
			return
		}
		c.notifyPlayer(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", s.PlayerAddress, err)
	}

	stopPlot, err := c.source.SubscribeAccount(ctx, s.PlotAddress, func(data []byte) {
		p, ok, err := lumberjack.DecodePlot(data)
		if err != nil || !ok {
			c.log.Warn("dropping plot update",
				zap.Stringer("address", s.PlotAddress),
				zap.Bool("matched", ok),
				zap.Error(err),
			)
			c.metrics.droppedUpdates.Inc()
			return
		}
		c.notifyPlot(ctx, p)
	})
	if err != nil {
		stopPlayer()
		return nil, fmt.Errorf("subscribing to %s: %w", s.PlotAddress, err)
	}

	return func() {
		stopPlayer()
		stopPlot()
	}, nil
}

func (c *Client) InitPlayer(ctx context.Context, authority solana.PublicKey) (string, error) {
	s, err := c.addresses(authority)
	if err != nil {
		return "", err
	}
	ix, err := lumberjack.InitPlayer(lumberjack.InitPlayerAccounts{
		Player:        s.PlayerAddress,
		Plot:          s.PlotAddress,
		Signer:        authority,
		SystemProgram: solana.SystemProgramID,
	}, c.config.ProgramID)
	if err != nil {
		return "", err
	}
	return c.submit(ctx, lumberjack.InitPlayerCall, ix)
}

func (c *Client) Plant(ctx context.Context, authority solana.PublicKey, humanType string) (string, error) {
	s, signer, err := c.gameplayAccounts(authority)
	if err != nil {
		return "", err
	}
	ix, err := lumberjack.Plant(lumberjack.PlantAccounts{
		SessionToken: c.config.SessionToken,
		Player:       s.PlayerAddress,
		Plot:         s.PlotAddress,
		Signer:       signer,
	}, humanType, c.config.ProgramID)
	if err != nil {
		return "", err
	}
	return c.submit(ctx, lumberjack.PlantCall, ix)
}

func (c *Client) Harvest(ctx context.Context, authority solana.PublicKey) (string, error) {
	s, signer, err := c.gameplayAccounts(authority)
	if err != nil {
		return "", err
	}
	ix, err := lumberjack.Harvest(lumberjack.HarvestAccounts{
		SessionToken: c.config.SessionToken,
		Player:       s.PlayerAddress,
		Plot:         s.PlotAddress,
		Signer:       signer,
	}, c.config.ProgramID)
	if err != nil {
		return "", err
	}
	return c.submit(ctx, lumberjack.HarvestCall, ix)
}

func (c *Client) Update(ctx context.Context, authority solana.PublicKey) (string, error) {
	s, signer, err := c.gameplayAccounts(authority)
	if err != nil {
		return "", err
	}
	ix, err := lumberjack.Update(lumberjack.UpdateAccounts{
		SessionToken: c.config.SessionToken,
		Player:       s.PlayerAddress,
		Signer:       signer,
	}, c.config.ProgramID)
	if err != nil {
		return "", err
	}
	return c.submit(ctx, lumberjack.UpdateCall, ix)
}

func (c *Client) addresses(authority solana.PublicKey) (*State, error) {
	player, _, err := lumberjack.PlayerAddress(c.config.ProgramID, authority)
	if err != nil {
		return nil, err
	}
	plot, _, err := lumberjack.PlotAddress(c.config.ProgramID, authority)
	if err != nil {
		return nil, err
	}
	return &State{
		Authority:     authority,
		PlayerAddress: player,
		PlotAddress:   plot,
	}, nil
}

// gameplayAccounts resolves the addresses and the signer. With a session
// configured the session key signs, otherwise the authority does.
func (c *Client) gameplayAccounts(authority solana.PublicKey) (*State, solana.PublicKey, error) {
	s, err := c.addresses(authority)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	if !c.config.UsesSession() {
		return s, authority, nil
	}
	if c.config.SessionSigner.IsZero() {
		return nil, solana.PublicKey{}, ErrMissingSessionKey
	}
	return s, c.config.SessionSigner, nil
}

func (c *Client) submit(ctx context.Context, call *chain.Call, ix *chain.Instruction) (string, error) {
	ctx, span := c.tracer.Start(ctx, "Client.Submit",
		oteltrace.WithAttributes(
			attribute.String("instruction", call.Name),
			attribute.Int("dataLen", len(ix.Payload)),
		),
	)
	defer span.End()

	sig, err := c.sender.Submit(ctx, ix)
	if err != nil {
		c.metrics.rejected.WithLabelValues(call.Name).Inc()
		c.log.Warn("instruction rejected",
			zap.String("instruction", call.Name),
			zap.Error(err),
		)
		return "", fmt.Errorf("submitting %s: %w", call.Name, err)
	}
	c.metrics.submitted.WithLabelValues(call.Name).Inc()
	c.log.Debug("instruction submitted",
		zap.String("instruction", call.Name),
		zap.String("signature", sig),
		zap.Int("dataLen", len(ix.Payload)),
	)
	return sig, nil
}

// fetch retries transient source failures. A missing account is final.
func (c *Client) fetch(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "Client.fetch",
		oteltrace.WithAttributes(
			attribute.Stringer("address", addr),
		),
	)
	defer span.End()

	var data []byte
	op := func() error {
		b, err := c.source.FetchAccount(ctx, addr)
		if errors.Is(err, ErrAccountNotFound) {
			return backoff.Permanent(err)
		}
		if err != nil {
			c.metrics.fetchRetries.Inc()
			c.log.Debug("fetch failed",
				zap.Stringer("address", addr),
				zap.Error(err),
			)
			return err
		}
		c.metrics.fetches.Inc()
		data = b
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.config.RetryInterval), c.config.FetchRetries),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", addr, err)
	}
	return data, nil
}

func (c *Client) notifyPlayer(ctx context.Context, p *lumberjack.PlayerData) {
	c.metrics.updates.Inc()
	if err := c.players.Notify(ctx, p); err != nil {
		c.log.Error("player callback failed",
			zap.Error(err),
		)
	}
}

func (c *Client) notifyPlot(ctx context.Context, p *lumberjack.Plot) {
	c.metrics.updates.Inc()
	if err := c.plots.Notify(ctx, p); err != nil {
		c.log.Error("plot callback failed",
			zap.Error(err),
		)
	}
}

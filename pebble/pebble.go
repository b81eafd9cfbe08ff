// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pebble persists raw account snapshots keyed by address.
package pebble

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrNotFound = errors.New("not found")
	ErrClosed   = errors.New("closed")
)

type Config struct {
	Sync         bool `json:"sync"`
	MaxOpenFiles int  `json:"maxOpenFiles"`
	CacheSize    int  `json:"cacheSize"`
}

func NewDefaultConfig() Config {
	return Config{
		Sync:         true,
		MaxOpenFiles: 1_024,
		CacheSize:    16 * 1024 * 1024,
	}
}

// Database stores account data under the 32 byte account address.
type Database struct {
	db        *pebble.DB
	metrics   *metrics
	writeOpts *pebble.WriteOptions

	// lock is held for reading by every operation and for writing by Close.
	lock     sync.RWMutex
	isClosed bool
	closing  chan struct{}
	closed   chan struct{}
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics:   metrics,
		writeOpts: &pebble.WriteOptions{Sync: cfg.Sync},
		closing:   make(chan struct{}),
		closed:    make(chan struct{}),
	}
	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: cfg.MaxOpenFiles,
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	go d.collectMetrics()
	return d, registry, nil
}

func (d *Database) Get(addr solana.PublicKey) ([]byte, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()
	if d.isClosed {
		return nil, ErrClosed
	}

	start := time.Now()
	defer func() {
		d.metrics.getLatency.Observe(time.Since(start).Seconds())
	}()

	data, closer, err := d.db.Get(addr[:])
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return slices.Clone(data), nil
}

func (d *Database) Put(addr solana.PublicKey, data []byte) error {
	d.lock.RLock()
	defer d.lock.RUnlock()
	if d.isClosed {
		return ErrClosed
	}
	return d.db.Set(addr[:], data, d.writeOpts)
}

func (d *Database) Delete(addr solana.PublicKey) error {
	d.lock.RLock()
	defer d.lock.RUnlock()
	if d.isClosed {
		return ErrClosed
	}
	return d.db.Delete(addr[:], d.writeOpts)
}

func (d *Database) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.isClosed {
		return ErrClosed
	}
	d.isClosed = true

	close(d.closing)
	<-d.closed
	return d.db.Close()
}

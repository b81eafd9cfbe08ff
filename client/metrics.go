// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	fetches        prometheus.Counter
	fetchRetries   prometheus.Counter
	decodeFailures prometheus.Counter
	updates        prometheus.Counter
	droppedUpdates prometheus.Counter
	submitted      *prometheus.CounterVec
	rejected       *prometheus.CounterVec
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lumberjack_client",
			Name:      "fetches",
			Help:      "number of account fetches that returned data",
		}),
		fetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lumberjack_client",
			Name:      "fetch_retries",
			Help:      "number of failed fetch attempts",
		}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lumberjack_client",
			Name:      "decode_failures",
			Help:      "number of fetched accounts that did not decode",
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lumberjack_client",
			Name:      "updates",
			Help:      "number of account updates delivered to callbacks",
		}),
		droppedUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lumberjack_client",
			Name:      "dropped_updates",
			Help:      "number of account updates that did not decode",
		}),
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumberjack_client",
			Name:      "submitted",
			Help:      "number of instructions accepted by the submitter",
		}, []string{"instruction"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumberjack_client",
			Name:      "rejected",
			Help:      "number of instructions rejected by the submitter",
		}, []string{"instruction"}),
	}
	err := errors.Join(
		r.Register(m.fetches),
		r.Register(m.fetchRetries),
		r.Register(m.decodeFailures),
		r.Register(m.updates),
		r.Register(m.droppedUpdates),
		r.Register(m.submitted),
		r.Register(m.rejected),
	)
	return r, m, err
}

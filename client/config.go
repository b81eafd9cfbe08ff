// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/villefarm/lumberjack/lumberjack"
)

type Config struct {
	ProgramID solana.PublicKey `json:"programId"`

	// SessionToken and SessionSigner are set together when an ephemeral
	// session key signs gameplay instructions instead of the wallet.
	SessionToken  solana.PublicKey `json:"sessionToken"`
	SessionSigner solana.PublicKey `json:"sessionSigner"`

	FetchRetries  uint64        `json:"fetchRetries"`
	RetryInterval time.Duration `json:"retryInterval"`
}

func NewDefaultConfig() Config {
	return Config{
		ProgramID:     lumberjack.ProgramID,
		FetchRetries:  3,
		RetryInterval: 250 * time.Millisecond,
	}
}

func (c Config) UsesSession() bool {
	return !c.SessionToken.IsZero()
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrWrongAccountType  = errors.New("wrong account type")
	ErrMissingSessionKey = errors.New("session token set without session signer")
)

// AccountSource supplies raw account data keyed by address.
type AccountSource interface {
	// FetchAccount returns the current data of [addr] or
	// [ErrAccountNotFound].
	FetchAccount(ctx context.Context, addr solana.PublicKey) ([]byte, error)
	// SubscribeAccount calls [onChange] with the new data every time [addr]
	// changes until the returned function is called.
	SubscribeAccount(ctx context.Context, addr solana.PublicKey, onChange func([]byte)) (func(), error)
}

// Submitter signs and sends an instruction, returning the transaction
// signature.
type Submitter interface {
	Submit(ctx context.Context, ix solana.Instruction) (string, error)
}

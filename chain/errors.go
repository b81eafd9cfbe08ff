// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrMissingAccount     = errors.New("missing account")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrDuplicateCall      = errors.New("duplicate call discriminator")
)

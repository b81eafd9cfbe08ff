// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrTruncatedInput  = errors.New("truncated input")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrInvalidUTF8     = errors.New("invalid utf-8 string")
	ErrInvalidSize     = errors.New("invalid size")
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen          = 1
	IntLen           = 4
	Uint64Len        = 8
	Int64Len         = 8
	PublicKeyLen     = 32
	DiscriminatorLen = 8

	MaxUint32 = ^uint32(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)

	// MaxInstructionDataSize bounds an encoded instruction payload.
	MaxInstructionDataSize = 1_200

	// MaxAccountDataSize is the largest account the runtime will allocate.
	MaxAccountDataSize = 10 * 1024 * 1024
)

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schema

import (
	"crypto/sha256"
	"encoding/binary"
)

const (
	accountNamespace     = "account"
	instructionNamespace = "global"
)

// AccountDiscriminator derives the tag of an account type from its name,
// e.g. "PlayerData".
func AccountDiscriminator(name string) uint64 {
	return sighash(accountNamespace, name)
}

// InstructionDiscriminator derives the tag of an instruction from its
// snake_case handler name, e.g. "init_player".
func InstructionDiscriminator(name string) uint64 {
	return sighash(instructionNamespace, name)
}

func sighash(namespace, name string) uint64 {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	return binary.LittleEndian.Uint64(h[:8])
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"slices"

	"github.com/gagliardetto/solana-go"

	"github.com/villefarm/lumberjack/codec"
	"github.com/villefarm/lumberjack/consts"
	"github.com/villefarm/lumberjack/schema"
)

var _ solana.Instruction = (*Instruction)(nil)

// Instruction is an encoded call ready to be placed in a transaction. It is
// not signed.
type Instruction struct {
	Program solana.PublicKey        `json:"programId"`
	Keys    solana.AccountMetaSlice `json:"keys"`
	Payload codec.Bytes             `json:"data"`
}

func (i *Instruction) ProgramID() solana.PublicKey {
	return i.Program
}

func (i *Instruction) Accounts() []*solana.AccountMeta {
	return i.Keys
}

func (i *Instruction) Data() ([]byte, error) {
	return i.Payload, nil
}

// Encode builds the instruction for [c]: the payload is the call's tag
// followed by [args], and the account list follows the call's slots.
func Encode(programID solana.PublicKey, c *Call, accounts map[string]solana.PublicKey, args schema.Record) (*Instruction, error) {
	keys, err := c.AccountMetas(programID, accounts)
	if err != nil {
		return nil, err
	}
	data, err := EncodeData(c, args)
	if err != nil {
		return nil, err
	}
	return &Instruction{
		Program: programID,
		Keys:    keys,
		Payload: data,
	}, nil
}

// EncodeData writes the payload of [c] into a buffer capped at
// [consts.MaxInstructionDataSize] and returns only the written bytes.
func EncodeData(c *Call, args schema.Record) ([]byte, error) {
	p := codec.NewWriter(c.MinSize(), consts.MaxInstructionDataSize)
	p.PackUint64(c.Discriminator)
	if err := schema.PackFields(p, c.Fields, args); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", c.Name, err)
	}
	return slices.Clone(p.Bytes()), nil
}

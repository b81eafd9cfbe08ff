// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lumberjacktest builds account buffers with a general purpose Borsh
// encoder so decoders can be checked against an independent implementation.
package lumberjacktest

import (
	"bytes"
	"crypto/rand"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"

	"github.com/villefarm/lumberjack/lumberjack"
)

type playerDataLayout struct {
	Discriminator uint64
	Authority     [32]byte
	Name          string
	Level         uint8
	Xp            uint64
	Energy        uint64
	Gold          uint64
	LastLogin     int64
}

type plotLayout struct {
	Discriminator uint64
	HumanType     string
	PlantedAt     int64
}

// PlayerDataBytes returns the account bytes the program would store for [p].
func PlayerDataBytes(p lumberjack.PlayerData) []byte {
	return mustSerialize(playerDataLayout{
		Discriminator: lumberjack.PlayerDataSchema.Discriminator,
		Authority:     p.Authority,
		Name:          p.Name,
		Level:         p.Level,
		Xp:            p.Xp,
		Energy:        p.Energy,
		Gold:          p.Gold,
		LastLogin:     p.LastLogin,
	})
}

// PlotBytes returns the account bytes the program would store for [p].
func PlotBytes(p lumberjack.Plot) []byte {
	return mustSerialize(plotLayout{
		Discriminator: lumberjack.PlotSchema.Discriminator,
		HumanType:     p.HumanType,
		PlantedAt:     p.PlantedAt,
	})
}

// Padded appends zero bytes up to [space], mirroring the fixed allocation
// accounts are created with.
func Padded(b []byte, space int) []byte {
	if len(b) >= space {
		return b
	}
	return append(b, make([]byte, space-len(b))...)
}

// RepeatedKey returns a key whose every byte is [b].
func RepeatedKey(b byte) solana.PublicKey {
	var k solana.PublicKey
	copy(k[:], bytes.Repeat([]byte{b}, len(k)))
	return k
}

// NewRandomKey returns a random public key for use during testing.
func NewRandomKey() (solana.PublicKey, error) {
	var k solana.PublicKey
	if _, err := rand.Read(k[:]); err != nil {
		return solana.PublicKey{}, err
	}
	return k, nil
}

func mustSerialize(v any) []byte {
	b, err := borsh.Serialize(v)
	if err != nil {
		panic(err)
	}
	return b
}

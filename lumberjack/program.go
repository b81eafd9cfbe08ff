// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lumberjack binds the on-chain lumberjack game program: its account
// layouts, its instructions and the addresses derived from a player's
// authority.
package lumberjack

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ProgramID is the deployed address of the game program.
var ProgramID = solana.MustPublicKeyFromBase58("9eSWUTsPxc3HEVCKe1oHBo7fXPSua5dHZkN48k2Q8yyL")

const (
	PlayerSeed = "player"
	PlotSeed   = "plot"
)

// PlayerAddress derives the PlayerData account owned by [authority].
func PlayerAddress(programID, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveAddress(programID, PlayerSeed, authority)
}

// PlotAddress derives the Plot account owned by [authority].
func PlotAddress(programID, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveAddress(programID, PlotSeed, authority)
}

func deriveAddress(programID solana.PublicKey, seed string, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{[]byte(seed), authority[:]}, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("deriving %s address for %s: %w", seed, authority, err)
	}
	return addr, bump, nil
}

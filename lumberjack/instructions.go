// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lumberjack

import (
	"github.com/gagliardetto/solana-go"

	"github.com/villefarm/lumberjack/chain"
	"github.com/villefarm/lumberjack/schema"
)

const (
	sessionTokenSlot  = "sessionToken"
	playerSlot        = "player"
	plotSlot          = "plot"
	signerSlot        = "signer"
	systemProgramSlot = "systemProgram"
)

var (
	InitPlayerCall = chain.NewCall("initPlayer", 4819994211046333298,
		[]chain.Slot{
			{Name: playerSlot, Writable: true},
			{Name: plotSlot, Writable: true},
			{Name: signerSlot, Writable: true, Signer: true},
			{Name: systemProgramSlot},
		},
	)
	PlantCall = chain.NewCall("plant", 17770342024824781256,
		[]chain.Slot{
			{Name: sessionTokenSlot, Optional: true},
			{Name: playerSlot, Writable: true},
			{Name: plotSlot, Writable: true},
			{Name: signerSlot, Writable: true, Signer: true},
		},
		schema.Field{Name: "humanType", Kind: schema.KindString},
	)
	HarvestCall = chain.NewCall("harvest", 14356254285327495652,
		[]chain.Slot{
			{Name: sessionTokenSlot, Optional: true},
			{Name: playerSlot, Writable: true},
			{Name: plotSlot, Writable: true},
			{Name: signerSlot, Writable: true, Signer: true},
		},
	)
	UpdateCall = chain.NewCall("update", 9222597562720635099,
		[]chain.Slot{
			{Name: sessionTokenSlot, Optional: true},
			{Name: playerSlot, Writable: true},
			{Name: signerSlot, Writable: true, Signer: true},
		},
	)

	// Calls indexes every instruction of the program.
	Calls = mustRegistry(InitPlayerCall, PlantCall, HarvestCall, UpdateCall)
)

func mustRegistry(calls ...*chain.Call) *chain.Registry {
	r, err := chain.NewRegistry(calls...)
	if err != nil {
		panic(err)
	}
	return r
}

type InitPlayerAccounts struct {
	Player        solana.PublicKey `json:"player"`
	Plot          solana.PublicKey `json:"plot"`
	Signer        solana.PublicKey `json:"signer"`
	SystemProgram solana.PublicKey `json:"systemProgram"`
}

// PlantAccounts, HarvestAccounts and UpdateAccounts accept a zero
// SessionToken when the wallet signs directly.
type PlantAccounts struct {
	SessionToken solana.PublicKey `json:"sessionToken"`
	Player       solana.PublicKey `json:"player"`
	Plot         solana.PublicKey `json:"plot"`
	Signer       solana.PublicKey `json:"signer"`
}

type HarvestAccounts struct {
	SessionToken solana.PublicKey `json:"sessionToken"`
	Player       solana.PublicKey `json:"player"`
	Plot         solana.PublicKey `json:"plot"`
	Signer       solana.PublicKey `json:"signer"`
}

type UpdateAccounts struct {
	SessionToken solana.PublicKey `json:"sessionToken"`
	Player       solana.PublicKey `json:"player"`
	Signer       solana.PublicKey `json:"signer"`
}

// InitPlayer references the system program in its last slot. A zero
// SystemProgram is the system program id itself.
func InitPlayer(accounts InitPlayerAccounts, programID solana.PublicKey) (*chain.Instruction, error) {
	keys := setKeys(map[string]solana.PublicKey{
		playerSlot: accounts.Player,
		plotSlot:   accounts.Plot,
		signerSlot: accounts.Signer,
	})
	keys[systemProgramSlot] = accounts.SystemProgram
	return chain.Encode(programID, InitPlayerCall, keys, nil)
}

func Plant(accounts PlantAccounts, humanType string, programID solana.PublicKey) (*chain.Instruction, error) {
	return chain.Encode(programID, PlantCall, setKeys(map[string]solana.PublicKey{
		sessionTokenSlot: accounts.SessionToken,
		playerSlot:       accounts.Player,
		plotSlot:         accounts.Plot,
		signerSlot:       accounts.Signer,
	}), schema.Record{"humanType": humanType})
}

func Harvest(accounts HarvestAccounts, programID solana.PublicKey) (*chain.Instruction, error) {
	return chain.Encode(programID, HarvestCall, setKeys(map[string]solana.PublicKey{
		sessionTokenSlot: accounts.SessionToken,
		playerSlot:       accounts.Player,
		plotSlot:         accounts.Plot,
		signerSlot:       accounts.Signer,
	}), nil)
}

func Update(accounts UpdateAccounts, programID solana.PublicKey) (*chain.Instruction, error) {
	return chain.Encode(programID, UpdateCall, setKeys(map[string]solana.PublicKey{
		sessionTokenSlot: accounts.SessionToken,
		playerSlot:       accounts.Player,
		signerSlot:       accounts.Signer,
	}), nil)
}

// setKeys drops unset keys so required slots left empty are reported as
// missing.
func setKeys(keys map[string]solana.PublicKey) map[string]solana.PublicKey {
	for name, key := range keys {
		if key.IsZero() {
			delete(keys, name)
		}
	}
	return keys
}

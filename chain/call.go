// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/villefarm/lumberjack/schema"
)

// Slot is one position in a call's account list. Flags are fixed per slot.
type Slot struct {
	Name     string `json:"name"`
	Writable bool   `json:"isMut"`
	Signer   bool   `json:"isSigner"`
	// Optional slots left empty are filled with the program id.
	Optional bool `json:"isOptional,omitempty"`
}

// Call describes an instruction: its tag, its argument layout and the
// ordered account slots it expects.
type Call struct {
	*schema.Schema
	Accounts []Slot `json:"accounts"`
}

func NewCall(name string, discriminator uint64, accounts []Slot, args ...schema.Field) *Call {
	return &Call{
		Schema:   schema.New(name, discriminator, args...),
		Accounts: accounts,
	}
}

// AccountMetas resolves [accounts] against the call's slots, in slot order.
// A required slot must be present in [accounts]; the zero key is a valid
// value there (it is the system program). Optional slots that are absent or
// zero reference [programID] and keep their flags.
func (c *Call) AccountMetas(programID solana.PublicKey, accounts map[string]solana.PublicKey) (solana.AccountMetaSlice, error) {
	metas := make(solana.AccountMetaSlice, 0, len(c.Accounts))
	for _, slot := range c.Accounts {
		key, ok := accounts[slot.Name]
		switch {
		case slot.Optional && key.IsZero():
			key = programID
		case !ok:
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingAccount, c.Name, slot.Name)
		}
		metas = append(metas, solana.NewAccountMeta(key, slot.Writable, slot.Signer))
	}
	return metas, nil
}

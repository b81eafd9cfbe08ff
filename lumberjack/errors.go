// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lumberjack

import (
	"errors"
	"fmt"
)

// Custom error codes returned by the program.
const (
	CodeNotEnoughEnergy   uint32 = 6000
	CodeNotEnoughGold     uint32 = 6001
	CodeNotReadyYet       uint32 = 6002
	CodeNothingWasPlanted uint32 = 6003
	CodeWrongAuthority    uint32 = 6004
)

var (
	ErrNotEnoughEnergy   = errors.New("not enough energy")
	ErrNotEnoughGold     = errors.New("not enough gold")
	ErrNotReadyYet       = errors.New("not ready for harvest yet")
	ErrNothingWasPlanted = errors.New("nothing was planted")
	ErrWrongAuthority    = errors.New("wrong authority")

	ErrUnknownProgramError = errors.New("unknown program error")
)

var programErrors = map[uint32]error{
	CodeNotEnoughEnergy:   ErrNotEnoughEnergy,
	CodeNotEnoughGold:     ErrNotEnoughGold,
	CodeNotReadyYet:       ErrNotReadyYet,
	CodeNothingWasPlanted: ErrNothingWasPlanted,
	CodeWrongAuthority:    ErrWrongAuthority,
}

// ProgramError maps a custom program error code to its sentinel.
func ProgramError(code uint32) error {
	if err, ok := programErrors[code]; ok {
		return err
	}
	return fmt.Errorf("%w: %d", ErrUnknownProgramError, code)
}

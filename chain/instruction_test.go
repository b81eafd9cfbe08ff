// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/villefarm/lumberjack/codec"
	"github.com/villefarm/lumberjack/consts"
	"github.com/villefarm/lumberjack/schema"
)

var (
	renameCall = NewCall("rename", 0x1111111111111111,
		[]Slot{
			{Name: "delegate", Optional: true},
			{Name: "target", Writable: true},
			{Name: "payer", Writable: true, Signer: true},
		},
		schema.Field{Name: "label", Kind: schema.KindString},
	)
	pingCall = NewCall("ping", 0x2222222222222222,
		[]Slot{{Name: "payer", Signer: true}},
	)
)

func key(b byte) solana.PublicKey {
	var k solana.PublicKey
	copy(k[:], bytes.Repeat([]byte{b}, len(k)))
	return k
}

func TestEncodePayload(t *testing.T) {
	require := require.New(t)
	program := key(0x01)
	ix, err := Encode(program, renameCall, map[string]solana.PublicKey{
		"target": key(0x02),
		"payer":  key(0x03),
	}, schema.Record{"label": "oak"})
	require.NoError(err)

	data, err := ix.Data()
	require.NoError(err)
	require.Equal([]byte{
		0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
		3, 0, 0, 0, 'o', 'a', 'k',
	}, data)
	require.Equal(program, ix.ProgramID())
}

func TestEncodeOptionalSlot(t *testing.T) {
	program := key(0x01)
	tests := []struct {
		name     string
		delegate solana.PublicKey
		want     solana.PublicKey
	}{
		{
			name: "absent",
			want: program,
		},
		{
			name:     "present",
			delegate: key(0x09),
			want:     key(0x09),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ix, err := Encode(program, renameCall, map[string]solana.PublicKey{
				"delegate": tt.delegate,
				"target":   key(0x02),
				"payer":    key(0x03),
			}, schema.Record{"label": ""})
			require.NoError(err)

			accounts := ix.Accounts()
			require.Len(accounts, 3)
			require.Equal(solana.NewAccountMeta(tt.want, false, false), accounts[0])
			require.Equal(solana.NewAccountMeta(key(0x02), true, false), accounts[1])
			require.Equal(solana.NewAccountMeta(key(0x03), true, true), accounts[2])
		})
	}
}

func TestEncodeMissingAccount(t *testing.T) {
	require := require.New(t)
	_, err := Encode(key(0x01), renameCall, map[string]solana.PublicKey{
		"payer": key(0x03),
	}, schema.Record{"label": ""})
	require.ErrorIs(err, ErrMissingAccount)
}

func TestEncodeZeroKeyInRequiredSlot(t *testing.T) {
	require := require.New(t)
	program := key(0x01)
	ix, err := Encode(program, renameCall, map[string]solana.PublicKey{
		"target": {},
		"payer":  key(0x03),
	}, schema.Record{"label": ""})
	require.NoError(err)
	require.Equal(solana.NewAccountMeta(solana.PublicKey{}, true, false), ix.Accounts()[1])

	// A zero key in an optional slot still falls back to the program.
	require.Equal(solana.NewAccountMeta(program, false, false), ix.Accounts()[0])
}

func TestEncodeNoArgs(t *testing.T) {
	require := require.New(t)
	data, err := EncodeData(pingCall, nil)
	require.NoError(err)
	require.Equal([]byte{0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22}, data)
	require.Len(data, consts.DiscriminatorLen)
}

func TestEncodePayloadTooLarge(t *testing.T) {
	require := require.New(t)
	limit := consts.MaxInstructionDataSize - consts.DiscriminatorLen - consts.IntLen

	_, err := EncodeData(renameCall, schema.Record{"label": strings.Repeat("a", limit)})
	require.NoError(err)

	_, err = EncodeData(renameCall, schema.Record{"label": strings.Repeat("a", limit+1)})
	require.ErrorIs(err, codec.ErrPayloadTooLarge)
	require.NotErrorIs(err, codec.ErrTruncatedInput)
}

func TestRegistryDecode(t *testing.T) {
	require := require.New(t)
	r, err := NewRegistry(renameCall, pingCall)
	require.NoError(err)

	data, err := EncodeData(renameCall, schema.Record{"label": "birch"})
	require.NoError(err)

	c, args, err := r.Decode(data)
	require.NoError(err)
	require.Same(renameCall, c)
	require.Equal(schema.Record{"label": "birch"}, args)

	_, _, err = r.Decode(data[:4])
	require.ErrorIs(err, codec.ErrTruncatedInput)

	_, _, err = r.Decode(make([]byte, 8))
	require.ErrorIs(err, ErrUnknownInstruction)

	found, ok := r.Lookup("ping")
	require.True(ok)
	require.Same(pingCall, found)
}

func TestRegistryDuplicate(t *testing.T) {
	_, err := NewRegistry(pingCall, NewCall("pong", pingCall.Discriminator, nil))
	require.ErrorIs(t, err, ErrDuplicateCall)
}

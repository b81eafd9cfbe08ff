// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/villefarm/lumberjack/consts"
)

func TestNewReader(t *testing.T) {
	require := require.New(t)
	p := NewReader([]byte{1, 2, 3})
	require.Zero(p.Offset())
	require.Equal(3, p.Remaining())
	require.NoError(p.Err())
}

func TestNewWriter(t *testing.T) {
	require := require.New(t)
	p := NewWriter(16, 4)
	p.PackUint32(7)
	require.NoError(p.Err())
	require.Equal([]byte{7, 0, 0, 0}, p.Bytes())

	p.PackByte(1)
	require.ErrorIs(p.Err(), ErrPayloadTooLarge)
	require.Len(p.Bytes(), consts.IntLen)
}

func TestPackerLittleEndian(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(32, 32)
	wp.PackUint64(14356254285327495652)
	wp.PackInt64(-2)
	wp.PackByte(5)
	require.NoError(wp.Err())
	require.Equal([]byte{
		0xe4, 0xf1, 0x1f, 0xb6, 0x35, 0xa9, 0x3b, 0xc7,
		0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x05,
	}, wp.Bytes())

	rp := NewReader(wp.Bytes())
	require.Equal(uint64(14356254285327495652), rp.UnpackUint64())
	require.Equal(int64(-2), rp.UnpackInt64())
	require.Equal(byte(5), rp.UnpackByte())
	require.NoError(rp.Err())
	require.Zero(rp.Remaining())
}

func TestPackerPublicKey(t *testing.T) {
	require := require.New(t)
	var key solana.PublicKey
	copy(key[:], bytes.Repeat([]byte{0xAA}, consts.PublicKeyLen))

	wp := NewWriter(consts.PublicKeyLen, consts.PublicKeyLen)
	wp.PackPublicKey(key)
	require.NoError(wp.Err())
	require.Equal(key[:], wp.Bytes())

	rp := NewReader(wp.Bytes())
	require.Equal(key, rp.UnpackPublicKey())
	require.NoError(rp.Err())

	short := NewReader(key[:31])
	require.Equal(solana.PublicKey{}, short.UnpackPublicKey())
	require.ErrorIs(short.Err(), ErrTruncatedInput)
}

func TestPackerString(t *testing.T) {
	tests := []struct {
		name  string
		value string
		wire  []byte
	}{
		{
			name:  "empty",
			value: "",
			wire:  []byte{0, 0, 0, 0},
		},
		{
			name:  "ascii",
			value: "John",
			wire:  []byte{4, 0, 0, 0, 'J', 'o', 'h', 'n'},
		},
		{
			name:  "multibyte",
			value: "ü",
			wire:  []byte{2, 0, 0, 0, 0xc3, 0xbc},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			wp := NewWriter(0, 64)
			wp.PackString(tt.value)
			require.NoError(wp.Err())
			require.Equal(tt.wire, wp.Bytes())

			rp := NewReader(tt.wire)
			require.Equal(tt.value, rp.UnpackString())
			require.NoError(rp.Err())
			require.Equal(len(tt.wire), rp.Offset())
		})
	}
}

func TestPackerStringTruncated(t *testing.T) {
	tests := []struct {
		name string
		wire []byte
	}{
		{
			name: "short prefix",
			wire: []byte{4, 0, 0},
		},
		{
			name: "short body",
			wire: []byte{4, 0, 0, 0, 'J', 'o'},
		},
		{
			name: "huge prefix",
			wire: []byte{0xff, 0xff, 0xff, 0xff, 'J'},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			rp := NewReader(tt.wire)
			require.Empty(rp.UnpackString())
			require.ErrorIs(rp.Err(), ErrTruncatedInput)
		})
	}
}

func TestPackerInvalidUTF8(t *testing.T) {
	require := require.New(t)
	rp := NewReader([]byte{2, 0, 0, 0, 0xff, 0xfe})
	require.Empty(rp.UnpackString())
	require.ErrorIs(rp.Err(), ErrInvalidUTF8)
	require.NotErrorIs(rp.Err(), ErrTruncatedInput)
}

func TestPackerStickyError(t *testing.T) {
	require := require.New(t)
	rp := NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	rp.UnpackUint32()
	require.Zero(rp.UnpackUint64())
	require.ErrorIs(rp.Err(), ErrTruncatedInput)

	// Later reads that would fit still return the zero value.
	require.Zero(rp.UnpackByte())
	require.Equal(consts.IntLen, rp.Offset())
}

func TestPackerUnpackFixedBytes(t *testing.T) {
	require := require.New(t)
	src := []byte{1, 2, 3, 4}
	rp := NewReader(src)
	b := rp.UnpackFixedBytes(3)
	require.Equal([]byte{1, 2, 3}, b)
	b[0] = 9
	require.Equal(byte(1), src[0])

	require.Nil(rp.UnpackFixedBytes(2))
	require.ErrorIs(rp.Err(), ErrTruncatedInput)
}

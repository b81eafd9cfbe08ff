// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Encodings understood by [LoadEncoded]. Account data returned by RPC nodes
// is base64 and addresses are base58.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
	EncodingBase58 = "base58"
)

func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// LoadHex converts a hex encoded string into bytes. An optional 0x prefix is
// accepted. Returns [ErrInvalidSize] when [expectedSize] is not -1 and does
// not match the decoded length.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return checkSize(bytes, expectedSize)
}

// LoadEncoded decodes [s] using the named encoding.
func LoadEncoded(s, encoding string, expectedSize int) ([]byte, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(encoding) {
	case EncodingHex:
		return LoadHex(s, expectedSize)
	case EncodingBase64:
		bytes, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return checkSize(bytes, expectedSize)
	case EncodingBase58:
		bytes, err := base58.Decode(s)
		if err != nil {
			return nil, err
		}
		return checkSize(bytes, expectedSize)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

func checkSize(b []byte, expectedSize int) ([]byte, error) {
	if expectedSize != -1 && len(b) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSize, expectedSize, len(b))
	}
	return b, nil
}

type Bytes []byte

func (b Bytes) String() string {
	return ToHex(b)
}

// MarshalText returns the hex representation of b.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText sets b to the bytes represented by text.
func (b *Bytes) UnmarshalText(text []byte) error {
	bytes, err := LoadHex(string(text), -1)
	if err != nil {
		return err
	}
	*b = bytes
	return nil
}

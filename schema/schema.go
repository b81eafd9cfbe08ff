// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package schema describes discriminated binary layouts as data and
// interprets them with a single decode/encode engine.
package schema

import (
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/villefarm/lumberjack/consts"
)

// Kind is the wire type of a single field.
type Kind uint8

const (
	KindU8 Kind = iota + 1
	KindU64
	KindI64
	KindPublicKey
	KindString
)

var kindNames = map[Kind]string{
	KindU8:        "u8",
	KindU64:       "u64",
	KindI64:       "i64",
	KindPublicKey: "publicKey",
	KindString:    "string",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Size returns the fixed encoded width of the kind. Strings report the
// width of their length prefix.
func (k Kind) Size() int {
	switch k {
	case KindU8:
		return consts.ByteLen
	case KindU64:
		return consts.Uint64Len
	case KindI64:
		return consts.Int64Len
	case KindPublicKey:
		return consts.PublicKeyLen
	case KindString:
		return consts.IntLen
	default:
		return 0
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, text)
}

// Field is a named, typed slot in a layout.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

// Schema is a discriminated layout: an 8 byte tag followed by [Fields] in
// order.
type Schema struct {
	Name          string  `json:"name"`
	Discriminator uint64  `json:"discriminator"`
	Fields        []Field `json:"fields"`
}

func New(name string, discriminator uint64, fields ...Field) *Schema {
	return &Schema{
		Name:          name,
		Discriminator: discriminator,
		Fields:        fields,
	}
}

// DiscriminatorBytes returns the little-endian tag as it appears on the wire.
func (s *Schema) DiscriminatorBytes() [consts.DiscriminatorLen]byte {
	var b [consts.DiscriminatorLen]byte
	binary.LittleEndian.PutUint64(b[:], s.Discriminator)
	return b
}

// DiscriminatorBase58 is the tag in the form RPC memcmp filters expect.
func (s *Schema) DiscriminatorBase58() string {
	b := s.DiscriminatorBytes()
	return base58.Encode(b[:])
}

// MinSize is the smallest buffer that could hold an instance: the tag, every
// fixed-width field and an empty string for each string field.
func (s *Schema) MinSize() int {
	size := consts.DiscriminatorLen
	for _, f := range s.Fields {
		size += f.Kind.Size()
	}
	return size
}

// Matches reports whether [b] starts with this schema's tag.
func (s *Schema) Matches(b []byte) bool {
	if len(b) < consts.DiscriminatorLen {
		return false
	}
	return binary.LittleEndian.Uint64(b) == s.Discriminator
}

// Identify returns the first schema whose tag prefixes [b].
func Identify(b []byte, schemas ...*Schema) (*Schema, bool) {
	for _, s := range schemas {
		if s.Matches(b) {
			return s, true
		}
	}
	return nil, false
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schema

import (
	"fmt"
	"slices"

	"github.com/villefarm/lumberjack/codec"
	"github.com/villefarm/lumberjack/consts"
)

// Decode interprets [b] as an instance of [s].
//
// A buffer whose tag belongs to another schema is not an error: Decode
// returns ok == false so callers can probe several schemas in turn. Buffers
// too short for the tag or for any field fail with [codec.ErrTruncatedInput].
// Bytes after the last field are ignored.
func Decode(b []byte, s *Schema) (Record, bool, error) {
	if len(b) < consts.DiscriminatorLen {
		return nil, false, fmt.Errorf("%w: %s needs a %d byte discriminator, got %d bytes",
			codec.ErrTruncatedInput, s.Name, consts.DiscriminatorLen, len(b))
	}
	p := codec.NewReader(b)
	if p.UnpackUint64() != s.Discriminator {
		return nil, false, nil
	}
	r, err := UnpackFields(p, s.Fields)
	if err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", s.Name, err)
	}
	return r, true, nil
}

// UnpackFields reads [fields] in order from the current offset of [p].
func UnpackFields(p *codec.Packer, fields []Field) (Record, error) {
	r := make(Record, len(fields))
	for _, f := range fields {
		var v any
		switch f.Kind {
		case KindU8:
			v = p.UnpackByte()
		case KindU64:
			v = p.UnpackUint64()
		case KindI64:
			v = p.UnpackInt64()
		case KindPublicKey:
			v = p.UnpackPublicKey()
		case KindString:
			v = p.UnpackString()
		default:
			return nil, fmt.Errorf("%w: field %s has %s", ErrUnknownKind, f.Name, f.Kind)
		}
		if err := p.Err(); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		r[f.Name] = v
	}
	return r, nil
}

// Encode writes the tag of [s] followed by every field of [r]. It is the
// inverse of [Decode].
func Encode(s *Schema, r Record) ([]byte, error) {
	p := codec.NewWriter(s.MinSize(), consts.MaxAccountDataSize)
	p.PackUint64(s.Discriminator)
	if err := PackFields(p, s.Fields, r); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", s.Name, err)
	}
	return slices.Clone(p.Bytes()), nil
}

// PackFields writes the values of [fields] from [r] in order. Every field
// must be present with the Go type matching its kind.
func PackFields(p *codec.Packer, fields []Field, r Record) error {
	for _, f := range fields {
		v, ok := r[f.Name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrFieldMissing, f.Name)
		}
		if !valueMatches(f.Kind, v) {
			return fmt.Errorf("%w: %s is %T, want %s", ErrFieldType, f.Name, v, f.Kind)
		}
		switch f.Kind {
		case KindU8:
			p.PackByte(r.Uint8(f.Name))
		case KindU64:
			p.PackUint64(r.Uint64(f.Name))
		case KindI64:
			p.PackInt64(r.Int64(f.Name))
		case KindPublicKey:
			p.PackPublicKey(r.PublicKey(f.Name))
		case KindString:
			p.PackString(r.String(f.Name))
		}
		if err := p.Err(); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

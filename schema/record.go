// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schema

import "github.com/gagliardetto/solana-go"

// Record holds field values keyed by field name. Values use the Go type that
// matches their [Kind]: uint8, uint64, int64, solana.PublicKey or string.
type Record map[string]any

func (r Record) Uint8(name string) uint8 {
	v, _ := r[name].(uint8)
	return v
}

func (r Record) Uint64(name string) uint64 {
	v, _ := r[name].(uint64)
	return v
}

func (r Record) Int64(name string) int64 {
	v, _ := r[name].(int64)
	return v
}

func (r Record) PublicKey(name string) solana.PublicKey {
	v, _ := r[name].(solana.PublicKey)
	return v
}

func (r Record) String(name string) string {
	v, _ := r[name].(string)
	return v
}

// valueMatches reports whether [v] has the Go type used for [k].
func valueMatches(k Kind, v any) bool {
	switch k {
	case KindU8:
		_, ok := v.(uint8)
		return ok
	case KindU64:
		_, ok := v.(uint64)
		return ok
	case KindI64:
		_, ok := v.(int64)
		return ok
	case KindPublicKey:
		_, ok := v.(solana.PublicKey)
		return ok
	case KindString:
		_, ok := v.(string)
		return ok
	default:
		return false
	}
}

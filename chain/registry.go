// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/binary"
	"fmt"

	"github.com/villefarm/lumberjack/codec"
	"github.com/villefarm/lumberjack/consts"
	"github.com/villefarm/lumberjack/schema"
)

// Registry indexes the calls of a program by discriminator.
type Registry struct {
	calls []*Call
	index map[uint64]*Call
}

func NewRegistry(calls ...*Call) (*Registry, error) {
	r := &Registry{
		calls: calls,
		index: make(map[uint64]*Call, len(calls)),
	}
	for _, c := range calls {
		if prev, ok := r.index[c.Discriminator]; ok {
			return nil, fmt.Errorf("%w: %s and %s share %d", ErrDuplicateCall, prev.Name, c.Name, c.Discriminator)
		}
		r.index[c.Discriminator] = c
	}
	return r, nil
}

func (r *Registry) Calls() []*Call {
	return r.calls
}

func (r *Registry) Lookup(name string) (*Call, bool) {
	for _, c := range r.calls {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Decode identifies the call encoded in [data] and returns its arguments.
func (r *Registry) Decode(data []byte) (*Call, schema.Record, error) {
	if len(data) < consts.DiscriminatorLen {
		return nil, nil, fmt.Errorf("%w: instruction needs a %d byte discriminator, got %d bytes",
			codec.ErrTruncatedInput, consts.DiscriminatorLen, len(data))
	}
	c, ok := r.index[binary.LittleEndian.Uint64(data)]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownInstruction, binary.LittleEndian.Uint64(data))
	}
	args, ok, err := schema.Decode(data, c.Schema)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		// unreachable: the index guarantees the tag matches
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownInstruction, c.Name)
	}
	return c, args, nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"

	"github.com/villefarm/lumberjack/consts"
)

// Packer reads or writes the little-endian wire primitives used by on-chain
// accounts and instruction payloads.
//
// Errors are sticky: once a call fails, every following call is a no-op and
// [Err] reports the first failure. Reads never index past the end of the
// underlying buffer.
type Packer struct {
	bytes   []byte
	offset  int
	maxSize int
	err     error
}

// NewReader returns a Packer that unpacks [src] from offset 0.
func NewReader(src []byte) *Packer {
	return &Packer{
		bytes:   src,
		maxSize: len(src),
	}
}

// NewWriter returns a Packer with [initial] bytes of capacity that refuses
// to grow beyond [limit] bytes.
func NewWriter(initial, limit int) *Packer {
	if initial > limit {
		initial = limit
	}
	return &Packer{
		bytes:   make([]byte, 0, initial),
		maxSize: limit,
	}
}

// Offset is the number of bytes read or written so far.
func (p *Packer) Offset() int {
	return p.offset
}

// Remaining is the number of unread bytes.
func (p *Packer) Remaining() int {
	return len(p.bytes) - p.offset
}

// Bytes returns the written prefix. The result aliases the Packer's buffer.
func (p *Packer) Bytes() []byte {
	return p.bytes[:p.offset]
}

// Err returns the first error encountered, if any.
func (p *Packer) Err() error {
	return p.err
}

func (p *Packer) Errored() bool {
	return p.err != nil
}

// checkSpace reports whether [n] more bytes can be read.
func (p *Packer) checkSpace(n int) bool {
	if p.err != nil {
		return false
	}
	if n < 0 || p.Remaining() < n {
		p.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncatedInput, n, p.offset, p.Remaining())
		return false
	}
	return true
}

// expand grows the written region by [n] bytes and reports whether it fit.
func (p *Packer) expand(n int) bool {
	if p.err != nil {
		return false
	}
	if p.offset+n > p.maxSize {
		p.err = fmt.Errorf("%w: writing %d bytes at offset %d exceeds %d",
			ErrPayloadTooLarge, n, p.offset, p.maxSize)
		return false
	}
	p.bytes = append(p.bytes, make([]byte, n)...)
	return true
}

func (p *Packer) PackByte(b byte) {
	if !p.expand(consts.ByteLen) {
		return
	}
	p.bytes[p.offset] = b
	p.offset += consts.ByteLen
}

func (p *Packer) UnpackByte() byte {
	if !p.checkSpace(consts.ByteLen) {
		return 0
	}
	b := p.bytes[p.offset]
	p.offset += consts.ByteLen
	return b
}

func (p *Packer) PackUint32(v uint32) {
	if !p.expand(consts.IntLen) {
		return
	}
	binary.LittleEndian.PutUint32(p.bytes[p.offset:], v)
	p.offset += consts.IntLen
}

func (p *Packer) UnpackUint32() uint32 {
	if !p.checkSpace(consts.IntLen) {
		return 0
	}
	v := binary.LittleEndian.Uint32(p.bytes[p.offset:])
	p.offset += consts.IntLen
	return v
}

func (p *Packer) PackUint64(v uint64) {
	if !p.expand(consts.Uint64Len) {
		return
	}
	binary.LittleEndian.PutUint64(p.bytes[p.offset:], v)
	p.offset += consts.Uint64Len
}

func (p *Packer) UnpackUint64() uint64 {
	if !p.checkSpace(consts.Uint64Len) {
		return 0
	}
	v := binary.LittleEndian.Uint64(p.bytes[p.offset:])
	p.offset += consts.Uint64Len
	return v
}

func (p *Packer) PackInt64(v int64) {
	p.PackUint64(uint64(v))
}

func (p *Packer) UnpackInt64() int64 {
	return int64(p.UnpackUint64())
}

// PackFixedBytes writes [b] without a length prefix.
func (p *Packer) PackFixedBytes(b []byte) {
	if !p.expand(len(b)) {
		return
	}
	copy(p.bytes[p.offset:], b)
	p.offset += len(b)
}

// UnpackFixedBytes reads exactly [size] bytes. The result is a copy.
func (p *Packer) UnpackFixedBytes(size int) []byte {
	if !p.checkSpace(size) {
		return nil
	}
	b := make([]byte, size)
	copy(b, p.bytes[p.offset:p.offset+size])
	p.offset += size
	return b
}

func (p *Packer) PackPublicKey(k solana.PublicKey) {
	p.PackFixedBytes(k[:])
}

func (p *Packer) UnpackPublicKey() solana.PublicKey {
	var k solana.PublicKey
	if !p.checkSpace(consts.PublicKeyLen) {
		return k
	}
	copy(k[:], p.bytes[p.offset:p.offset+consts.PublicKeyLen])
	p.offset += consts.PublicKeyLen
	return k
}

// PackString writes a u32 length prefix followed by the raw bytes of [s].
func (p *Packer) PackString(s string) {
	if uint64(len(s)) > uint64(consts.MaxUint32) {
		if p.err == nil {
			p.err = fmt.Errorf("%w: string of %d bytes", ErrPayloadTooLarge, len(s))
		}
		return
	}
	if !p.expand(StringLen(s)) {
		return
	}
	binary.LittleEndian.PutUint32(p.bytes[p.offset:], uint32(len(s)))
	copy(p.bytes[p.offset+consts.IntLen:], s)
	p.offset += StringLen(s)
}

// UnpackString reads a u32 length prefix and that many bytes of UTF-8 text.
// An empty string consumes only the prefix.
func (p *Packer) UnpackString() string {
	l := p.UnpackUint32()
	if p.err != nil {
		return ""
	}
	if uint64(l) > uint64(p.Remaining()) {
		p.err = fmt.Errorf("%w: string of %d bytes at offset %d, have %d",
			ErrTruncatedInput, l, p.offset, p.Remaining())
		return ""
	}
	b := p.bytes[p.offset : p.offset+int(l)]
	if !utf8.Valid(b) {
		p.err = fmt.Errorf("%w: at offset %d", ErrInvalidUTF8, p.offset)
		return ""
	}
	p.offset += int(l)
	return string(b)
}

package binarycookies

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/crypto/cryptobyte"
)

// span is a bounded window over the input. Every region the decoder
// reads (the file, a page, a record header, a record) is a span obtained
// through slice, which is the single place offsets read from the file
// are checked against the bytes actually present.
type span struct {
	b     []byte
	start int // absolute offset of b[0] in the file
}

func (s span) len() uint64 { return uint64(len(s.b)) }

// end is the absolute offset one past the last byte of s.
func (s span) end() int { return s.start + len(s.b) }

// slice returns the n bytes at off, relative to s. Arithmetic is done in
// 64 bits so 32-bit offsets and sizes from the file cannot wrap.
func (s span) slice(off, n uint64) (span, bool) {
	if off > s.len() || n > s.len()-off {
		return span{}, false
	}
	return span{b: s.b[off : off+n], start: s.start + int(off)}, true
}

// tail returns everything from off to the end of s.
func (s span) tail(off uint64) (span, bool) {
	if off > s.len() {
		return span{}, false
	}
	return s.slice(off, s.len()-off)
}

// cstring returns the bytes from off up to the first NUL. An offset equal
// to the length of s yields an empty string without reading. It reports
// false when off is past the end or no NUL follows it.
func (s span) cstring(off uint64) ([]byte, bool) {
	rest, ok := s.tail(off)
	if !ok {
		return nil, false
	}
	if len(rest.b) == 0 {
		return rest.b, true
	}
	n := bytes.IndexByte(rest.b, 0)
	if n < 0 {
		return nil, false
	}
	return rest.b[:n:n], true
}

func (s span) cursor() *cursor {
	return &cursor{s: cryptobyte.String(s.b), from: s}
}

// cursor reads fixed-width values sequentially from a span. Callers
// check the span is long enough for the whole run of reads up front, so
// the ok results only guard against a broken caller.
type cursor struct {
	s    cryptobyte.String
	from span
}

// pos is the absolute offset of the next unread byte.
func (c *cursor) pos() int { return c.from.end() - len(c.s) }

func (c *cursor) remaining() int { return len(c.s) }

func (c *cursor) bytes(n int) ([]byte, bool) {
	var out []byte
	ok := c.s.ReadBytes(&out, n)
	return out, ok
}

// tag reads len(want) bytes and reports whether they equal want.
func (c *cursor) tag(want []byte) ([]byte, bool) {
	got, ok := c.bytes(len(want))
	return got, ok && bytes.Equal(got, want)
}

func (c *cursor) uint32BE() (uint32, bool) {
	var v uint32
	ok := c.s.ReadUint32(&v)
	return v, ok
}

func (c *cursor) uint32LE() (uint32, bool) {
	b, ok := c.bytes(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (c *cursor) float64LE() (float64, bool) {
	b, ok := c.bytes(8)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), true
}

// Package fixture synthesizes binary cookie files for tests and
// benchmarks. It writes the layout independently of the decoder so the
// two can check each other.
package fixture

import (
	"encoding/binary"
	"math"
)

// Cookie describes one record. A nil string pointer stores a zero
// offset (absent field).
type Cookie struct {
	Version    uint32
	Flags      uint32
	Port       uint32
	Domain     *string
	Name       *string
	Path       *string
	Value      *string
	Comment    *string
	CommentURL *string
	Expiry     float64
	Creation   float64
}

// Page is an ordered list of cookies stored in one page.
type Page struct {
	Cookies []Cookie
}

// Str returns a pointer to s, for populating Cookie fields.
func Str(s string) *string { return &s }

// DefaultPlist is a stand-in for the property list Safari appends.
var DefaultPlist = []byte("bplist00\xd1\x01\x02_\x10\x18NSHTTPCookieAcceptPolicy\x10\x02")

const cookieHeaderSize = 10*4 + 2*8

// EncodeCookie lays out a single record: the fixed header followed by
// each present string, NUL-terminated, in field order. A record with no
// strings gets a trailing NUL so it still ends in a zero byte.
func EncodeCookie(c Cookie) []byte {
	fields := []*string{c.Domain, c.Name, c.Path, c.Value, c.Comment, c.CommentURL}

	var strs []byte
	offsets := make([]uint32, len(fields))
	for i, f := range fields {
		if f == nil {
			continue
		}
		offsets[i] = uint32(cookieHeaderSize + len(strs))
		strs = append(strs, *f...)
		strs = append(strs, 0)
	}
	if len(strs) == 0 {
		strs = []byte{0}
	}

	size := cookieHeaderSize + len(strs)
	b := make([]byte, 0, size)
	b = binary.LittleEndian.AppendUint32(b, uint32(size))
	b = binary.LittleEndian.AppendUint32(b, c.Version)
	b = binary.LittleEndian.AppendUint32(b, c.Flags)
	b = binary.LittleEndian.AppendUint32(b, c.Port)
	for _, off := range offsets {
		b = binary.LittleEndian.AppendUint32(b, off)
	}
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(c.Expiry))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(c.Creation))
	return append(b, strs...)
}

// EncodePage lays out a page: tag, cookie count, offset table,
// terminator, then the records back to back.
func EncodePage(p Page) []byte {
	records := make([][]byte, len(p.Cookies))
	for i, c := range p.Cookies {
		records[i] = EncodeCookie(c)
	}
	return EncodePageRecords(records)
}

// EncodePageRecords is EncodePage for records that were already
// encoded (or deliberately damaged) by the caller.
func EncodePageRecords(records [][]byte) []byte {
	header := 4 + 4 + 4*len(records) + 4
	b := []byte{0x00, 0x00, 0x01, 0x00}
	b = binary.LittleEndian.AppendUint32(b, uint32(len(records)))
	off := header
	for _, r := range records {
		b = binary.LittleEndian.AppendUint32(b, uint32(off))
		off += len(r)
	}
	b = append(b, 0x00, 0x00, 0x00, 0x00)
	for _, r := range records {
		b = append(b, r...)
	}
	return b
}

// Checksum sums the first byte of every 4-byte stride of each page.
func Checksum(pages [][]byte) uint32 {
	var sum uint32
	for _, p := range pages {
		for i := 0; i < len(p); i += 4 {
			sum += uint32(p[i])
		}
	}
	return sum
}

// Build returns a complete, valid file holding pages, followed by
// DefaultPlist.
func Build(pages ...Page) []byte {
	raw := make([][]byte, len(pages))
	for i, p := range pages {
		raw[i] = EncodePage(p)
	}
	return Assemble(raw, DefaultPlist)
}

// Assemble wraps already encoded pages with the file header, the
// checksum trailer and the plist tail.
func Assemble(pages [][]byte, plist []byte) []byte {
	b := []byte("cook")
	b = binary.BigEndian.AppendUint32(b, uint32(len(pages)))
	for _, p := range pages {
		b = binary.BigEndian.AppendUint32(b, uint32(len(p)))
	}
	for _, p := range pages {
		b = append(b, p...)
	}
	b = binary.BigEndian.AppendUint32(b, Checksum(pages))
	b = append(b, 0x07, 0x17, 0x20, 0x05)
	b = binary.BigEndian.AppendUint32(b, uint32(len(plist)))
	return append(b, plist...)
}

// PageOffset returns the absolute offset of page i inside a file built
// from pages by Build.
func PageOffset(pages []Page, i int) int {
	off := 8 + 4*len(pages)
	for _, p := range pages[:i] {
		off += len(EncodePage(p))
	}
	return off
}

// Sample is the single-cookie file used throughout the tests.
func Sample() []byte {
	return Build(Page{Cookies: []Cookie{SampleCookie()}})
}

// SampleCookie is version 1, flags 0, domain x.com, name a, value b,
// no path or comments, zero timestamps.
func SampleCookie() Cookie {
	return Cookie{
		Version: 1,
		Domain:  Str("x.com"),
		Name:    Str("a"),
		Value:   Str("b"),
	}
}

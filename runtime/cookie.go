package binarycookies

import (
	"bytes"
	"math"
	"time"
)

// MacEpochOffset is the number of seconds between the Unix epoch and the
// Mac absolute time epoch, 2001-01-01T00:00:00Z.
const MacEpochOffset = 978307200

// Field is an optional string stored in a cookie record. A zero offset in
// the file means the field is absent, which is distinct from present and
// empty.
type Field struct {
	Value   []byte
	Present bool
}

// String returns the field's bytes as a string, or "" when absent.
func (f Field) String() string { return string(f.Value) }

func (f Field) clone() Field {
	if !f.Present {
		return Field{}
	}
	return Field{Value: bytes.Clone(f.Value), Present: true}
}

// Cookie is one decoded record.
//
// Field values alias the buffer passed to Decode. Use Clone to keep a
// cookie after the buffer is released (for example after unmapping it).
type Cookie struct {
	Version uint32

	// Flags is the raw flag word. It is not interpreted, apart from by
	// the Netscape renderer.
	Flags uint32

	// Port is the reserved word that follows Flags. It is decoded but its
	// meaning is not established, so it is never rendered.
	Port uint32

	Domain     Field
	Name       Field
	Path       Field
	Value      Field
	Comment    Field
	CommentURL Field

	// Expiry and Creation are seconds since the Mac absolute time epoch.
	Expiry   float64
	Creation float64
}

// Clone returns a copy of c that does not share memory with the input
// buffer.
func (c Cookie) Clone() Cookie {
	out := c
	out.Domain = c.Domain.clone()
	out.Name = c.Name.clone()
	out.Path = c.Path.clone()
	out.Value = c.Value.clone()
	out.Comment = c.Comment.clone()
	out.CommentURL = c.CommentURL.clone()
	return out
}

// stringField pairs a record's string field with the key it is decoded
// from and rendered under.
type stringField struct {
	key string
	get func(*Cookie) *Field
}

// stringFields lists the string fields in file and output order.
var stringFields = [...]stringField{
	{"domain", func(c *Cookie) *Field { return &c.Domain }},
	{"name", func(c *Cookie) *Field { return &c.Name }},
	{"path", func(c *Cookie) *Field { return &c.Path }},
	{"value", func(c *Cookie) *Field { return &c.Value }},
	{"comment", func(c *Cookie) *Field { return &c.Comment }},
	{"commentUrl", func(c *Cookie) *Field { return &c.CommentURL }},
}

// Page is one page of the file with the cookies decoded from it.
type Page struct {
	// Start and End are absolute offsets of the page within the file.
	Start int
	End   int

	// Offsets holds the record offsets, relative to Start, in the order
	// the page lists them.
	Offsets []uint32

	Cookies []Cookie
}

// File is the fully decoded structure of a binary cookie file.
type File struct {
	Pages []Page

	// Checksum is the value both computed over the pages and saved in
	// the trailer.
	Checksum uint32

	// Plist is the property list that ends the file. It is length checked
	// and otherwise left opaque.
	Plist []byte
}

// Cookies returns the cookies of every page, in page order.
func (f *File) Cookies() []Cookie {
	n := 0
	for _, p := range f.Pages {
		n += len(p.Cookies)
	}
	out := make([]Cookie, 0, n)
	for _, p := range f.Pages {
		out = append(out, p.Cookies...)
	}
	return out
}

// MacEpochToUnix converts Mac absolute time seconds to Unix seconds.
func MacEpochToUnix(sec float64) float64 {
	return sec + MacEpochOffset
}

// MacEpochTime converts Mac absolute time seconds to a UTC time.Time.
// Values outside the range time.Time can represent are clamped to the
// zero time.
func MacEpochTime(sec float64) time.Time {
	unix := MacEpochToUnix(sec)
	if math.IsNaN(unix) || math.IsInf(unix, 0) || math.Abs(unix) > 1<<62/1e9 {
		return time.Time{}
	}
	whole, frac := math.Modf(unix)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}

// Filter returns the cookies for which keep reports true, preserving
// order. The input slice is not modified.
func Filter(cookies []Cookie, keep func(Cookie) bool) []Cookie {
	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

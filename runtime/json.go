package binarycookies

import (
	"bytes"
	"io"
	"math"
	"strconv"
)

// JSONOptions controls JSON rendering. The zero value renders the
// compact form.
type JSONOptions struct {
	// Indent, when non-empty, puts each member on its own line indented
	// by one copy of Indent per nesting level.
	Indent string
}

// AppendJSON appends the compact JSON document for cookies to dst:
//
//	{"cookies":[{"version":1,"flags":0,"domain":"x.com",...,"expiry":0,"creation":0}]}
//
// Each object holds version and flags, then whichever of domain, name,
// path, value, comment and commentUrl are present, then expiry and
// creation. Absent fields have no key. String bytes are escaped per JSON
// but otherwise copied through without transcoding.
func AppendJSON(dst []byte, cookies []Cookie) []byte {
	return JSONOptions{}.Append(dst, cookies)
}

// ToJSONBytes renders cookies as compact JSON into a new slice.
func ToJSONBytes(cookies []Cookie) []byte {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	return bb.AppendJSON(cookies, JSONOptions{}).Copy()
}

// WriteJSON renders cookies as compact JSON and writes the document to
// w in a single call.
func WriteJSON(w io.Writer, cookies []Cookie) error {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	_, err := w.Write(bb.AppendJSON(cookies, JSONOptions{}).Bytes())
	return err
}

// Append appends the JSON document for cookies to dst.
func (o JSONOptions) Append(dst []byte, cookies []Cookie) []byte {
	dst = append(dst, '{')
	dst = o.key(dst, 0, "cookies", true)
	dst = append(dst, '[')
	for i := range cookies {
		// Separators are fenceposts, not terminators.
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = o.newline(dst, 2)
		dst = o.appendCookie(dst, &cookies[i], 2)
	}
	if len(cookies) > 0 {
		dst = o.newline(dst, 1)
	}
	dst = append(dst, ']')
	dst = o.newline(dst, 0)
	return append(dst, '}')
}

func (o JSONOptions) appendCookie(dst []byte, c *Cookie, depth int) []byte {
	dst = append(dst, '{')
	dst = o.key(dst, depth, "version", true)
	dst = strconv.AppendUint(dst, uint64(c.Version), 10)
	dst = o.key(dst, depth, "flags", false)
	dst = strconv.AppendUint(dst, uint64(c.Flags), 10)
	for _, sf := range stringFields {
		f := sf.get(c)
		if !f.Present {
			continue
		}
		dst = o.key(dst, depth, sf.key, false)
		dst = appendJSONString(dst, f.Value)
	}
	dst = o.key(dst, depth, "expiry", false)
	dst = appendJSONFloat(dst, c.Expiry)
	dst = o.key(dst, depth, "creation", false)
	dst = appendJSONFloat(dst, c.Creation)
	dst = o.newline(dst, depth)
	return append(dst, '}')
}

// key writes the separator (unless first), the member name and the
// name separator for a member of an object at depth.
func (o JSONOptions) key(dst []byte, depth int, name string, first bool) []byte {
	if !first {
		dst = append(dst, ',')
	}
	dst = o.newline(dst, depth+1)
	dst = append(dst, '"')
	dst = append(dst, name...)
	dst = append(dst, '"', ':')
	if o.Indent != "" {
		dst = append(dst, ' ')
	}
	return dst
}

func (o JSONOptions) newline(dst []byte, depth int) []byte {
	if o.Indent == "" {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, o.Indent...)
	}
	return dst
}

const hexDigits = "0123456789ABCDEF"

// appendJSONString quotes s. Only '"', '\\' and bytes below 0x20 are
// escaped; everything else, including invalid UTF-8, is copied as is.
func appendJSONString(dst []byte, s []byte) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		start = i + 1
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}

// appendJSONFloat writes f with 17 significant digits, as C's "%.17g"
// does: trailing zeros of the mantissa are dropped and the exponent form
// is used below 1e-4 or from 1e17 up. JSON has no spelling for NaN or the
// infinities; they are written as null.
func appendJSONFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', 17, 64)
	num := dst[start:]
	exp := bytes.IndexByte(num, 'e')
	if exp < 0 {
		exp = len(num)
	}
	if bytes.IndexByte(num[:exp], '.') < 0 {
		return dst
	}
	mant := bytes.TrimRight(num[:exp], "0")
	mant = bytes.TrimSuffix(mant, []byte("."))
	n := copy(num[len(mant):], num[exp:])
	return dst[:start+len(mant)+n]
}

package binarycookies

import (
	"bytes"
	"math"
	"strconv"
)

// Flag bits used by the Netscape renderer. The JSON, CBOR, MessagePack
// and YAML renderers leave Flags as an opaque integer.
const (
	FlagSecure   uint32 = 0x1
	FlagHTTPOnly uint32 = 0x4
)

const netscapeHeader = "# Netscape HTTP Cookie File\n"

// httpOnlyPrefix marks HTTP-only cookies the way curl does.
const httpOnlyPrefix = "#HttpOnly_"

// AppendNetscape appends cookies to dst in the tab-separated format read
// by curl and wget:
//
//	domain  include-subdomains  path  secure  expiry  name  value
//
// include-subdomains is TRUE when the domain starts with a dot. Expiry is
// converted to whole Unix seconds. Absent fields are written empty.
func AppendNetscape(dst []byte, cookies []Cookie) []byte {
	dst = append(dst, netscapeHeader...)
	for i := range cookies {
		c := &cookies[i]
		if c.Flags&FlagHTTPOnly != 0 {
			dst = append(dst, httpOnlyPrefix...)
		}
		dst = append(dst, c.Domain.Value...)
		dst = append(dst, '\t')
		dst = appendBoolField(dst, bytes.HasPrefix(c.Domain.Value, []byte(".")))
		dst = append(dst, '\t')
		dst = append(dst, c.Path.Value...)
		dst = append(dst, '\t')
		dst = appendBoolField(dst, c.Flags&FlagSecure != 0)
		dst = append(dst, '\t')
		dst = strconv.AppendInt(dst, netscapeExpiry(c.Expiry), 10)
		dst = append(dst, '\t')
		dst = append(dst, c.Name.Value...)
		dst = append(dst, '\t')
		dst = append(dst, c.Value.Value...)
		dst = append(dst, '\n')
	}
	return dst
}

func appendBoolField(dst []byte, b bool) []byte {
	if b {
		return append(dst, "TRUE"...)
	}
	return append(dst, "FALSE"...)
}

// netscapeExpiry returns whole Unix seconds, or 0 (a session cookie) when
// the value cannot be represented.
func netscapeExpiry(mac float64) int64 {
	unix := math.Floor(MacEpochToUnix(mac))
	if math.IsNaN(unix) || unix < math.MinInt64 || unix >= math.MaxInt64 {
		return 0
	}
	return int64(unix)
}

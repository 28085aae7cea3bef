package binarycookies

import (
	"github.com/tinylib/msgp/msgp"
)

// AppendMsgpack appends cookies to dst as MessagePack, using the same
// schema and key order as the JSON document. Strings are written as
// MessagePack str values byte for byte.
func AppendMsgpack(dst []byte, cookies []Cookie) []byte {
	dst = msgp.AppendMapHeader(dst, 1)
	dst = msgp.AppendString(dst, "cookies")
	dst = msgp.AppendArrayHeader(dst, uint32(len(cookies)))
	for i := range cookies {
		dst = appendMsgpackCookie(dst, &cookies[i])
	}
	return dst
}

func appendMsgpackCookie(dst []byte, c *Cookie) []byte {
	n := uint32(4)
	for _, sf := range stringFields {
		if sf.get(c).Present {
			n++
		}
	}
	dst = msgp.AppendMapHeader(dst, n)
	dst = msgp.AppendString(dst, "version")
	dst = msgp.AppendUint32(dst, c.Version)
	dst = msgp.AppendString(dst, "flags")
	dst = msgp.AppendUint32(dst, c.Flags)
	for _, sf := range stringFields {
		f := sf.get(c)
		if !f.Present {
			continue
		}
		dst = msgp.AppendString(dst, sf.key)
		dst = msgp.AppendStringFromBytes(dst, f.Value)
	}
	dst = msgp.AppendString(dst, "expiry")
	dst = msgp.AppendFloat64(dst, c.Expiry)
	dst = msgp.AppendString(dst, "creation")
	dst = msgp.AppendFloat64(dst, c.Creation)
	return dst
}

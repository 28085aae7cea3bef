package core

import (
	"fmt"
	"strings"

	binarycookies "github.com/synadia-labs/binarycookies.go/runtime"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCBOR     Format = "cbor"
	FormatMsgpack  Format = "msgpack"
	FormatYAML     Format = "yaml"
	FormatNetscape Format = "netscape"
)

// Formats lists every supported Format, JSON first.
var Formats = []Format{FormatJSON, FormatCBOR, FormatMsgpack, FormatYAML, FormatNetscape}

// ParseFormat returns the Format named by s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &InvocationError{Err: fmt.Errorf("unknown format %q", s)}
}

// render encodes cookies in format f. The result never aliases the
// cookies, so the input buffer may be released once it returns.
func render(f Format, cookies []binarycookies.Cookie, pretty bool) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		var opts binarycookies.JSONOptions
		if pretty {
			opts.Indent = "  "
		}
		bb := binarycookies.GetByteBuffer()
		defer binarycookies.PutByteBuffer(bb)
		return append(bb.AppendJSON(cookies, opts).Copy(), '\n'), nil
	case FormatCBOR:
		return binarycookies.MarshalCBOR(cookies)
	case FormatMsgpack:
		bb := binarycookies.GetByteBuffer()
		defer binarycookies.PutByteBuffer(bb)
		return bb.AppendMsgpack(cookies).Copy(), nil
	case FormatYAML:
		return binarycookies.MarshalYAML(cookies)
	case FormatNetscape:
		bb := binarycookies.GetByteBuffer()
		defer binarycookies.PutByteBuffer(bb)
		return bb.AppendNetscape(cookies).Copy(), nil
	default:
		return nil, &InvocationError{Err: fmt.Errorf("unknown format %q", f)}
	}
}

package binarycookies

import (
	"github.com/fxamacker/cbor/v2"
)

// encMode encodes with Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite lengths.
// The same cookies always produce the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("binarycookies: CBOR encoder initialization failed: " + err.Error())
	}
}

type cborDocument struct {
	Cookies []cborCookie `cbor:"cookies"`
}

// cborCookie mirrors the JSON object. Absent string fields are nil and
// omitted; present but empty ones are kept.
type cborCookie struct {
	Version    uint32  `cbor:"version"`
	Flags      uint32  `cbor:"flags"`
	Domain     *string `cbor:"domain,omitempty"`
	Name       *string `cbor:"name,omitempty"`
	Path       *string `cbor:"path,omitempty"`
	Value      *string `cbor:"value,omitempty"`
	Comment    *string `cbor:"comment,omitempty"`
	CommentURL *string `cbor:"commentUrl,omitempty"`
	Expiry     float64 `cbor:"expiry"`
	Creation   float64 `cbor:"creation"`
}

func optional(f Field) *string {
	if !f.Present {
		return nil
	}
	s := string(f.Value)
	return &s
}

// MarshalCBOR renders cookies as a CBOR map with the same keys and
// omission rules as the JSON document. Floats are encoded in the
// shortest form that preserves their value.
func MarshalCBOR(cookies []Cookie) ([]byte, error) {
	doc := cborDocument{Cookies: make([]cborCookie, 0, len(cookies))}
	for _, c := range cookies {
		doc.Cookies = append(doc.Cookies, cborCookie{
			Version:    c.Version,
			Flags:      c.Flags,
			Domain:     optional(c.Domain),
			Name:       optional(c.Name),
			Path:       optional(c.Path),
			Value:      optional(c.Value),
			Comment:    optional(c.Comment),
			CommentURL: optional(c.CommentURL),
			Expiry:     c.Expiry,
			Creation:   c.Creation,
		})
	}
	return encMode.Marshal(doc)
}

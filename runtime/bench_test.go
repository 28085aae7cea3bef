package binarycookies_test

import (
	"strings"
	"testing"

	"github.com/synadia-labs/binarycookies.go/internal/fixture"
	binarycookies "github.com/synadia-labs/binarycookies.go/runtime"
)

// benchFile builds a file of pages with per cookies each, roughly the
// shape of a busy browser profile.
func benchFile(pages, per int) []byte {
	var ps []fixture.Page
	for p := 0; p < pages; p++ {
		var page fixture.Page
		for i := 0; i < per; i++ {
			page.Cookies = append(page.Cookies, fixture.Cookie{
				Flags:    5,
				Domain:   fixture.Str(".example.com"),
				Name:     fixture.Str("session"),
				Path:     fixture.Str("/"),
				Value:    fixture.Str(strings.Repeat("v", 64)),
				Expiry:   792345678.5,
				Creation: 760000000.25,
			})
		}
		ps = append(ps, page)
	}
	return fixture.Build(ps...)
}

func BenchmarkDecode(b *testing.B) {
	data := benchFile(16, 64)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := binarycookies.Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAppendJSON(b *testing.B) {
	cookies, err := binarycookies.Decode(benchFile(16, 64))
	if err != nil {
		b.Fatal(err)
	}
	var out []byte
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out = binarycookies.AppendJSON(out[:0], cookies)
	}
	_ = out
}

func BenchmarkAppendMsgpack(b *testing.B) {
	cookies, err := binarycookies.Decode(benchFile(16, 64))
	if err != nil {
		b.Fatal(err)
	}
	var out []byte
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out = binarycookies.AppendMsgpack(out[:0], cookies)
	}
	_ = out
}

func BenchmarkMarshalCBOR(b *testing.B) {
	cookies, err := binarycookies.Decode(benchFile(16, 64))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := binarycookies.MarshalCBOR(cookies); err != nil {
			b.Fatal(err)
		}
	}
}

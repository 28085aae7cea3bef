package binarycookies_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/synadia-labs/binarycookies.go/internal/fixture"
	binarycookies "github.com/synadia-labs/binarycookies.go/runtime"
)

func TestJSONSample(t *testing.T) {
	cookies, err := binarycookies.Decode(fixture.Sample())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	got := string(binarycookies.ToJSONBytes(cookies))
	want := `{"cookies":[{"version":1,"flags":0,"domain":"x.com","name":"a","value":"b","expiry":0,"creation":0}]}`
	if got != want {
		t.Fatalf("JSON mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestJSONEmpty(t *testing.T) {
	if got := string(binarycookies.AppendJSON(nil, nil)); got != `{"cookies":[]}` {
		t.Fatalf("empty mismatch: %s", got)
	}
	pretty := string(binarycookies.JSONOptions{Indent: "  "}.Append(nil, nil))
	if pretty != "{\n  \"cookies\": []\n}" {
		t.Fatalf("pretty empty mismatch: %q", pretty)
	}
}

func TestJSONCountAndOmission(t *testing.T) {
	pages := samplePages()
	cookies, err := binarycookies.Decode(fixture.Build(pages...))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out := binarycookies.ToJSONBytes(cookies)

	var doc struct {
		Cookies []map[string]any `json:"cookies"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := 0
	for _, p := range pages {
		want += len(p.Cookies)
	}
	if len(doc.Cookies) != want {
		t.Fatalf("expected %d cookies, got %d", want, len(doc.Cookies))
	}

	first := doc.Cookies[0]
	for _, key := range []string{"path", "comment", "commentUrl"} {
		if _, ok := first[key]; ok {
			t.Fatalf("absent field %q rendered: %s", key, out)
		}
	}
	if v, ok := doc.Cookies[2]["value"]; !ok || v != "" {
		t.Fatalf("present empty value should render as \"\", got %v (%v)", v, ok)
	}
	if bytes.Contains(out, []byte("null")) {
		t.Fatalf("absent fields must not render as null: %s", out)
	}
}

func TestJSONKeyOrder(t *testing.T) {
	cookies, err := binarycookies.Decode(fixture.Build(samplePages()...))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out := string(binarycookies.ToJSONBytes(cookies[1:2]))
	order := []string{`"version"`, `"flags"`, `"domain"`, `"name"`, `"path"`, `"value"`, `"comment"`, `"commentUrl"`, `"expiry"`, `"creation"`}
	last := -1
	for _, key := range order {
		i := strings.Index(out, key)
		if i <= last {
			t.Fatalf("key %s out of order in %s", key, out)
		}
		last = i
	}
	if strings.Contains(out, "port") || strings.Contains(out, "443") {
		t.Fatalf("reserved port word rendered: %s", out)
	}
}

func TestJSONEscaping(t *testing.T) {
	c := binarycookies.Cookie{
		Value: binarycookies.Field{
			Value:   []byte("q\"b\\s/\b\f\n\r\t\x00\x01\x1f\x7f\xc3\xa9\xff"),
			Present: true,
		},
	}
	out := string(binarycookies.AppendJSON(nil, []binarycookies.Cookie{c}))
	want := `"value":"q\"b\\s/\b\f\n\r\t\u0000\u0001\u001F` + "\x7f\xc3\xa9\xff" + `"`
	if !strings.Contains(out, want) {
		t.Fatalf("escaping mismatch:\n got %s\nwant substring %s", out, want)
	}
}

func TestJSONFloats(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-0.5, "-0.5"},
		{792345678.5, "792345678.5"},
		{0.1, "0.10000000000000001"},
		{733000000.123, "733000000.12300003"},
		{0.0001, "0.0001"},
		{1e17, "1e+17"},
		{1e21, "1e+21"},
		{1e-7, "9.9999999999999995e-08"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.SmallestNonzeroFloat64, "4.9406564584124654e-324"},
		{math.NaN(), "null"},
		{math.Inf(-1), "null"},
	}
	for _, c := range cases {
		cookie := binarycookies.Cookie{Expiry: c.f}
		out := string(binarycookies.AppendJSON(nil, []binarycookies.Cookie{cookie}))
		if !strings.Contains(out, `"expiry":`+c.want+`,`) {
			t.Fatalf("%v: expected %s in %s", c.f, c.want, out)
		}
	}
}

func TestJSONFloatsRoundTrip(t *testing.T) {
	values := []float64{792345678.123456789, 1.0 / 3, -1e-300, 123456789012345680000, 6.02214076e23}
	for _, v := range values {
		cookie := binarycookies.Cookie{Creation: v}
		var doc struct {
			Cookies []struct {
				Creation float64 `json:"creation"`
			} `json:"cookies"`
		}
		if err := json.Unmarshal(binarycookies.ToJSONBytes([]binarycookies.Cookie{cookie}), &doc); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if math.Float64bits(doc.Cookies[0].Creation) != math.Float64bits(v) {
			t.Fatalf("round trip of %v gave %v", v, doc.Cookies[0].Creation)
		}
	}
}

func TestJSONPretty(t *testing.T) {
	cookies, err := binarycookies.Decode(fixture.Sample())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	got := string(binarycookies.JSONOptions{Indent: "  "}.Append(nil, cookies))
	want := `{
  "cookies": [
    {
      "version": 1,
      "flags": 0,
      "domain": "x.com",
      "name": "a",
      "value": "b",
      "expiry": 0,
      "creation": 0
    }
  ]
}`
	if got != want {
		t.Fatalf("pretty mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestWriteJSON(t *testing.T) {
	cookies, err := binarycookies.Decode(fixture.Build(samplePages()...))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	var buf bytes.Buffer
	if err := binarycookies.WriteJSON(&buf, cookies); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), binarycookies.ToJSONBytes(cookies)) {
		t.Fatalf("WriteJSON and ToJSONBytes disagree")
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("invalid JSON: %s", buf.Bytes())
	}
}

package binarycookies_test

import (
	"testing"

	"github.com/synadia-labs/binarycookies.go/internal/fixture"
	binarycookies "github.com/synadia-labs/binarycookies.go/runtime"
	"gopkg.in/yaml.v3"
)

func TestMarshalYAMLKeyOrder(t *testing.T) {
	cookies, err := binarycookies.Decode(fixture.Build(samplePages()...))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out, err := binarycookies.MarshalYAML(cookies)
	if err != nil {
		t.Fatalf("MarshalYAML error: %v", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(out, &root); err != nil {
		t.Fatalf("Unmarshal error: %v\n%s", err, out)
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode || doc.Content[0].Value != "cookies" {
		t.Fatalf("unexpected document:\n%s", out)
	}
	list := doc.Content[1]
	if len(list.Content) != len(cookies) {
		t.Fatalf("expected %d cookies, got %d", len(cookies), len(list.Content))
	}

	var keys []string
	for i := 0; i < len(list.Content[1].Content); i += 2 {
		keys = append(keys, list.Content[1].Content[i].Value)
	}
	want := []string{"version", "flags", "domain", "name", "path", "value", "comment", "commentUrl", "expiry", "creation"}
	if len(keys) != len(want) {
		t.Fatalf("keys mismatch: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys mismatch: %v", keys)
		}
	}
}

func TestMarshalYAMLValues(t *testing.T) {
	cookies, err := binarycookies.Decode(fixture.Build(samplePages()...))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out, err := binarycookies.MarshalYAML(cookies)
	if err != nil {
		t.Fatalf("MarshalYAML error: %v", err)
	}

	var doc struct {
		Cookies []struct {
			Version uint32  `yaml:"version"`
			Flags   uint32  `yaml:"flags"`
			Domain  *string `yaml:"domain"`
			Path    *string `yaml:"path"`
			Value   *string `yaml:"value"`
			Expiry  float64 `yaml:"expiry"`
		} `yaml:"cookies"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("Unmarshal error: %v\n%s", err, out)
	}
	sample := doc.Cookies[0]
	if sample.Version != 1 || sample.Domain == nil || *sample.Domain != "x.com" || sample.Path != nil {
		t.Fatalf("sample mismatch:\n%s", out)
	}
	if doc.Cookies[1].Flags != 5 || doc.Cookies[1].Expiry != 792345678.5 {
		t.Fatalf("full cookie mismatch:\n%s", out)
	}
	if v := doc.Cookies[2].Value; v == nil || *v != "" {
		t.Fatalf("present empty value lost:\n%s", out)
	}
}

func TestMarshalYAMLEmpty(t *testing.T) {
	out, err := binarycookies.MarshalYAML(nil)
	if err != nil {
		t.Fatalf("MarshalYAML error: %v", err)
	}
	if string(out) != "cookies: []\n" {
		t.Fatalf("unexpected empty document: %q", out)
	}
}

func TestMarshalYAMLBinary(t *testing.T) {
	c := binarycookies.Cookie{Value: binarycookies.Field{Value: []byte("\xff\xfe"), Present: true}}
	out, err := binarycookies.MarshalYAML([]binarycookies.Cookie{c})
	if err != nil {
		t.Fatalf("MarshalYAML error: %v", err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(out, &root); err != nil {
		t.Fatalf("Unmarshal error: %v\n%s", err, out)
	}
	cookie := root.Content[0].Content[1].Content[0]
	for i := 0; i < len(cookie.Content); i += 2 {
		if cookie.Content[i].Value == "value" {
			if tag := cookie.Content[i+1].Tag; tag != "!!binary" {
				t.Fatalf("expected !!binary, got %q:\n%s", tag, out)
			}
			return
		}
	}
	t.Fatalf("value key missing:\n%s", out)
}

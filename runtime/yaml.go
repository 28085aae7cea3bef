package binarycookies

import (
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders cookies as a YAML document with the same schema
// and key order as the JSON document. Strings that are not valid UTF-8
// are emitted as !!binary.
func MarshalYAML(cookies []Cookie) ([]byte, error) {
	list := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i := range cookies {
		n, err := yamlCookie(&cookies[i])
		if err != nil {
			return nil, err
		}
		list.Content = append(list.Content, n)
	}
	if len(cookies) == 0 {
		list.Style = yaml.FlowStyle
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	doc.Content = append(doc.Content, yamlKey("cookies"), list)
	return yaml.Marshal(doc)
}

func yamlCookie(c *Cookie) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, v any) error {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return err
		}
		m.Content = append(m.Content, yamlKey(key), &val)
		return nil
	}

	if err := add("version", c.Version); err != nil {
		return nil, err
	}
	if err := add("flags", c.Flags); err != nil {
		return nil, err
	}
	for _, sf := range stringFields {
		f := sf.get(c)
		if !f.Present {
			continue
		}
		if err := add(sf.key, string(f.Value)); err != nil {
			return nil, err
		}
	}
	if err := add("expiry", c.Expiry); err != nil {
		return nil, err
	}
	if err := add("creation", c.Creation); err != nil {
		return nil, err
	}
	return m, nil
}

func yamlKey(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

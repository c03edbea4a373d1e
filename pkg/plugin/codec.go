package plugin

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes a name as a JSON string and a descriptor as an object
// whose keys keep descriptor order.
func (s Spec) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case SpecName:
		return json.Marshal(s.name)
	case SpecDescriptor:
		return s.descriptor.MarshalJSON()
	default:
		return nil, ErrInvalidSpec
	}
}

// MarshalJSON encodes d as an object with one key per entry, in order.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.ID))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Provider)
		if err != nil {
			return nil, fmt.Errorf("encode provider for %s: %w", e.ID, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON string as a name and a JSON object as a
// descriptor, preserving key order.
func (s *Spec) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case string:
		*s = Name(t)
		return nil
	case json.Delim:
		if t != '{' {
			break
		}
		d := Descriptor{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)

			var provider any
			if err := dec.Decode(&provider); err != nil {
				return fmt.Errorf("decode provider for %s: %w", key, err)
			}
			d = append(d, Provide(ID(key), provider))
		}
		*s = Spec{kind: SpecDescriptor, descriptor: d}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidSpec, bytes.TrimSpace(data))
}

// MarshalYAML encodes a name as a scalar and a descriptor as an ordered mapping.
func (s Spec) MarshalYAML() (any, error) {
	switch s.kind {
	case SpecName:
		return s.name, nil
	case SpecDescriptor:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range s.descriptor {
			val := &yaml.Node{}
			if err := val.Encode(e.Provider); err != nil {
				return nil, fmt.Errorf("encode provider for %s: %w", e.ID, err)
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(e.ID)},
				val,
			)
		}
		return node, nil
	default:
		return nil, ErrInvalidSpec
	}
}

// UnmarshalYAML decodes a scalar as a name and a mapping as a descriptor,
// preserving key order.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.AliasNode:
		return s.UnmarshalYAML(value.Alias)
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			break
		}
		*s = Name(value.Value)
		return nil
	case yaml.MappingNode:
		d := make(Descriptor, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i].Value
			var provider any
			if err := value.Content[i+1].Decode(&provider); err != nil {
				return fmt.Errorf("line %d: decode provider for %s: %w", value.Content[i+1].Line, key, err)
			}
			d = append(d, Provide(ID(key), provider))
		}
		*s = Spec{kind: SpecDescriptor, descriptor: d}
		return nil
	}

	return fmt.Errorf("line %d: %w", value.Line, ErrInvalidSpec)
}

package logsafe

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Marker stands in for a value that was deliberately not expanded.
type Marker string

const (
	// MarkerCircular replaces a reference to an object already on the current path.
	MarkerCircular Marker = "[CIRCULAR]"

	// MarkerMaxDepth replaces a value beyond the configured depth.
	MarkerMaxDepth Marker = "[MAX_DEPTH_REACHED]"
)

// entry is one key/value pair of an object node.
type entry struct {
	key   string
	value any
}

// object is an insertion-ordered map node of the intermediate tree.
type object struct {
	entries []entry
}

func (o *object) set(key string, value any) {
	o.entries = append(o.entries, entry{key: key, value: value})
}

// sequence is an ordered list node of the intermediate tree.
type sequence []any

// MarshalJSON writes entries in insertion order.
func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalJSON(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node in insertion order.
func (o *object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range o.entries {
		var val yaml.Node
		if err := val.Encode(e.value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key},
			&val,
		)
	}
	return node, nil
}

// EncodeMsgpack writes a map in insertion order.
func (o *object) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(o.entries)); err != nil {
		return err
	}
	for _, e := range o.entries {
		if err := enc.EncodeString(e.key); err != nil {
			return err
		}
		if err := enc.Encode(e.value); err != nil {
			return err
		}
	}
	return nil
}

// marshalJSON encodes v without HTML escaping; log sinks are not browsers.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

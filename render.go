package logsafe

import (
	"fmt"
	"strings"
)

// render turns the intermediate tree into text in the given format.
func (s *Serializer) render(tree any, format Format) (string, error) {
	if format == FormatStructured {
		return s.renderStructured(tree)
	}
	return renderFlat(tree), nil
}

// renderStructured hands the tree to the serializer's codec.
func (s *Serializer) renderStructured(tree any) (string, error) {
	s.mu.RLock()
	codec := s.codec
	s.mu.RUnlock()

	data, err := codec.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// renderFlat renders a top-level object as comma-joined key=value pairs.
// Anything else renders as it would inside an object.
func renderFlat(tree any) string {
	var b strings.Builder
	if obj, ok := tree.(*object); ok {
		writeEntries(&b, obj)
	} else {
		writeFlat(&b, tree)
	}
	return b.String()
}

func writeEntries(b *strings.Builder, obj *object) {
	for i, e := range obj.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.key)
		b.WriteByte('=')
		writeFlat(b, e.value)
	}
}

func writeFlat(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case *object:
		b.WriteByte('{')
		writeEntries(b, x)
		b.WriteByte('}')
	case sequence:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			writeFlat(b, item)
		}
		b.WriteByte(']')
	case Marker:
		b.WriteString(string(x))
	case string:
		b.WriteString(x)
	default:
		fmt.Fprint(b, x)
	}
}

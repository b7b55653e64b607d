package logsafe

// Codec renders the structured form of a serialized value.
// The value handed to Marshal is a tree of ordered objects, []any sequences,
// markers and scalars; object nodes implement json.Marshaler, yaml.Marshaler and
// msgpack.CustomEncoder.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)
}

// jsonCodec implements Codec for compact JSON.
type jsonCodec struct{}

// JSONCodec returns the default structured codec.
func JSONCodec() Codec {
	return jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as compact JSON.
func (jsonCodec) Marshal(v any) ([]byte, error) {
	return marshalJSON(v)
}

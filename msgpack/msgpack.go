// Package msgpack provides a MessagePack codec for structured log output,
// for sinks that ingest msgpack records such as the Fluentd forward protocol.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/logsafe"
)

// msgpackCodec implements logsafe.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec. Install it with logsafe.WithCodec or
// Serializer.SetCodec; it only affects types whose policy uses the
// structured format. Records keep field declaration order, so the encoded
// map lists keys in the same order as the JSON codec would.
func New() logsafe.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack. Object nodes encode themselves through
// their EncodeMsgpack method; markers and scalars encode as plain values.
// The result is binary, so the string returned by Serialize is meant for
// msgpack-aware sinks rather than text log lines.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

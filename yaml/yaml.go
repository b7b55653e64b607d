// Package yaml provides a YAML codec for structured log output.
package yaml

import (
	"bytes"

	"github.com/zoobzio/logsafe"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements logsafe.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() logsafe.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML, trimming the trailing newline.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(data, "\n"), nil
}

package fade

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec decodes style documents.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("expected JSON: %w", err)
	}
	return nil
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// AutoCodec decodes JSON when the payload starts with '{' or '[' and YAML
// otherwise.
type AutoCodec struct{}

// Unmarshal detects the format of data and deserializes it into v.
func (AutoCodec) Unmarshal(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSONCodec{}.Unmarshal(data, v)
	}
	return YAMLCodec{}.Unmarshal(data, v)
}

// ContentType reports that the format is detected per payload.
func (AutoCodec) ContentType() string {
	return "application/octet-stream"
}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
	_ Codec = AutoCodec{}
)

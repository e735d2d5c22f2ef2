// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routefile

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies the encoding of a route file.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Decoder converts encoded bytes into Go values.
// Implementations must be safe for concurrent use.
type Decoder interface {
	// Decode parses data into the value pointed to by v.
	Decode(data []byte, v any) error
}

// YAMLCodec decodes YAML documents.
type YAMLCodec struct{}

// Decode decodes YAML data into v.
func (YAMLCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// TOMLCodec decodes TOML documents.
type TOMLCodec struct{}

// Decode decodes TOML data into v.
func (TOMLCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// JSONCodec decodes JSON documents.
type JSONCodec struct{}

// Decode decodes JSON data into v.
func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

var decoders = map[Format]Decoder{
	FormatYAML: YAMLCodec{},
	FormatTOML: TOMLCodec{},
	FormatJSON: JSONCodec{},
}

// RegisterDecoder makes a decoder available under format, replacing any
// decoder already registered for it. It is not safe to call concurrently
// with loading; register decoders from init functions.
func RegisterDecoder(format Format, d Decoder) {
	decoders[format] = d
}

// GetDecoder returns the decoder registered for format.
func GetDecoder(format Format) (Decoder, error) {
	d, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("decoder not found for format: %s", format)
	}
	return d, nil
}

var extensionFormats = map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
	".toml": FormatTOML,
}

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("cannot detect format from extension %q; use LoadAs to specify format explicitly", ext)
}

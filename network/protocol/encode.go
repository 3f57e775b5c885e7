/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package protocol

import (
	"bytes"
	"fmt"
	"reflect"

	libmap "github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// MarshalJSON implements json.Marshaler.
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Unknown values decode to NetworkEmpty
// without error, matching the tolerant parsing used across the config layer.
func (p *NetworkProtocol) UnmarshalJSON(data []byte) error {
	*p = ParseBytes(bytes.Trim(data, `"`))
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *NetworkProtocol) UnmarshalText(data []byte) error {
	*p = ParseBytes(data)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *NetworkProtocol) UnmarshalYAML(node *yaml.Node) error {
	*p = Parse(node.Value)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// ViperDecoderHook returns a mapstructure decode hook that converts a string or
// integer configuration value into a NetworkProtocol, so viper-backed config
// structs can use the type directly as a field.
func ViperDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var z NetworkProtocol

		if to != reflect.TypeOf(z) {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			s, k := data.(string)
			if !k {
				return data, nil
			}
			return Parse(s), nil

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v := reflect.ValueOf(data)
			var i int64
			if v.CanInt() {
				i = v.Int()
			} else if v.CanUint() {
				i = int64(v.Uint())
			} else {
				return data, nil
			}

			if i <= int64(NetworkEmpty) || i > int64(NetworkUnixGram) {
				return nil, fmt.Errorf("network protocol: invalid value %d", i)
			}
			return NetworkProtocol(i), nil

		default:
			return data, nil
		}
	}
}

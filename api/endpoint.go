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

package api

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	libmap "github.com/go-viper/mapstructure/v2"
	libval "github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sundro/xnet/socket"
	"github.com/sundro/xnet/urlparse"
)

// Role says whether an Endpoint listens for connections or dials one out.
type Role string

const (
	RoleServer Role = "server"
	RoleClient Role = "client"
)

// Kind selects which codec drives a connection's read side: KindRaw hands
// every read straight to the callback, KindHTTP runs it through httpcodec,
// KindWS runs it through wscodec.
type Kind string

const (
	KindRaw  Kind = "raw"
	KindHTTP Kind = "http"
	KindWS   Kind = "ws"
)

// Endpoint describes one listener or client connection to create: its
// transport (TCP/UNIX, TLS or plain), its address, and the codec its
// connections speak.
type Endpoint struct {
	Role    Role   `mapstructure:"role" json:"role" yaml:"role" toml:"role" validate:"required,oneof=server client"`
	Kind    Kind   `mapstructure:"kind" json:"kind" yaml:"kind" toml:"kind" validate:"required,oneof=raw http ws"`
	Address string `mapstructure:"address" json:"address" yaml:"address" toml:"address" validate:"required"`

	Unix bool `mapstructure:"unix" json:"unix" yaml:"unix" toml:"unix"`
	TLS  bool `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`

	CertFile string `mapstructure:"certFile" json:"certFile" yaml:"certFile" toml:"certFile"`
	KeyFile  string `mapstructure:"keyFile" json:"keyFile" yaml:"keyFile" toml:"keyFile"`
	CertPEM  string `mapstructure:"certPem" json:"certPem" yaml:"certPem" toml:"certPem"`
	KeyPEM   string `mapstructure:"keyPem" json:"keyPem" yaml:"keyPem" toml:"keyPem"`

	ForceBind bool `mapstructure:"forceBind" json:"forceBind" yaml:"forceBind" toml:"forceBind"`
	MaxConn   int  `mapstructure:"maxConn" json:"maxConn" yaml:"maxConn" toml:"maxConn" validate:"omitempty,min=1"`
}

// Validate runs struct-tag validation and the TLS certificate-material
// check a tag alone can't express: TLS true requires either a PEM pair or a
// file pair, not neither.
func (e Endpoint) Validate() error {
	err := ErrorValidation.Error(nil)

	if er := libval.New().Struct(e); er != nil {
		if ive, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(ive)
		}
		if ves, ok := er.(libval.ValidationErrors); ok {
			for _, ve := range ves {
				//nolint goerr113
				err.Add(fmt.Errorf("endpoint field '%s' is not validated by constraint '%s'", ve.StructNamespace(), ve.ActualTag()))
			}
		}
	}

	if e.TLS {
		hasPEM := e.CertPEM != "" && e.KeyPEM != ""
		hasFile := e.CertFile != "" && e.KeyFile != ""
		if !hasPEM && !hasFile {
			//nolint goerr113
			err.Add(fmt.Errorf("endpoint requests TLS but has neither a cert/key PEM pair nor a cert/key file pair"))
		}
	}

	if err.HasParent() {
		return err
	}
	return nil
}

// resolveAddr splits Address into a host and port, deferring to urlparse so
// a "scheme://host:port" link and a bare "host:port" both work; Unix
// endpoints use Address directly as a filesystem path.
func (e Endpoint) resolveAddr() (string, int, error) {
	if e.Unix {
		return e.Address, 0, nil
	}

	link, err := urlparse.Parse(e.Address)
	if err != nil {
		return "", 0, ErrorResolve.Error(err)
	}
	return link.Addr, link.Port, nil
}

// flags derives the socket.Flags combination this Endpoint implies. Every
// connection the facade creates is non-blocking: the reactor, not the
// kernel, is what waits.
func (e Endpoint) flags() (socket.Flags, error) {
	var f socket.Flags

	switch e.Role {
	case RoleServer:
		f |= socket.FlagServer
	case RoleClient:
		f |= socket.FlagClient
	default:
		return 0, ErrorInvalidRole.Error()
	}

	f |= socket.FlagStream | socket.FlagNonBlock

	if e.Unix {
		f |= socket.FlagUnix
	}
	if e.TLS {
		f |= socket.FlagTLS
	}
	if e.ForceBind {
		f |= socket.FlagForceBind
	}
	if e.Role == RoleServer {
		f |= socket.FlagReuseAddr
	}

	return f, nil
}

// MarshalEndpointsCBOR/UnmarshalEndpointsCBOR,
// MarshalEndpointsTOML/UnmarshalEndpointsTOML and their YAML counterparts let a group of Endpoint values travel over whichever
// serialization a deployment's config loader already uses.

func MarshalEndpointsCBOR(endpoints []Endpoint) ([]byte, error) {
	return cbor.Marshal(endpoints)
}

func UnmarshalEndpointsCBOR(data []byte) ([]Endpoint, error) {
	var out []Endpoint
	if err := cbor.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func MarshalEndpointsTOML(endpoints []Endpoint) ([]byte, error) {
	return toml.Marshal(struct {
		Endpoint []Endpoint `toml:"endpoint"`
	}{Endpoint: endpoints})
}

func UnmarshalEndpointsTOML(data []byte) ([]Endpoint, error) {
	var out struct {
		Endpoint []Endpoint `toml:"endpoint"`
	}
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out.Endpoint, nil
}

func MarshalEndpointsYAML(endpoints []Endpoint) ([]byte, error) {
	return yaml.Marshal(endpoints)
}

func UnmarshalEndpointsYAML(data []byte) ([]Endpoint, error) {
	var out []Endpoint
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ViperDecoderHook returns a mapstructure decode hook translating a bare
// string into Role or Kind, so a viper-backed config struct can embed
// Endpoint fields directly.
func ViperDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}

		switch to {
		case reflect.TypeOf(Role("")):
			return Role(s), nil
		case reflect.TypeOf(Kind("")):
			return Kind(s), nil
		default:
			return data, nil
		}
	}
}

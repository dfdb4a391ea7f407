package runtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// codec binds a serialization format to std.<name>.encode and std.<name>.decode.
// Encoding turns a value into a String; decoding parses a String. Failures in either
// direction are Error values.
type codec struct {
	name   string
	opts   hostOptions
	encode func(host any) ([]byte, error)
	decode func(data []byte) (any, error)
}

var codecs = []codec{
	{name: "json", encode: json.Marshal, decode: decodeJSON},
	{name: "yaml", encode: yaml.Marshal, decode: decodeYAML},
	{name: "toml", encode: encodeTOML, decode: decodeTOML},
	{name: "cbor", opts: hostOptions{anyKeys: true}, encode: cbor.Marshal, decode: decodeCBOR},
}

func (c codec) encodeNative() NativeFunc {
	name := c.name + ".encode"
	return func(ctx *CallContext) (Value, error) {
		if bad, ok := Arity(ctx, name, 1, 1); !ok {
			return bad, nil
		}
		host, err := toHost(ctx.Arg(0), ctx.Interner, c.opts)
		if err != nil {
			return NewError(ErrorFrom(fmt.Errorf("%s: %w", name, err))), nil
		}
		data, err := c.encode(host)
		if err != nil {
			return NewError(ErrorFrom(fmt.Errorf("%s: %w", name, err))), nil
		}
		return NewString(string(data)), nil
	}
}

func (c codec) decodeNative() NativeFunc {
	name := c.name + ".decode"
	return func(ctx *CallContext) (Value, error) {
		if bad, ok := Arity(ctx, name, 1, 1); !ok {
			return bad, nil
		}
		if bad, ok := ExpectKind(ctx, name, 0, KindString); !ok {
			return bad, nil
		}
		decoded, err := c.decode([]byte(ctx.Arg(0).str()))
		if err != nil {
			return NewError(ErrorFrom(fmt.Errorf("%s: %w", name, err))), nil
		}
		return ValueOf(decoded), nil
	}
}

func decodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("trailing data")
	}
	return decoded, nil
}

func decodeYAML(data []byte) (any, error) {
	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func encodeTOML(host any) ([]byte, error) {
	if _, ok := host.(map[string]any); !ok {
		return nil, errors.New("toml documents must be dicts")
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(host); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeTOML(data []byte) (any, error) {
	var decoded map[string]any
	if _, err := toml.Decode(string(data), &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func decodeCBOR(data []byte) (any, error) {
	var decoded any
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

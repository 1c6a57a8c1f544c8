package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"
)

// Decode parses JSON into a Value.
// Integers that fit int64 become Int; other numbers become Float.
// Anything but whitespace after the first value is an error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return FromAny(raw)
}

// DecodeArray parses JSON that must hold an array of records.
// A single top-level object is accepted and wrapped into a one-element Array.
func DecodeArray(data []byte) (Array, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	switch val := v.(type) {
	case Array:
		return val, nil
	case Object:
		return Array{val}, nil
	default:
		return nil, fmt.Errorf("expected array of records, got %s", KindOf(v))
	}
}

// FromAny converts a decoded Go value (from encoding/json, yaml.v3 or
// hand-built literals) into a Value.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return Float(val), nil
		}
		return Int(val), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		s := string(val)
		if !strings.ContainsAny(s, ".eE") {
			if n, err := val.Int64(); err == nil {
				return Int(n), nil
			}
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", s, err)
		}
		return Float(f), nil
	case time.Time:
		return String(val.Format(time.RFC3339Nano)), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			conv, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = conv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			conv, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = conv
		}
		return obj, nil
	case map[any]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			key := fmt.Sprint(k)
			conv, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", key, err)
			}
			obj[key] = conv
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// MustFromAny is like FromAny but panics on error.
// Use only in tests or with literals known to be valid.
func MustFromAny(v any) Value {
	conv, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return conv
}

// ToAny converts a Value into plain Go values (map[string]any, []any,
// int64, float64, string, bool, nil). Funcs are dropped from objects and
// become nil inside arrays; Struct kinds are dropped.
func ToAny(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToAny(elem)
		}
		return out
	case Object:
		return objectToAny(val)
	case *Struct:
		if val == nil {
			return nil
		}
		return objectToAny(val.Fields)
	default:
		return nil
	}
}

func objectToAny(obj Object) map[string]any {
	out := make(map[string]any, len(obj))
	for k, elem := range obj {
		if _, isFunc := elem.(Func); isFunc || elem == nil {
			continue
		}
		out[k] = ToAny(elem)
	}
	return out
}

// Marshal encodes v as JSON with sorted object keys and no HTML escaping.
//
// The encoding follows JSON.stringify: undefined and Func fields are
// omitted from objects and written as null inside arrays, Struct kinds are
// not written, non-finite floats become null.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is Marshal with two-space indentation, for human output.
func MarshalIndent(v Value) ([]byte, error) {
	raw, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Object with sorted keys.
func (obj Object) MarshalJSON() ([]byte, error) {
	return Marshal(obj)
}

// MarshalJSON implements json.Marshaler for Array.
func (arr Array) MarshalJSON() ([]byte, error) {
	return Marshal(arr)
}

// UnmarshalJSON implements json.Unmarshaler for Object.
func (obj *Object) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	o, ok := v.(Object)
	if !ok {
		return fmt.Errorf("expected object, got %s", KindOf(v))
	}
	*obj = o
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Array.
func (arr *Array) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	a, ok := v.(Array)
	if !ok {
		return fmt.Errorf("expected array, got %s", KindOf(v))
	}
	*arr = a
	return nil
}

// writeJSON writes v to buf. When canonical is true, strings are NFC
// normalised, keys use RFC 8785 order, and non-finite floats are errors.
func writeJSON(buf *bytes.Buffer, v Value, canonical bool) error {
	switch val := v.(type) {
	case nil, Null, Func:
		buf.WriteString("null")
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Int:
		fmt.Fprintf(buf, "%d", int64(val))
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			if canonical {
				return fmt.Errorf("non-finite number %v has no canonical form", f)
			}
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(FormatNumber(f))
	case String:
		b, err := encodeString(string(val), canonical)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elem, canonical); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case Object:
		return writeObject(buf, val, canonical)
	case *Struct:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		return writeObject(buf, val.Fields, canonical)
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
	return nil
}

func writeObject(buf *bytes.Buffer, obj Object, canonical bool) error {
	var keys []string
	if canonical {
		keys = obj.SortedKeys()
	} else {
		keys = make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	buf.WriteByte('{')
	first := true
	for _, k := range keys {
		elem := obj[k]
		if _, isFunc := elem.(Func); isFunc || elem == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		kb, err := encodeString(k, canonical)
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		if err := writeJSON(buf, elem, canonical); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FromAny converts values produced by the YAML, TOML and JSON decoders into
// a content tree. Maps with non-string keys (yaml.v3 into interface{}) are
// normalised with fmt.Sprint; times become RFC 3339 strings.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Number(float64(v)), nil
	case int8:
		return Number(float64(v)), nil
	case int16:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint:
		return Number(float64(v)), nil
	case uint8:
		return Number(float64(v)), nil
	case uint16:
		return Number(float64(v)), nil
	case uint32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q: %w", v.String(), err)
		}
		return Number(f), nil
	case time.Time:
		return String(v.UTC().Format(time.RFC3339Nano)), nil
	case map[string]any:
		node := make(map[string]Value, len(v))
		for key, inner := range v {
			field, err := FromAny(inner)
			if err != nil {
				return Null(), fmt.Errorf("%s: %w", key, err)
			}
			node[key] = field
		}
		return Value{kind: KindNode, node: node}, nil
	case map[any]any:
		node := make(map[string]Value, len(v))
		for key, inner := range v {
			name := fmt.Sprint(key)
			field, err := FromAny(inner)
			if err != nil {
				return Null(), fmt.Errorf("%s: %w", name, err)
			}
			node[name] = field
		}
		return Value{kind: KindNode, node: node}, nil
	case []any:
		seq := make([]Value, len(v))
		for i, inner := range v {
			item, err := FromAny(inner)
			if err != nil {
				return Null(), fmt.Errorf("[%d]: %w", i, err)
			}
			seq[i] = item
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case []string:
		seq := make([]Value, len(v))
		for i, s := range v {
			seq[i] = String(s)
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case []map[string]any:
		seq := make([]Value, len(v))
		for i, inner := range v {
			item, err := FromAny(inner)
			if err != nil {
				return Null(), fmt.Errorf("[%d]: %w", i, err)
			}
			seq[i] = item
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case fmt.Stringer:
		// go-toml local dates and times
		return String(v.String()), nil
	default:
		return Null(), fmt.Errorf("unsupported content type %T", raw)
	}
}

// ParseJSON decodes a JSON document into a content tree. JSON null and an
// empty input both yield Null.
func ParseJSON(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Null(), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Null(), err
	}
	return FromAny(raw)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Package content holds the content tree used for every page: a tagged union
// of scalars, sequences and nodes, plus the fallback merge that fills gaps in
// CMS documents from static defaults.
package content

import (
	"sort"
	"strconv"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
	KindNode
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindNode:
		return "node"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Fields is the input form of a node: field name to value.
type Fields map[string]Value

// Value is an immutable piece of content. The zero Value is Null, which
// means "absent"; false, 0 and "" are ordinary values of their own kind.
type Value struct {
	kind Kind
	str  string
	num  float64
	flag bool
	seq  []Value
	node map[string]Value
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Sequence builds an ordered list. A sequence with no items is still a
// sequence, not Null.
func Sequence(items ...Value) Value {
	seq := make([]Value, len(items))
	copy(seq, items)
	return Value{kind: KindSequence, seq: seq}
}

// NewNode builds a node from fields. The map is copied.
func NewNode(fields Fields) Value {
	node := make(map[string]Value, len(fields))
	for k, v := range fields {
		node[k] = v
	}
	return Value{kind: KindNode, node: node}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) IsNode() bool { return v.kind == KindNode }

func (v Value) IsSequence() bool { return v.kind == KindSequence }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == KindBool }

// Len reports the number of items of a sequence or fields of a node.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindNode:
		return len(v.node)
	}
	return 0
}

// Index returns the i-th item of a sequence, or Null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindSequence || i < 0 || i >= len(v.seq) {
		return Null()
	}
	return v.seq[i]
}

// Items returns a copy of the items of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out
}

func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindNode {
		return Null(), false
	}
	field, ok := v.node[key]
	return field, ok
}

// Get returns the field at key, Null when missing or when v is not a node.
func (v Value) Get(key string) Value {
	field, _ := v.Lookup(key)
	return field
}

func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// Path walks nested nodes, e.g. Path("hero", "title").
func (v Value) Path(keys ...string) Value {
	cur := v
	for _, k := range keys {
		cur = cur.Get(k)
	}
	return cur
}

// Keys returns node field names in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindNode {
		return nil
	}
	keys := make([]string, 0, len(v.node))
	for k := range v.node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface converts the tree into plain Go values (map[string]any, []any,
// string, float64, bool, nil) for templates and encoders. The result is a
// fresh copy.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}
		return out
	case KindNode:
		out := make(map[string]any, len(v.node))
		for k, field := range v.node {
			out[k] = field.Interface()
		}
		return out
	}
	return nil
}

// Equal reports deep structural equality.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBool:
		return a.flag == b.flag
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindNode:
		if len(a.node) != len(b.node) {
			return false
		}
		for k, av := range a.node {
			bv, ok := b.node[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

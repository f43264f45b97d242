// Package document holds the parsed, order-preserving JSON values that make
// up a JSONL document. Values are immutable once loaded.
package document

import "strconv"

// Kind identifies the JSON type of a Value.
type Kind int

const (
	Null Kind = iota
	Boolean
	Number
	String
	Array
	Object
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed JSON value. Objects keep their members in source order
// and numbers keep the literal text they were written with.
type Value struct {
	Kind    Kind
	Bool    bool
	Str     string
	Literal string
	Items   []Value
	Members []Member
}

// Len returns the number of children of an array or object, 0 otherwise.
func (v Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Items)
	case Object:
		return len(v.Members)
	default:
		return 0
	}
}

// Get returns the member value stored under key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Interface converts the value to the encoding/json generic representation.
// Member order is lost; numbers become float64.
func (v Value) Interface() any {
	switch v.Kind {
	case Boolean:
		return v.Bool
	case Number:
		f, err := strconv.ParseFloat(v.Literal, 64)
		if err != nil {
			return v.Literal
		}
		return f
	case String:
		return v.Str
	case Array:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// Convenience constructors, mostly used by tests and fixtures.

func NullValue() Value { return Value{Kind: Null} }

func BoolValue(b bool) Value { return Value{Kind: Boolean, Bool: b} }

func NumberValue(lit string) Value { return Value{Kind: Number, Literal: lit} }

func StringValue(s string) Value { return Value{Kind: String, Str: s} }

func ArrayValue(items ...Value) Value { return Value{Kind: Array, Items: items} }

func ObjectValue(members ...Member) Value { return Value{Kind: Object, Members: members} }

// Document is the ordered set of records read from one input file.
type Document struct {
	Source  string
	Records []Value
}

// Len returns the number of records.
func (d Document) Len() int {
	return len(d.Records)
}

// Empty reports whether the document has no records.
func (d Document) Empty() bool {
	return len(d.Records) == 0
}

// Record returns record i and whether i is in range.
func (d Document) Record(i int) (Value, bool) {
	if i < 0 || i >= len(d.Records) {
		return Value{}, false
	}
	return d.Records[i], true
}

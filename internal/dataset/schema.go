package dataset

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Kind enumerates the value kinds a column can hold
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Field is a named column of the schema
type Field struct {
	Name string
	Kind Kind
}

// Schema describes the columns of a dataset, sorted by name
type Schema struct {
	Fields []Field
}

// Names returns the column names in schema order
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		names[i] = field.Name
	}
	return names
}

// Index returns the position of the column or -1
func (s Schema) Index(name string) int {
	for i, field := range s.Fields {
		if field.Name == name {
			return i
		}
	}
	return -1
}

// mergeKinds returns the kind able to hold values of both kinds. Numbers
// widen to float, any other conflict falls back to string.
func mergeKinds(a, b Kind) Kind {
	switch {
	case a == b:
		return a
	case a == KindNull:
		return b
	case b == KindNull:
		return a
	case (a == KindInt && b == KindFloat) || (a == KindFloat && b == KindInt):
		return KindFloat
	default:
		return KindString
	}
}

// normalize converts a decoded value into one of the values a record holds:
// nil, bool, string or json.Number. Nested values are kept as JSON text.
func normalize(v interface{}) (interface{}, Kind) {
	switch t := v.(type) {
	case nil:
		return nil, KindNull
	case bool:
		return t, KindBool
	case string:
		return t, KindString
	case json.Number:
		return t, numberKind(t)
	case int:
		return json.Number(strconv.Itoa(t)), KindInt
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), KindInt
	case float64:
		n := json.Number(strconv.FormatFloat(t, 'g', -1, 64))
		return n, numberKind(n)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, KindNull
		}
		return string(b), KindString
	}
}

func numberKind(n json.Number) Kind {
	if strings.ContainsAny(n.String(), ".eE") {
		return KindFloat
	}
	if _, err := n.Int64(); err != nil {
		// integers that do not fit in 64 bits
		return KindFloat
	}
	return KindInt
}

// coerce converts a normalized value to the Go value of the column kind
func coerce(v interface{}, kind Kind) interface{} {
	if v == nil {
		return nil
	}

	switch kind {
	case KindBool:
		if b, ok := v.(bool); ok {
			return b
		}
	case KindInt:
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i
			}
		}
	case KindFloat:
		if n, ok := v.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				return f
			}
		}
	case KindString:
		switch t := v.(type) {
		case string:
			return t
		case bool:
			return strconv.FormatBool(t)
		case json.Number:
			return t.String()
		}
	}

	return nil
}

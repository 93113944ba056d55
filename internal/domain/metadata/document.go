package metadata

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// FieldStatus tells the outcome of a field lookup.
type FieldStatus int

// Field lookup outcomes.
const (
	FieldOK FieldStatus = iota
	FieldMissing
	FieldWrongType
)

func (s FieldStatus) String() string {
	switch s {
	case FieldOK:
		return "ok"
	case FieldMissing:
		return "missing"
	case FieldWrongType:
		return "wrong_type"
	default:
		return "unknown"
	}
}

// Field is the tagged result of a lookup. Value is only meaningful when
// Status is FieldOK.
type Field[T any] struct {
	Value  T
	Status FieldStatus
}

// OK reports whether the field was present with the expected type.
func (f Field[T]) OK() bool {
	return f.Status == FieldOK
}

// Node is one value inside a parsed document.
type Node struct {
	r gjson.Result
}

// Document is a parsed metadata file.
type Document struct {
	Node
}

// IsObject reports whether the node is a JSON object.
func (n Node) IsObject() bool {
	return n.r.IsObject()
}

// StringValue returns the node as a string if it is one.
func (n Node) StringValue() (string, bool) {
	if n.r.Type != gjson.String {
		return "", false
	}
	return n.r.Str, true
}

// Object looks up key and expects a JSON object.
func (n Node) Object(key string) Field[Node] {
	r, st := n.lookup(key)
	if st != FieldOK {
		return Field[Node]{Status: st}
	}
	if !r.IsObject() {
		return Field[Node]{Status: FieldWrongType}
	}
	return Field[Node]{Value: Node{r: r}}
}

// String looks up key and expects a JSON string.
func (n Node) String(key string) Field[string] {
	r, st := n.lookup(key)
	if st != FieldOK {
		return Field[string]{Status: st}
	}
	if r.Type != gjson.String {
		return Field[string]{Status: FieldWrongType}
	}
	return Field[string]{Value: r.Str}
}

// Int64 looks up key and expects a JSON number that is an exact 64-bit
// integer. Fractions, exponents and out-of-range values are the wrong type.
func (n Node) Int64(key string) Field[int64] {
	r, st := n.lookup(key)
	if st != FieldOK {
		return Field[int64]{Status: st}
	}
	if r.Type != gjson.Number {
		return Field[int64]{Status: FieldWrongType}
	}
	v, err := strconv.ParseInt(r.Raw, 10, 64)
	if err != nil {
		return Field[int64]{Status: FieldWrongType}
	}
	return Field[int64]{Value: v}
}

// Array looks up key and expects a JSON array.
func (n Node) Array(key string) Field[[]Node] {
	r, st := n.lookup(key)
	if st != FieldOK {
		return Field[[]Node]{Status: st}
	}
	if !r.IsArray() {
		return Field[[]Node]{Status: FieldWrongType}
	}
	items := r.Array()
	nodes := make([]Node, len(items))
	for i, it := range items {
		nodes[i] = Node{r: it}
	}
	return Field[[]Node]{Value: nodes}
}

func (n Node) lookup(key string) (gjson.Result, FieldStatus) {
	if !n.r.IsObject() {
		return gjson.Result{}, FieldMissing
	}
	r := n.r.Get(escapeKey(key))
	if !r.Exists() {
		return r, FieldMissing
	}
	return r, FieldOK
}

// escapeKey makes key a literal single-component gjson path.
func escapeKey(key string) string {
	if !strings.ContainsAny(key, `.*?|#@!\`) {
		return key
	}
	var b strings.Builder
	for _, c := range key {
		switch c {
		case '.', '*', '?', '|', '#', '@', '!', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

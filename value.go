package pdxtext

import (
	"fmt"

	"github.com/reoring/pdxtext/internal/scalar"
	"github.com/reoring/pdxtext/internal/tape"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDate
	KindString
	KindArray
	KindObject
	KindOperator
	KindParameter
)

var valueKindNames = [...]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindInt:       "int",
	KindUint:      "uint",
	KindFloat:     "float",
	KindDate:      "date",
	KindString:    "string",
	KindArray:     "array",
	KindObject:    "object",
	KindOperator:  "operator",
	KindParameter: "parameter",
}

func (k Kind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Date is a game date. Month and Hour are zero-based; Day is as written.
type Date = scalar.Date

// Operator is a relational qualifier attached to a value.
type Operator = tape.Operator

const (
	OpLess         = tape.OpLess
	OpLessEqual    = tape.OpLessEqual
	OpGreater      = tape.OpGreater
	OpGreaterEqual = tape.OpGreaterEqual
	OpEqual        = tape.OpEqual
)

// ParseOperator maps "<", "<=", ">", ">=", "=" or "==" to an Operator.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "<":
		return OpLess, true
	case "<=":
		return OpLessEqual, true
	case ">":
		return OpGreater, true
	case ">=":
		return OpGreaterEqual, true
	case "=", "==":
		return OpEqual, true
	}
	return tape.OpNone, false
}

// Value is a node of a materialized document. The zero Value is null, which
// only appears as the result of a failed lookup.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	u       uint64
	f       float64
	d       Date
	s       string
	arr     []Value
	obj     *Object
	op      Operator
	operand *Value
}

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }
func UintValue(u uint64) Value { return Value{kind: KindUint, u: u} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }
func DateValue(d Date) Value { return Value{kind: KindDate, d: d} }
func StringValue(s string) Value { return Value{kind: KindString, s: s} }
func ArrayValue(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

// ObjectValue wraps o; a nil o is replaced by an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// OperatorValue qualifies v with op.
func OperatorValue(op Operator, v Value) Value {
	return Value{kind: KindOperator, op: op, operand: &v}
}

// ParameterValue is a macro parameter reference; defined is false for the
// "[!name]" form.
func ParameterValue(name string, defined bool) Value {
	return Value{kind: KindParameter, s: name, b: defined}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool { return v.kind == KindBool && v.b }
func (v Value) Int() int64 { return v.i }
func (v Value) Uint() uint64 { return v.u }
func (v Value) Float() float64 { return v.f }
func (v Value) Date() Date { return v.d }
func (v Value) Array() []Value { return v.arr }
func (v Value) Object() *Object { return v.obj }
func (v Value) Text() string { return v.s }
func (v Value) Parameter() (string, bool) {
	return v.s, v.b
}

// Operator returns the qualifier and its operand for KindOperator values.
func (v Value) Operator() (Operator, Value) {
	if v.kind != KindOperator || v.operand == nil {
		return tape.OpNone, Value{}
	}
	return v.op, *v.operand
}

// Number returns numeric values as float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Len returns the number of elements of an array or fields of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Get returns the field key of an object value, or null.
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Value{}
	}
	f, _ := v.obj.Get(key)
	return f
}

// Index returns element i of an array value, or null.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Equal reports deep equality. Objects compare field order too.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindUint:
		return v.u == o.u
	case KindFloat:
		return v.f == o.f
	case KindDate:
		return v.d == o.d
	case KindString:
		return v.s == o.s
	case KindParameter:
		return v.s == o.s && v.b == o.b
	case KindOperator:
		return v.op == o.op && v.operand.Equal(*o.operand)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return false
}

// String renders v as compact JSON.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return string(b)
}

// Field is one key of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered mapping with one field per distinct key.
type Object struct {
	fields []Field
	index  map[string]int
}

func NewObject() *Object { return &Object{index: map[string]int{}} }

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// Fields returns the fields in insertion order. The slice must not be
// modified.
func (o *Object) Fields() []Field {
	if o == nil {
		return nil
	}
	return o.fields
}

func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for _, f := range o.Fields() {
		keys = append(keys, f.Key)
	}
	return keys
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.fields[i].Value, true
}

// Set replaces the value of key in place, or appends a new field.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = v
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: v})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.fields = append(o.fields[:i], o.fields[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.fields); j++ {
		o.index[o.fields[j].Key] = j
	}
	return true
}

func (o *Object) Equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	}
	for i, f := range o.Fields() {
		g := p.fields[i]
		if f.Key != g.Key || !f.Value.Equal(g.Value) {
			return false
		}
	}
	return true
}

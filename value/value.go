package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
)

// Value is a self-describing dynamic value.
//
// Scalars hold their payload as the alias type of their kind (types.Int8 for
// int8 and so on). Struct members and array elements are themselves values.
// The zero Value is empty.
type Value struct {
	typ    *Type
	scalar any
	items  []*Value
}

// Member pairs a member name with its value for Struct construction.
type Member struct {
	Value *Value
	Name  string
}

func Empty() *Value { return &Value{} }

func Bool(v types.Boolean) *Value { return scalarValue(types.KindBool, v) }
func Char8(v types.Char8) *Value { return scalarValue(types.KindChar8, v) }
func Int8(v types.Int8) *Value { return scalarValue(types.KindInt8, v) }
func UInt8(v types.UInt8) *Value { return scalarValue(types.KindUInt8, v) }
func Int16(v types.Int16) *Value { return scalarValue(types.KindInt16, v) }
func UInt16(v types.UInt16) *Value { return scalarValue(types.KindUInt16, v) }
func Int32(v types.Int32) *Value { return scalarValue(types.KindInt32, v) }
func UInt32(v types.UInt32) *Value { return scalarValue(types.KindUInt32, v) }
func Int64(v types.Int64) *Value { return scalarValue(types.KindInt64, v) }
func UInt64(v types.UInt64) *Value { return scalarValue(types.KindUInt64, v) }
func Float32(v types.Float32) *Value { return scalarValue(types.KindFloat32, v) }
func Float64(v types.Float64) *Value { return scalarValue(types.KindFloat64, v) }
func String(v types.String) *Value { return scalarValue(types.KindString, v) }

func scalarValue(k types.Kind, v any) *Value {
	return &Value{typ: scalarTypes[k], scalar: v}
}

// Scalar builds a scalar of kind k, coercing v into the kind's alias type.
func Scalar(k types.Kind, v any) (*Value, error) {
	if !k.IsScalar() {
		return nil, errors.Unsupported(errors.PhaseConvert, "scalar of kind "+k.String())
	}
	cv, err := types.Coerce(k, v)
	if err != nil {
		return nil, err
	}
	return scalarValue(k, cv), nil
}

// Struct builds a struct value. Member names must be non-empty and unique.
func Struct(name string, members ...Member) (*Value, error) {
	typ := &Type{Kind: types.KindStruct, Name: name, Members: make([]MemberType, len(members))}
	items := make([]*Value, len(members))
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if m.Name == "" {
			return nil, errors.InvalidInput(errors.PhaseConvert, "empty member name")
		}
		if _, dup := seen[m.Name]; dup {
			return nil, errors.InvalidInput(errors.PhaseConvert, "duplicate member "+strconv.Quote(m.Name))
		}
		if m.Value == nil {
			return nil, errors.NilPointer(errors.PhaseConvert, []string{m.Name}, "*value.Value")
		}
		seen[m.Name] = struct{}{}
		typ.Members[i] = MemberType{Name: m.Name, Type: m.Value.Type()}
		items[i] = m.Value
	}
	return &Value{typ: typ, items: items}, nil
}

// Array builds an array value. With a nil elem the element type is taken from
// the first element; every element must match it.
func Array(elem *Type, elems ...*Value) (*Value, error) {
	if elem == nil {
		if len(elems) == 0 || elems[0] == nil {
			return nil, errors.InvalidInput(errors.PhaseConvert, "array element type unknown")
		}
		elem = elems[0].Type()
	}
	for i, e := range elems {
		if e == nil {
			return nil, errors.NilPointer(errors.PhaseConvert, []string{strconv.Itoa(i)}, "*value.Value")
		}
		if !e.Type().Equal(elem) {
			return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
				Path(strconv.Itoa(i)).
				ValueType(elem.String()).
				Detail("element has type %s", e.Type()).
				Build()
		}
	}
	items := make([]*Value, len(elems))
	copy(items, elems)
	return &Value{
		typ:   &Type{Kind: types.KindArray, Elem: elem, Length: len(elems)},
		items: items,
	}, nil
}

// Type returns the value's type. Nil and zero values report the empty type.
func (v *Value) Type() *Type {
	if v == nil || v.typ == nil {
		return scalarTypes[types.KindEmpty]
	}
	return v.typ
}

func (v *Value) Kind() types.Kind { return v.Type().Kind }

func (v *Value) IsEmpty() bool { return v.Kind() == types.KindEmpty }

// Interface returns the scalar payload, or nil for empty and composite values.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	return v.scalar
}

func (v *Value) AsBool() (bool, error) {
	if b, ok := v.Interface().(bool); ok && v.Kind() == types.KindBool {
		return b, nil
	}
	return false, v.mismatch("bool")
}

func (v *Value) AsString() (string, error) {
	if s, ok := v.Interface().(string); ok {
		return s, nil
	}
	return "", v.mismatch("string")
}

// AsInt64 returns any integer payload that fits an int64.
func (v *Value) AsInt64() (int64, error) {
	k := v.Kind()
	if !k.IsInteger() {
		return 0, v.mismatch("int64")
	}
	out, err := types.Coerce(types.KindInt64, v.scalar)
	if err != nil {
		return 0, err
	}
	return out.(int64), nil
}

// AsUint64 returns any non-negative integer payload.
func (v *Value) AsUint64() (uint64, error) {
	if !v.Kind().IsInteger() {
		return 0, v.mismatch("uint64")
	}
	out, err := types.Coerce(types.KindUInt64, v.scalar)
	if err != nil {
		return 0, err
	}
	return out.(uint64), nil
}

// AsFloat64 returns any numeric payload as a float64.
func (v *Value) AsFloat64() (float64, error) {
	k := v.Kind()
	if !k.IsInteger() && !k.IsFloat() {
		return 0, v.mismatch("float64")
	}
	out, err := types.Coerce(types.KindFloat64, v.scalar)
	if err != nil {
		return 0, err
	}
	return out.(float64), nil
}

func (v *Value) mismatch(want string) error {
	return errors.TypeMismatch(errors.PhaseConvert, nil, want, v.Type().String())
}

// Len returns the member count of a struct or the element count of an array.
func (v *Value) Len() int {
	switch v.Kind() {
	case types.KindStruct, types.KindArray:
		return len(v.items)
	default:
		return 0
	}
}

// Field returns the struct member with the given name.
func (v *Value) Field(name string) (*Value, error) {
	if v.Kind() != types.KindStruct {
		return nil, v.mismatch("struct")
	}
	for i, m := range v.typ.Members {
		if m.Name == name {
			return v.items[i], nil
		}
	}
	return nil, errors.FieldMissing(errors.PhaseConvert, nil, name)
}

// Index returns the i-th array element or struct member.
func (v *Value) Index(i int) (*Value, error) {
	k := v.Kind()
	if k != types.KindArray && k != types.KindStruct {
		return nil, v.mismatch("array")
	}
	if i < 0 || i >= len(v.items) {
		return nil, errors.OutOfBounds(errors.PhaseConvert, nil, i, len(v.items))
	}
	return v.items[i], nil
}

// Members returns the struct members in declaration order.
func (v *Value) Members() []Member {
	if v.Kind() != types.KindStruct {
		return nil
	}
	out := make([]Member, len(v.items))
	for i, item := range v.items {
		out[i] = Member{Name: v.typ.Members[i].Name, Value: item}
	}
	return out
}

// Equal reports structural equality of type and payload. Floats compare by
// bit pattern, so a NaN equals its own copy and -0 differs from +0.
func (v *Value) Equal(o *Value) bool {
	if !v.Type().Equal(o.Type()) {
		return false
	}
	switch v.Kind() {
	case types.KindEmpty:
		return true
	case types.KindStruct, types.KindArray:
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case types.KindFloat32:
		return math.Float32bits(v.scalar.(types.Float32)) == math.Float32bits(o.scalar.(types.Float32))
	case types.KindFloat64:
		return math.Float64bits(v.scalar.(types.Float64)) == math.Float64bits(o.scalar.(types.Float64))
	default:
		return v.scalar == o.scalar
	}
}

// Clone returns a deep copy. Types are immutable and shared.
func (v *Value) Clone() *Value {
	if v == nil {
		return Empty()
	}
	out := &Value{typ: v.typ, scalar: v.scalar}
	if v.items != nil {
		out.items = make([]*Value, len(v.items))
		for i, item := range v.items {
			out.items[i] = item.Clone()
		}
	}
	return out
}

func (v *Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *Value) write(b *strings.Builder) {
	switch k := v.Kind(); k {
	case types.KindEmpty:
		b.WriteString("<empty>")
	case types.KindStruct:
		b.WriteString(v.typ.Name)
		b.WriteByte('{')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.typ.Members[i].Name)
			b.WriteString(": ")
			item.write(b)
		}
		b.WriteByte('}')
	case types.KindArray:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b)
		}
		b.WriteByte(']')
	case types.KindChar8:
		b.WriteString(strconv.QuoteRune(rune(v.scalar.(byte))))
	case types.KindString:
		b.WriteString(strconv.Quote(v.scalar.(string)))
	case types.KindBool:
		b.WriteString(strconv.FormatBool(v.scalar.(bool)))
	case types.KindFloat32:
		b.WriteString(strconv.FormatFloat(float64(v.scalar.(float32)), 'g', -1, 32))
	case types.KindFloat64:
		b.WriteString(strconv.FormatFloat(v.scalar.(float64), 'g', -1, 64))
	default:
		if k.IsSigned() {
			n, _ := v.AsInt64()
			b.WriteString(strconv.FormatInt(n, 10))
		} else {
			u, _ := v.AsUint64()
			b.WriteString(strconv.FormatUint(u, 10))
		}
	}
}

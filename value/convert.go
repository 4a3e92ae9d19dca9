package value

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
)

// FromGo converts a Go value into a Value.
//
// Scalars map onto their matching kind (int and uint widen to int64 and
// uint64). Slices and arrays become arrays, maps with string keys become
// structs with members sorted by key, and structs become structs of their
// exported fields. The `anyvalue` struct tag renames a field; "-" skips it.
// Nil pointers, nil interfaces and nil maps become empty values.
func FromGo(in any) (*Value, error) {
	if v, ok := in.(*Value); ok {
		if v == nil {
			return Empty(), nil
		}
		return v, nil
	}
	c := converter{visiting: make(map[visit]struct{})}
	return c.fromReflect(reflect.ValueOf(in), nil)
}

// visit identifies a reference on the current conversion path. The type is
// part of the key since a struct and its first field share an address, and
// the length tells apart slices sharing a backing array.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// converter tracks the references being converted so that a cyclic graph
// fails instead of recursing forever.
type converter struct {
	visiting map[visit]struct{}
}

// enter marks rv as on the current path. It fails when rv is already there.
func (c *converter) enter(rv reflect.Value, path []string) (visit, error) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.len = rv.Len()
	}
	if _, ok := c.visiting[key]; ok {
		return key, errors.New(errors.PhaseConvert, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("cyclic value").
			Build()
	}
	c.visiting[key] = struct{}{}
	return key, nil
}

func (c *converter) fromReflect(rv reflect.Value, path []string) (*Value, error) {
	if !rv.IsValid() {
		return Empty(), nil
	}
	if rv.Type() == reflect.TypeOf((*Value)(nil)) {
		if rv.IsNil() {
			return Empty(), nil
		}
		return rv.Interface().(*Value), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int8:
		return Int8(int8(rv.Int())), nil
	case reflect.Int16:
		return Int16(int16(rv.Int())), nil
	case reflect.Int32:
		return Int32(int32(rv.Int())), nil
	case reflect.Int, reflect.Int64:
		return Int64(rv.Int()), nil
	case reflect.Uint8:
		return UInt8(uint8(rv.Uint())), nil
	case reflect.Uint16:
		return UInt16(uint16(rv.Uint())), nil
	case reflect.Uint32:
		return UInt32(uint32(rv.Uint())), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return UInt64(rv.Uint()), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float64(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Interface:
		if rv.IsNil() {
			return Empty(), nil
		}
		return c.fromReflect(rv.Elem(), path)
	case reflect.Pointer:
		if rv.IsNil() {
			return Empty(), nil
		}
		key, err := c.enter(rv, path)
		if err != nil {
			return nil, err
		}
		defer delete(c.visiting, key)
		return c.fromReflect(rv.Elem(), path)
	case reflect.Slice:
		if rv.IsNil() {
			return Empty(), nil
		}
		if rv.Len() > 0 {
			key, err := c.enter(rv, path)
			if err != nil {
				return nil, err
			}
			defer delete(c.visiting, key)
		}
		return c.fromSequence(rv, path)
	case reflect.Array:
		return c.fromSequence(rv, path)
	case reflect.Map:
		if !rv.IsNil() && rv.Type().Key().Kind() == reflect.String {
			key, err := c.enter(rv, path)
			if err != nil {
				return nil, err
			}
			defer delete(c.visiting, key)
		}
		return c.fromMap(rv, path)
	case reflect.Struct:
		return c.fromStruct(rv, path)
	}
	return nil, errors.New(errors.PhaseConvert, errors.KindUnsupported).
		Path(path...).
		GoType(rv.Type().String()).
		Detail("no value representation").
		Build()
}

func (c *converter) fromSequence(rv reflect.Value, path []string) (*Value, error) {
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return Empty(), nil
	}
	n := rv.Len()
	elems := make([]*Value, n)
	for i := 0; i < n; i++ {
		e, err := c.fromReflect(rv.Index(i), appendPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	var elem *Type
	if n == 0 {
		elem = typeOfGo(rv.Type().Elem())
	}
	arr, err := Array(elem, elems...)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = append(append([]string(nil), path...), e.Path...)
		}
		return nil, err
	}
	return arr, nil
}

func (c *converter) fromMap(rv reflect.Value, path []string) (*Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, errors.New(errors.PhaseConvert, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("map keys must be strings").
			Build()
	}
	if rv.IsNil() {
		return Empty(), nil
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	members := make([]Member, len(keys))
	for i, key := range keys {
		mv, err := c.fromReflect(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())), appendPath(path, key))
		if err != nil {
			return nil, err
		}
		members[i] = Member{Name: key, Value: mv}
	}
	return Struct("", members...)
}

func (c *converter) fromStruct(rv reflect.Value, path []string) (*Value, error) {
	rt := rv.Type()
	members := make([]Member, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := memberName(f)
		if name == "" {
			continue
		}
		mv, err := c.fromReflect(rv.Field(i), appendPath(path, name))
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: name, Value: mv})
	}
	return Struct(rt.Name(), members...)
}

func memberName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("anyvalue")
	if !ok {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// typeOfGo maps a Go element type to a value type for empty sequences.
// Types without a fixed scalar mapping report empty.
func typeOfGo(t reflect.Type) *Type {
	switch t.Kind() {
	case reflect.Bool:
		return ScalarType(types.KindBool)
	case reflect.Int8:
		return ScalarType(types.KindInt8)
	case reflect.Int16:
		return ScalarType(types.KindInt16)
	case reflect.Int32:
		return ScalarType(types.KindInt32)
	case reflect.Int, reflect.Int64:
		return ScalarType(types.KindInt64)
	case reflect.Uint8:
		return ScalarType(types.KindUInt8)
	case reflect.Uint16:
		return ScalarType(types.KindUInt16)
	case reflect.Uint32:
		return ScalarType(types.KindUInt32)
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return ScalarType(types.KindUInt64)
	case reflect.Float32:
		return ScalarType(types.KindFloat32)
	case reflect.Float64:
		return ScalarType(types.KindFloat64)
	case reflect.String:
		return ScalarType(types.KindString)
	}
	return ScalarType(types.KindEmpty)
}

func appendPath(path []string, seg string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}

// ToGo converts v into plain Go values: scalars as their alias types, structs
// as map[string]any, arrays as []any and empty as nil.
func ToGo(v *Value) any {
	switch v.Kind() {
	case types.KindEmpty:
		return nil
	case types.KindStruct:
		out := make(map[string]any, len(v.items))
		for i, item := range v.items {
			out[v.typ.Members[i].Name] = ToGo(item)
		}
		return out
	case types.KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = ToGo(item)
		}
		return out
	default:
		return v.scalar
	}
}

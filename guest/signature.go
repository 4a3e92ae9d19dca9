package guest

import (
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
)

// Signature gives the value kinds a guest function consumes and produces.
// Each kind must fit the wasm value type at the same position.
type Signature struct {
	Params  []types.Kind
	Results []types.Kind
}

// InferSignature maps wasm value types to their natural kinds:
// i32 to int32, i64 to int64, f32 to float32 and f64 to float64.
func InferSignature(def api.FunctionDefinition) (Signature, error) {
	params, err := inferKinds(def.ParamTypes())
	if err != nil {
		return Signature{}, err
	}
	results, err := inferKinds(def.ResultTypes())
	if err != nil {
		return Signature{}, err
	}
	return Signature{Params: params, Results: results}, nil
}

func inferKinds(vts []api.ValueType) ([]types.Kind, error) {
	out := make([]types.Kind, len(vts))
	for i, vt := range vts {
		switch vt {
		case api.ValueTypeI32:
			out[i] = types.KindInt32
		case api.ValueTypeI64:
			out[i] = types.KindInt64
		case api.ValueTypeF32:
			out[i] = types.KindFloat32
		case api.ValueTypeF64:
			out[i] = types.KindFloat64
		default:
			return nil, errors.Unsupported(errors.PhaseLoad, "wasm value type "+api.ValueTypeName(vt))
		}
	}
	return out, nil
}

// valueTypeOf returns the wasm value type that carries k.
func valueTypeOf(k types.Kind) (api.ValueType, bool) {
	switch k {
	case types.KindBool, types.KindChar8, types.KindInt8, types.KindUInt8,
		types.KindInt16, types.KindUInt16, types.KindInt32, types.KindUInt32:
		return api.ValueTypeI32, true
	case types.KindInt64, types.KindUInt64:
		return api.ValueTypeI64, true
	case types.KindFloat32:
		return api.ValueTypeF32, true
	case types.KindFloat64:
		return api.ValueTypeF64, true
	default:
		return 0, false
	}
}

// check validates s against the wasm definition of export.
func (s Signature) check(export string, def api.FunctionDefinition) error {
	if err := checkKinds(export, "param", s.Params, def.ParamTypes()); err != nil {
		return err
	}
	return checkKinds(export, "result", s.Results, def.ResultTypes())
}

func checkKinds(export, what string, kinds []types.Kind, vts []api.ValueType) error {
	if len(kinds) != len(vts) {
		return errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
			Path(export).
			Detail("%d %ss declared, function has %d", len(kinds), what, len(vts)).
			Build()
	}
	for i, k := range kinds {
		vt, ok := valueTypeOf(k)
		if !ok || vt != vts[i] {
			return errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
				Path(export, what+strconv.Itoa(i)).
				ValueType(k.String()).
				Detail("wasm type is %s", api.ValueTypeName(vts[i])).
				Build()
		}
	}
	return nil
}

func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	writeKinds(&b, s.Params, kindName)
	b.WriteString(") -> ")
	switch len(s.Results) {
	case 0:
		b.WriteString("empty")
	case 1:
		b.WriteString(s.Results[0].String())
	default:
		b.WriteByte('(')
		writeKinds(&b, s.Results, kindName)
		b.WriteByte(')')
	}
	return b.String()
}

// WIT renders the signature as a WIT function type, e.g.
// "func(p0: s32) -> s8".
func (s Signature) WIT() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, k := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('p')
		b.WriteString(strconv.Itoa(i))
		b.WriteString(": ")
		b.WriteString(witName(k))
	}
	b.WriteByte(')')
	switch len(s.Results) {
	case 0:
	case 1:
		b.WriteString(" -> ")
		b.WriteString(witName(s.Results[0]))
	default:
		b.WriteString(" -> tuple<")
		writeKinds(&b, s.Results, witName)
		b.WriteByte('>')
	}
	return b.String()
}

func kindName(k types.Kind) string { return k.String() }

func writeKinds(b *strings.Builder, kinds []types.Kind, name func(types.Kind) string) {
	for i, k := range kinds {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name(k))
	}
}

// witType returns the WIT primitive carrying k. char8 is an 8-bit code unit,
// not a Unicode scalar, so it maps to u8 rather than char.
func witType(k types.Kind) wit.Type {
	switch k {
	case types.KindBool:
		return wit.Bool{}
	case types.KindChar8, types.KindUInt8:
		return wit.U8{}
	case types.KindInt8:
		return wit.S8{}
	case types.KindInt16:
		return wit.S16{}
	case types.KindUInt16:
		return wit.U16{}
	case types.KindInt32:
		return wit.S32{}
	case types.KindUInt32:
		return wit.U32{}
	case types.KindInt64:
		return wit.S64{}
	case types.KindUInt64:
		return wit.U64{}
	case types.KindFloat32:
		return wit.F32{}
	case types.KindFloat64:
		return wit.F64{}
	case types.KindString:
		return wit.String{}
	default:
		return nil
	}
}

// witName renders k in WIT text format. Kinds without a WIT primitive
// render as "_".
func witName(k types.Kind) string {
	t := witType(k)
	if t == nil {
		return "_"
	}
	return t.WIT(nil, "")
}

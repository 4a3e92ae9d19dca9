package guest

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
	"github.com/wippyai/anyvalue/value"
)

// Functor calls one guest export inside its own module instance.
//
// Input shape follows the parameter count: no parameters take an empty value,
// one parameter takes a scalar, more take a struct or array whose members are
// passed in order. Results come back as empty, a scalar, or a struct named
// "results" with members r0, r1 and so on.
//
// A Functor is not safe for concurrent use; wrap it in functor.Threadsafe.
type Functor struct {
	ctx      context.Context
	inst     api.Module
	fn       api.Function
	export   string
	sig      Signature
	resultVT []api.ValueType
	closed   bool
}

func (f *Functor) Export() string { return f.export }

func (f *Functor) Signature() Signature { return f.sig }

// Call implements anyvalue.Functor.
func (f *Functor) Call(in *value.Value) (*value.Value, error) {
	if f == nil || f.fn == nil || f.closed {
		return nil, errors.NotInitialized(errors.PhaseInvoke, "guest functor")
	}

	params, err := f.encodeParams(in)
	if err != nil {
		return nil, err
	}
	raw, err := f.fn.Call(f.ctx, params...)
	if err != nil {
		Logger().Debug("guest call failed",
			zap.String("export", f.export),
			zap.Error(err))
		return nil, errors.Trap(f.export, err)
	}
	return f.decodeResults(raw)
}

// Close closes the module instance. Further calls fail.
func (f *Functor) Close() error {
	if f == nil || f.closed {
		return nil
	}
	f.closed = true
	return f.inst.Close(f.ctx)
}

func (f *Functor) encodeParams(in *value.Value) ([]uint64, error) {
	n := len(f.sig.Params)
	switch n {
	case 0:
		if !in.IsEmpty() {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Path(f.export).
				ValueType(in.Type().String()).
				Detail("function takes no parameters").
				Build()
		}
		return nil, nil
	case 1:
		if !in.Kind().IsScalar() {
			return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(f.export, "param0").
				ValueType(in.Type().String()).
				Detail("want scalar %s", f.sig.Params[0]).
				Build()
		}
		p, err := encodeParam(f.sig.Params[0], in, f.export, 0)
		if err != nil {
			return nil, err
		}
		return []uint64{p}, nil
	}

	k := in.Kind()
	if (k != types.KindStruct && k != types.KindArray) || in.Len() != n {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(f.export).
			ValueType(in.Type().String()).
			Detail("want struct or array of %d values", n).
			Build()
	}
	params := make([]uint64, n)
	for i := range params {
		item, err := in.Index(i)
		if err != nil {
			return nil, err
		}
		if params[i], err = encodeParam(f.sig.Params[i], item, f.export, i); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func encodeParam(k types.Kind, v *value.Value, export string, i int) (uint64, error) {
	cv, err := types.Coerce(k, v.Interface())
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			e.Phase = errors.PhaseEncode
			e.Path = []string{export, "param" + strconv.Itoa(i)}
		}
		return 0, err
	}
	switch x := cv.(type) {
	case bool:
		if x {
			return api.EncodeU32(1), nil
		}
		return api.EncodeU32(0), nil
	case int8:
		return api.EncodeI32(int32(x)), nil
	case uint8:
		return api.EncodeU32(uint32(x)), nil
	case int16:
		return api.EncodeI32(int32(x)), nil
	case uint16:
		return api.EncodeU32(uint32(x)), nil
	case int32:
		return api.EncodeI32(x), nil
	case uint32:
		return api.EncodeU32(x), nil
	case int64:
		return api.EncodeI64(x), nil
	case uint64:
		return x, nil
	case float32:
		return api.EncodeF32(x), nil
	case float64:
		return api.EncodeF64(x), nil
	default:
		return 0, errors.Unsupported(errors.PhaseEncode, "guest parameter of kind "+k.String())
	}
}

func (f *Functor) decodeResults(raw []uint64) (*value.Value, error) {
	switch len(f.sig.Results) {
	case 0:
		return value.Empty(), nil
	case 1:
		return decodeResult(f.sig.Results[0], f.resultVT[0], raw[0], f.export, 0)
	}
	members := make([]value.Member, len(raw))
	for i, r := range raw {
		v, err := decodeResult(f.sig.Results[i], f.resultVT[i], r, f.export, i)
		if err != nil {
			return nil, err
		}
		members[i] = value.Member{Name: "r" + strconv.Itoa(i), Value: v}
	}
	return value.Struct("results", members...)
}

func decodeResult(k types.Kind, vt api.ValueType, r uint64, export string, i int) (*value.Value, error) {
	var src any
	switch vt {
	case api.ValueTypeI32:
		if k.IsSigned() {
			src = int64(api.DecodeI32(r))
		} else {
			src = uint64(api.DecodeU32(r))
		}
	case api.ValueTypeI64:
		if k.IsSigned() {
			src = int64(r)
		} else {
			src = r
		}
	case api.ValueTypeF32:
		src = api.DecodeF32(r)
	case api.ValueTypeF64:
		src = api.DecodeF64(r)
	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "wasm value type "+api.ValueTypeName(vt))
	}

	path := []string{export, "r" + strconv.Itoa(i)}
	if k == types.KindBool {
		switch src.(uint64) {
		case 0:
			return value.Bool(false), nil
		case 1:
			return value.Bool(true), nil
		default:
			return nil, errors.InvalidData(errors.PhaseDecode, path, "bool result is not 0 or 1")
		}
	}

	v, err := value.Scalar(k, src)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Kind == errors.KindOverflow {
			return nil, errors.Overflow(errors.PhaseDecode, path, src, k.String())
		}
		return nil, err
	}
	return v, nil
}

package types

import (
	"math"
	"reflect"

	"github.com/wippyai/anyvalue/errors"
)

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// Coerce converts a Go scalar into the alias type of k.
// Integer sources must fit the target range; floats convert to integer kinds
// only when they carry no fractional part.
func Coerce(k Kind, v any) (any, error) {
	switch {
	case k == KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case k == KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case k.IsInteger():
		if n, ok := signedOf(v); ok {
			if out, ok := fromInt64(k, n); ok {
				return out, nil
			}
			return nil, errors.Overflow(errors.PhaseConvert, nil, v, k.String())
		}
		if u, ok := unsignedOf(v); ok {
			if out, ok := fromUint64(k, u); ok {
				return out, nil
			}
			return nil, errors.Overflow(errors.PhaseConvert, nil, v, k.String())
		}
		if f, ok := floatOf(v); ok {
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, errors.TypeMismatch(errors.PhaseConvert, nil, TypeName(v), k.String())
			}
			if f >= -(1<<63) && f < (1<<63) {
				if out, ok := fromInt64(k, int64(f)); ok {
					return out, nil
				}
			} else if f >= 0 && f < (1<<64) {
				if out, ok := fromUint64(k, uint64(f)); ok {
					return out, nil
				}
			}
			return nil, errors.Overflow(errors.PhaseConvert, nil, v, k.String())
		}
	case k.IsFloat():
		var f float64
		if x, ok := floatOf(v); ok {
			f = x
		} else if n, ok := signedOf(v); ok {
			f = float64(n)
		} else if u, ok := unsignedOf(v); ok {
			f = float64(u)
		} else {
			break
		}
		if k == KindFloat64 {
			return f, nil
		}
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return nil, errors.Overflow(errors.PhaseConvert, nil, v, k.String())
		}
		return float32(f), nil
	}
	return nil, errors.TypeMismatch(errors.PhaseConvert, nil, TypeName(v), k.String())
}

func signedOf(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func unsignedOf(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case uintptr:
		return uint64(n), true
	}
	return 0, false
}

func floatOf(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

func fromInt64(k Kind, n int64) (any, bool) {
	switch k {
	case KindChar8:
		if n < 0 || n > math.MaxUint8 {
			return nil, false
		}
		return Char8(n), true
	case KindInt8:
		if n < math.MinInt8 || n > math.MaxInt8 {
			return nil, false
		}
		return Int8(n), true
	case KindUInt8:
		if n < 0 || n > math.MaxUint8 {
			return nil, false
		}
		return UInt8(n), true
	case KindInt16:
		if n < math.MinInt16 || n > math.MaxInt16 {
			return nil, false
		}
		return Int16(n), true
	case KindUInt16:
		if n < 0 || n > math.MaxUint16 {
			return nil, false
		}
		return UInt16(n), true
	case KindInt32:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, false
		}
		return Int32(n), true
	case KindUInt32:
		if n < 0 || n > math.MaxUint32 {
			return nil, false
		}
		return UInt32(n), true
	case KindInt64:
		return n, true
	case KindUInt64:
		if n < 0 {
			return nil, false
		}
		return UInt64(n), true
	}
	return nil, false
}

func fromUint64(k Kind, u uint64) (any, bool) {
	if k == KindUInt64 {
		return u, true
	}
	if u > math.MaxInt64 {
		return nil, false
	}
	return fromInt64(k, int64(u))
}

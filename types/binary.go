package types

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/anyvalue/errors"
)

// AppendScalar appends the fixed-width encoding of v, coerced to k, to buf.
// Booleans encode as a single 0 or 1 byte.
func AppendScalar(buf []byte, k Kind, v any, order binary.AppendByteOrder) ([]byte, error) {
	if !k.IsFixedWidth() {
		return buf, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			ValueType(k.String()).
			Detail("no fixed-width encoding").
			Build()
	}
	cv, err := Coerce(k, v)
	if err != nil {
		return buf, err
	}
	switch x := cv.(type) {
	case bool:
		if x {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case uint8:
		return append(buf, x), nil
	case int8:
		return append(buf, byte(x)), nil
	case int16:
		return order.AppendUint16(buf, uint16(x)), nil
	case uint16:
		return order.AppendUint16(buf, x), nil
	case int32:
		return order.AppendUint32(buf, uint32(x)), nil
	case uint32:
		return order.AppendUint32(buf, x), nil
	case int64:
		return order.AppendUint64(buf, uint64(x)), nil
	case uint64:
		return order.AppendUint64(buf, x), nil
	case float32:
		return order.AppendUint32(buf, math.Float32bits(x)), nil
	case float64:
		return order.AppendUint64(buf, math.Float64bits(x)), nil
	}
	return buf, errors.TypeMismatch(errors.PhaseEncode, nil, TypeName(cv), k.String())
}

// ReadScalar decodes one fixed-width scalar of kind k from the front of buf.
// It returns the decoded alias-typed value and the number of bytes consumed.
func ReadScalar(buf []byte, k Kind, order binary.ByteOrder) (any, int, error) {
	size := int(k.Size())
	if size == 0 {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindUnsupported).
			ValueType(k.String()).
			Detail("no fixed-width encoding").
			Build()
	}
	if len(buf) < size {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			ValueType(k.String()).
			Detail("need %d bytes, have %d", size, len(buf)).
			Build()
	}

	switch k {
	case KindBool:
		switch buf[0] {
		case 0:
			return false, 1, nil
		case 1:
			return true, 1, nil
		}
		return nil, 0, errors.InvalidData(errors.PhaseDecode, nil, "boolean byte must be 0 or 1")
	case KindChar8:
		return Char8(buf[0]), 1, nil
	case KindInt8:
		return Int8(buf[0]), 1, nil
	case KindUInt8:
		return UInt8(buf[0]), 1, nil
	case KindInt16:
		return Int16(order.Uint16(buf)), 2, nil
	case KindUInt16:
		return order.Uint16(buf), 2, nil
	case KindInt32:
		return Int32(order.Uint32(buf)), 4, nil
	case KindUInt32:
		return order.Uint32(buf), 4, nil
	case KindInt64:
		return Int64(order.Uint64(buf)), 8, nil
	case KindUInt64:
		return order.Uint64(buf), 8, nil
	case KindFloat32:
		return math.Float32frombits(order.Uint32(buf)), 4, nil
	default:
		return math.Float64frombits(order.Uint64(buf)), 8, nil
	}
}

package types

import "strings"

// Kind is the type code of an AnyValue.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBool
	KindChar8
	KindInt8
	KindUInt8
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat32
	KindFloat64
	KindString
	KindStruct
	KindArray
)

var kindNames = [...]string{
	KindEmpty:   "empty",
	KindBool:    "bool",
	KindChar8:   "char8",
	KindInt8:    "int8",
	KindUInt8:   "uint8",
	KindInt16:   "int16",
	KindUInt16:  "uint16",
	KindInt32:   "int32",
	KindUInt32:  "uint32",
	KindInt64:   "int64",
	KindUInt64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindStruct:  "struct",
	KindArray:   "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the kind named s. Matching ignores case and accepts
// "boolean" as an alias for bool.
func ParseKind(s string) (Kind, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "boolean" {
		return KindBool, true
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsScalar reports whether k is a leaf kind (string included).
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindString
}

// IsFixedWidth reports whether k has a fixed binary width.
func (k Kind) IsFixedWidth() bool {
	return k >= KindBool && k <= KindFloat64
}

func (k Kind) IsInteger() bool {
	return k >= KindChar8 && k <= KindUInt64
}

func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// Size returns the binary width of a fixed-width kind in bytes, or 0.
func (k Kind) Size() uint32 {
	switch k {
	case KindBool, KindChar8, KindInt8, KindUInt8:
		return 1
	case KindInt16, KindUInt16:
		return 2
	case KindInt32, KindUInt32, KindFloat32:
		return 4
	case KindInt64, KindUInt64, KindFloat64:
		return 8
	default:
		return 0
	}
}

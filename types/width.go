package types

import "unsafe"

// Scalar aliases. Binary encoders depend on their widths, which are pinned
// below at compile time.
type (
	Boolean = bool
	Char8   = byte
	Int8    = int8
	UInt8   = uint8
	Int16   = int16
	UInt16  = uint16
	Int32   = int32
	UInt32  = uint32
	Int64   = int64
	UInt64  = uint64
	Float32 = float32
	Float64 = float64
	String  = string
)

// Each assignment only type-checks when the array lengths agree, so a
// width change breaks the build instead of the encoded layout.
var (
	_ [1]struct{} = [unsafe.Sizeof(Boolean(false))]struct{}{}
	_ [1]struct{} = [unsafe.Sizeof(Char8(0))]struct{}{}
	_ [1]struct{} = [unsafe.Sizeof(Int8(0))]struct{}{}
	_ [1]struct{} = [unsafe.Sizeof(UInt8(0))]struct{}{}

	_ [2]struct{} = [unsafe.Sizeof(Int16(0))]struct{}{}
	_ [2]struct{} = [unsafe.Sizeof(UInt16(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(Int32(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(UInt32(0))]struct{}{}
	_ [8]struct{} = [unsafe.Sizeof(Int64(0))]struct{}{}
	_ [8]struct{} = [unsafe.Sizeof(UInt64(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(Float32(0))]struct{}{}
	_ [8]struct{} = [unsafe.Sizeof(Float64(0))]struct{}{}
)

package value

import (
	"strconv"
	"strings"

	"github.com/wippyai/anyvalue/types"
)

// Type describes the shape of a Value.
type Type struct {
	Elem    *Type
	Name    string
	Members []MemberType
	Length  int
	Kind    types.Kind
}

// MemberType is one named member of a struct type.
type MemberType struct {
	Type *Type
	Name string
}

var scalarTypes = func() [types.KindString + 1]*Type {
	var out [types.KindString + 1]*Type
	for k := types.KindEmpty; k <= types.KindString; k++ {
		out[k] = &Type{Kind: k}
	}
	return out
}()

// ScalarType returns the shared type for an empty or scalar kind.
// It returns nil for composite kinds.
func ScalarType(k types.Kind) *Type {
	if k > types.KindString {
		return nil
	}
	return scalarTypes[k]
}

// Equal reports structural type equality. Struct and array names take part
// in the comparison.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Kind != o.Kind || t.Name != o.Name {
		return false
	}
	switch t.Kind {
	case types.KindStruct:
		if len(t.Members) != len(o.Members) {
			return false
		}
		for i := range t.Members {
			if t.Members[i].Name != o.Members[i].Name || !t.Members[i].Type.Equal(o.Members[i].Type) {
				return false
			}
		}
	case types.KindArray:
		return t.Length == o.Length && t.Elem.Equal(o.Elem)
	}
	return true
}

func (t *Type) String() string {
	if t == nil {
		return "nil"
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	switch t.Kind {
	case types.KindStruct:
		b.WriteString(t.Name)
		b.WriteByte('{')
		for i, m := range t.Members {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.Name)
			b.WriteString(": ")
			m.Type.write(b)
		}
		b.WriteByte('}')
	case types.KindArray:
		b.WriteString(t.Name)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Length))
		b.WriteByte(']')
		t.Elem.write(b)
	default:
		b.WriteString(t.Kind.String())
	}
}

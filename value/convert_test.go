package value

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
)

type setpoint struct {
	Name     string
	Limits   []float64
	Internal int   `anyvalue:"-"`
	Target   int32 `anyvalue:"target"`
	hidden   bool
}

func TestFromGo_Scalars(t *testing.T) {
	tests := []struct {
		in   any
		want *Value
	}{
		{true, Bool(true)},
		{int8(-1), Int8(-1)},
		{int16(2), Int16(2)},
		{int32(3), Int32(3)},
		{4, Int64(4)},
		{uint8(5), UInt8(5)},
		{uint16(6), UInt16(6)},
		{uint32(7), UInt32(7)},
		{uint(8), UInt64(8)},
		{float32(1.5), Float32(1.5)},
		{2.5, Float64(2.5)},
		{"s", String("s")},
		{nil, Empty()},
	}
	for _, tc := range tests {
		got, err := FromGo(tc.in)
		if err != nil {
			t.Fatalf("FromGo(%#v): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("FromGo(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFromGo_Composites(t *testing.T) {
	sp := &setpoint{Name: "valve", Limits: []float64{0, 10}, Internal: 9, Target: 5, hidden: true}
	v, err := FromGo(sp)
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	if got := v.Type().String(); got != "setpoint{Name: string, Limits: [2]float64, target: int32}" {
		t.Errorf("type = %q", got)
	}

	m, err := FromGo(map[string]any{"b": 2, "a": "x"})
	if err != nil {
		t.Fatalf("FromGo(map): %v", err)
	}
	if got := m.String(); got != `{a: "x", b: 2}` {
		t.Errorf("map value = %q", got)
	}

	empty, err := FromGo([]int16{})
	if err != nil {
		t.Fatalf("FromGo(empty slice): %v", err)
	}
	if empty.Type().Elem.Kind != types.KindInt16 {
		t.Errorf("empty slice element = %s", empty.Type().Elem)
	}

	existing := Int8(1)
	same, _ := FromGo(existing)
	if same != existing {
		t.Error("FromGo should pass *Value through")
	}
}

func TestFromGo_Errors(t *testing.T) {
	_, err := FromGo(map[int]string{1: "a"})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConvert, Kind: errors.KindUnsupported}) {
		t.Errorf("int-keyed map err = %v", err)
	}

	_, err = FromGo(make(chan int))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConvert, Kind: errors.KindUnsupported}) {
		t.Errorf("chan err = %v", err)
	}

	_, err = FromGo(map[string]any{"list": []any{1, "x"}})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch {
		t.Fatalf("mixed list err = %v", err)
	}
	if !reflect.DeepEqual(e.Path, []string{"list", "1"}) {
		t.Errorf("path = %v", e.Path)
	}
}

type link struct {
	N    int32
	Next *link
}

func TestFromGo_Cycles(t *testing.T) {
	n := &link{N: 1}
	n.Next = &link{N: 2, Next: n}
	_, err := FromGo(n)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindUnsupported || e.Phase != errors.PhaseConvert {
		t.Fatalf("pointer cycle err = %v", err)
	}
	if !reflect.DeepEqual(e.Path, []string{"Next", "Next"}) {
		t.Errorf("path = %v", e.Path)
	}

	m := map[string]any{"gain": 2.0}
	m["self"] = m
	_, err = FromGo(m)
	if !stderrors.As(err, &e) || e.Kind != errors.KindUnsupported {
		t.Fatalf("map cycle err = %v", err)
	}
	if !reflect.DeepEqual(e.Path, []string{"self"}) {
		t.Errorf("path = %v", e.Path)
	}

	s := make([]any, 1)
	s[0] = s
	if _, err = FromGo(s); !stderrors.As(err, &e) || e.Kind != errors.KindUnsupported {
		t.Fatalf("slice cycle err = %v", err)
	}
}

func TestFromGo_SharedReference(t *testing.T) {
	leaf := &link{N: 7}
	v, err := FromGo(struct{ A, B *link }{leaf, leaf})
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	a, _ := v.Field("A")
	b, _ := v.Field("B")
	if !a.Equal(b) {
		t.Errorf("A = %v, B = %v", a, b)
	}
}

func TestToGo(t *testing.T) {
	in := map[string]any{
		"flag":  true,
		"gain":  1.5,
		"steps": []any{int64(1), int64(2)},
	}
	v, err := FromGo(in)
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	if out := ToGo(v); !reflect.DeepEqual(out, in) {
		t.Errorf("ToGo = %#v, want %#v", out, in)
	}
	if ToGo(Empty()) != nil {
		t.Error("ToGo(empty) should be nil")
	}
}

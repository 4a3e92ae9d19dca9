package guest

import (
	"testing"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
	"github.com/wippyai/anyvalue/value"
)

func TestSignature_ParseInput(t *testing.T) {
	add := Signature{Params: []types.Kind{types.KindInt8}}
	v, err := add.ParseInput(" -12 ")
	if err != nil || !v.Equal(value.Int8(-12)) {
		t.Errorf("ParseInput(-12) = %v, %v", v, err)
	}

	_, err = add.ParseInput("300")
	if !isErr(err, errors.PhaseParse, errors.KindOverflow) {
		t.Errorf("ParseInput(300) err = %v", err)
	}

	pair := Signature{Params: []types.Kind{types.KindFloat64, types.KindChar8}}
	v, err = pair.ParseInput("2.5, x")
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if got := v.String(); got != "args{p0: 2.5, p1: 'x'}" {
		t.Errorf("ParseInput(2.5, x) = %s", got)
	}

	_, err = pair.ParseInput("1")
	if !isErr(err, errors.PhaseParse, errors.KindInvalidInput) {
		t.Errorf("short input err = %v", err)
	}

	none := Signature{}
	v, err = none.ParseInput("  ")
	if err != nil || !v.IsEmpty() {
		t.Errorf("ParseInput(blank) = %v, %v", v, err)
	}
	if _, err := none.ParseInput("1"); err == nil {
		t.Error("expected error for input to a function without parameters")
	}
}

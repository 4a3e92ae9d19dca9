package guest

import (
	"strconv"
	"strings"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
	"github.com/wippyai/anyvalue/value"
)

// ParseInput builds a call input from text. Several parameters are separated
// by commas and become a struct "args" with members p0, p1 and so on. Blank
// text is the empty input of a function without parameters.
func (s Signature) ParseInput(text string) (*value.Value, error) {
	text = strings.TrimSpace(text)
	switch len(s.Params) {
	case 0:
		if text != "" {
			return nil, errors.InvalidInput(errors.PhaseParse, "function takes no parameters")
		}
		return value.Empty(), nil
	case 1:
		return parseParam(s.Params[0], text, 0)
	}

	fields := strings.Split(text, ",")
	if len(fields) != len(s.Params) {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("%d values given, function takes %d", len(fields), len(s.Params)).
			Build()
	}
	members := make([]value.Member, len(fields))
	for i, field := range fields {
		v, err := parseParam(s.Params[i], strings.TrimSpace(field), i)
		if err != nil {
			return nil, err
		}
		members[i] = value.Member{Name: "p" + strconv.Itoa(i), Value: v}
	}
	return value.Struct("args", members...)
}

func parseParam(k types.Kind, text string, i int) (*value.Value, error) {
	sv, err := types.ParseScalar(k, text)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = append([]string{"p" + strconv.Itoa(i)}, e.Path...)
		}
		return nil, err
	}
	return value.Scalar(k, sv)
}

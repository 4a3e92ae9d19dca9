package types

import (
	"strconv"
	"strings"

	"github.com/wippyai/anyvalue/errors"
)

// ParseScalar parses text into the alias type of k.
// A char8 given as a single non-digit character takes that character's byte;
// anything else is read as a number.
func ParseScalar(k Kind, text string) (any, error) {
	s := strings.TrimSpace(text)
	switch {
	case k == KindString:
		return text, nil
	case k == KindBool:
		switch strings.ToLower(s) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, errors.ParseFailed(k.String(), strconv.ErrSyntax)
	case k == KindChar8 && len(s) == 1 && (s[0] < '0' || s[0] > '9'):
		return Char8(s[0]), nil
	case k.IsSigned():
		n, err := strconv.ParseInt(s, 0, int(k.Size())*8)
		if err != nil {
			return nil, parseError(k, s, err)
		}
		return fromInt64Must(k, n), nil
	case k.IsInteger():
		u, err := strconv.ParseUint(s, 0, int(k.Size())*8)
		if err != nil {
			return nil, parseError(k, s, err)
		}
		out, _ := fromUint64(k, u)
		return out, nil
	case k.IsFloat():
		f, err := strconv.ParseFloat(s, int(k.Size())*8)
		if err != nil {
			return nil, parseError(k, s, err)
		}
		if k == KindFloat32 {
			return float32(f), nil
		}
		return f, nil
	}
	return nil, errors.Unsupported(errors.PhaseParse, "parse "+k.String())
}

func parseError(k Kind, s string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return errors.New(errors.PhaseParse, errors.KindOverflow).
			ValueType(k.String()).
			Value(s).
			Detail("%q out of range", s).
			Cause(err).
			Build()
	}
	return errors.ParseFailed(k.String(), err)
}

// fromInt64Must is only reached after strconv has range-checked n for k.
func fromInt64Must(k Kind, n int64) any {
	out, _ := fromInt64(k, n)
	return out
}

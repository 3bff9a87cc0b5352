package faker

import (
	"fmt"
	"math"
)

// ArgumentError reports an argument a method could not use.
type ArgumentError struct {
	Method string
	Index  int
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("faker: argument %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("faker: %s argument %d: %s", e.Method, e.Index, e.Reason)
}

// Args are the decoded arguments of a method call. A method accepts either
// positional values or a single options object, as in number.int(1, 10) and
// number.int({"min": 1, "max": 10}).
type Args []any

// Options returns the lone options object, if that is the call form.
func (a Args) Options() (map[string]any, bool) {
	if len(a) != 1 {
		return nil, false
	}
	m, ok := a[0].(map[string]any)
	return m, ok
}

// Int reads positional argument i, or def when absent.
func (a Args) Int(i, def int) (int, error) {
	if i >= len(a) || a[i] == nil {
		return def, nil
	}
	return intArg(a[i], i)
}

// Float reads positional argument i, or def when absent.
func (a Args) Float(i int, def float64) (float64, error) {
	if i >= len(a) || a[i] == nil {
		return def, nil
	}
	f, ok := toFloat(a[i])
	if !ok {
		return 0, &ArgumentError{Index: i, Reason: fmt.Sprintf("expected a number, got %T", a[i])}
	}
	return f, nil
}

// String reads positional argument i, or def when absent.
func (a Args) String(i int, def string) (string, error) {
	if i >= len(a) || a[i] == nil {
		return def, nil
	}
	s, ok := a[i].(string)
	if !ok {
		return "", &ArgumentError{Index: i, Reason: fmt.Sprintf("expected a string, got %T", a[i])}
	}
	return s, nil
}

// Count reads a single length-like argument given positionally or as an
// options object key.
func (a Args) Count(key string, def int) (int, error) {
	if opts, ok := a.Options(); ok {
		v, present := opts[key]
		if !present {
			return def, nil
		}
		n, err := intArg(v, 0)
		if err != nil {
			return 0, err
		}
		return nonNegative(n, 0)
	}
	n, err := a.Int(0, def)
	if err != nil {
		return 0, err
	}
	return nonNegative(n, 0)
}

// IntRange reads (min, max) bounds. Forms: no arguments, a lone max,
// positional min and max, or {"min", "max"}.
func (a Args) IntRange(defMin, defMax int) (int, int, error) {
	lo, hi := defMin, defMax
	var err error
	if opts, ok := a.Options(); ok {
		if v, present := opts["min"]; present {
			if lo, err = intArg(v, 0); err != nil {
				return 0, 0, err
			}
		}
		if v, present := opts["max"]; present {
			if hi, err = intArg(v, 0); err != nil {
				return 0, 0, err
			}
		}
	} else {
		switch len(a) {
		case 0:
		case 1:
			if hi, err = a.Int(0, defMax); err != nil {
				return 0, 0, err
			}
		default:
			if lo, err = a.Int(0, defMin); err != nil {
				return 0, 0, err
			}
			if hi, err = a.Int(1, defMax); err != nil {
				return 0, 0, err
			}
		}
	}
	if lo > hi {
		return 0, 0, &ArgumentError{Index: 0, Reason: fmt.Sprintf("min %d is greater than max %d", lo, hi)}
	}
	return lo, hi, nil
}

// FloatRange reads (min, max, fractionDigits). Forms mirror IntRange with an
// optional third positional argument or a "fractionDigits" key.
func (a Args) FloatRange(defMin, defMax float64, defDigits int) (float64, float64, int, error) {
	lo, hi, digits := defMin, defMax, defDigits
	var err error
	if opts, ok := a.Options(); ok {
		if v, present := opts["min"]; present {
			if lo, err = (Args{v}).Float(0, defMin); err != nil {
				return 0, 0, 0, err
			}
		}
		if v, present := opts["max"]; present {
			if hi, err = (Args{v}).Float(0, defMax); err != nil {
				return 0, 0, 0, err
			}
		}
		if v, present := opts["fractionDigits"]; present {
			if digits, err = intArg(v, 0); err != nil {
				return 0, 0, 0, err
			}
		}
	} else {
		switch len(a) {
		case 0:
		case 1:
			if hi, err = a.Float(0, defMax); err != nil {
				return 0, 0, 0, err
			}
		default:
			if lo, err = a.Float(0, defMin); err != nil {
				return 0, 0, 0, err
			}
			if hi, err = a.Float(1, defMax); err != nil {
				return 0, 0, 0, err
			}
			if digits, err = a.Int(2, defDigits); err != nil {
				return 0, 0, 0, err
			}
		}
	}
	if lo > hi {
		return 0, 0, 0, &ArgumentError{Index: 0, Reason: fmt.Sprintf("min %g is greater than max %g", lo, hi)}
	}
	if digits < 0 || digits > 15 {
		return 0, 0, 0, &ArgumentError{Index: 2, Reason: fmt.Sprintf("fractionDigits %d out of range 0-15", digits)}
	}
	return lo, hi, digits, nil
}

func intArg(v any, i int) (int, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, &ArgumentError{Index: i, Reason: fmt.Sprintf("expected a number, got %T", v)}
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, &ArgumentError{Index: i, Reason: fmt.Sprintf("expected an integer, got %v", v)}
	}
	return int(f), nil
}

func nonNegative(n, i int) (int, error) {
	if n < 0 {
		return 0, &ArgumentError{Index: i, Reason: fmt.Sprintf("expected a non-negative number, got %d", n)}
	}
	return n, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

package invoke

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrInvalidArgs indicates a value that cannot be turned into an argument bag.
	ErrInvalidArgs = errors.New("arguments are invalid")

	// ErrNumberRange indicates a number that does not fit the integer type it is decoded into.
	ErrNumberRange = errors.New("number out of range for target type")
)

// tagName is the struct tag consulted when mapping results and arguments.
const tagName = "json"

// Value is a result returned by the host. It holds plain Go values: nil,
// bool, float64, string, []any and map[string]any.
type Value struct {
	v any
}

// Ensure Value is decoded by Invoke rather than rejected.
var _ Decoder = (*Value)(nil)

// NewValue wraps a plain Go value.
func NewValue(v any) *Value { return &Value{v: v} }

// Interface returns the underlying plain Go value.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	return v.v
}

// Decode maps the value into target, which must be a non-nil pointer.
// Struct fields are matched by their json tag names. Numbers are narrowed
// into integer kinds only when the value is integral and fits the target.
func (v *Value) Decode(target any) error {
	// mapstructure flattens hook errors to strings, so keep the first one
	// to preserve ErrNumberRange for errors.Is
	var rangeErr error
	hook := func(from, to reflect.Type, data any) (any, error) {
		out, err := checkIntegerFit(from, to, data)
		if err != nil && rangeErr == nil {
			rangeErr = err
		}
		return out, err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    tagName,
		DecodeHook: mapstructure.DecodeHookFuncType(hook),
		Result:     target,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(v.Interface()); err != nil {
		if rangeErr != nil {
			return errors.Join(rangeErr, err)
		}
		return err
	}
	return nil
}

// ArgsFrom builds an argument bag from a struct or map. Struct fields are
// keyed by their json tag names. A nil input yields nil Args.
func ArgsFrom(in any) (Args, error) {
	if in == nil {
		return nil, nil
	}
	if args, ok := in.(Args); ok {
		return args, nil
	}

	out := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: tagName,
		Result:  &out,
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidArgs, err)
	}
	if err := dec.Decode(in); err != nil {
		return nil, errors.Join(ErrInvalidArgs, err)
	}
	return Args(out), nil
}

// checkIntegerFit rejects numbers mapstructure would otherwise truncate or
// wrap when decoding into an integer kind.
func checkIntegerFit(from, to reflect.Type, data any) (any, error) {
	if !isInteger(to.Kind()) {
		return data, nil
	}

	src := reflect.ValueOf(data)
	dst := reflect.New(to).Elem()

	switch {
	case isFloat(from.Kind()):
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrNumberRange, f)
		}
		if isSigned(to.Kind()) {
			if f < math.MinInt64 || f >= math.MaxInt64 || dst.OverflowInt(int64(f)) {
				return nil, fmt.Errorf("%w: %v does not fit %s", ErrNumberRange, f, to)
			}
			return data, nil
		}
		if f < 0 || f >= math.MaxUint64 || dst.OverflowUint(uint64(f)) {
			return nil, fmt.Errorf("%w: %v does not fit %s", ErrNumberRange, f, to)
		}
	case isSigned(from.Kind()):
		n := src.Int()
		if isSigned(to.Kind()) {
			if dst.OverflowInt(n) {
				return nil, fmt.Errorf("%w: %d does not fit %s", ErrNumberRange, n, to)
			}
			return data, nil
		}
		if n < 0 || dst.OverflowUint(uint64(n)) {
			return nil, fmt.Errorf("%w: %d does not fit %s", ErrNumberRange, n, to)
		}
	case isInteger(from.Kind()):
		n := src.Uint()
		if isSigned(to.Kind()) {
			if n > math.MaxInt64 || dst.OverflowInt(int64(n)) {
				return nil, fmt.Errorf("%w: %d does not fit %s", ErrNumberRange, n, to)
			}
			return data, nil
		}
		if dst.OverflowUint(n) {
			return nil, fmt.Errorf("%w: %d does not fit %s", ErrNumberRange, n, to)
		}
	}
	return data, nil
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return isSigned(k)
}

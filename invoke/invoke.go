package invoke

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrResultType is returned when a dispatcher result cannot be represented as the requested type.
	ErrResultType = errors.New("result does not match requested type")

	// ErrDecodeResult wraps failures while decoding a dispatcher result into the requested type.
	ErrDecodeResult = errors.New("failed to decode result")
)

// Args is the argument bag passed alongside a command. A nil Args means no arguments.
type Args map[string]any

// Dispatcher executes named commands. It is the only collaborator of Invoke.
type Dispatcher interface {
	Dispatch(ctx context.Context, command string, args Args) (any, error)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, command string, args Args) (any, error)

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, command string, args Args) (any, error) {
	return f(ctx, command, args)
}

// Decoder is implemented by results that are decoded lazily into the caller's type.
type Decoder interface {
	Decode(target any) error
}

// Result is the settled outcome of InvokeAsync.
type Result[T any] struct {
	Value T
	Err   error
}

// Invoke dispatches command with args and returns the result as T.
//
// The command name and args are handed to d unmodified. A dispatcher error is
// returned as is, alongside the zero T.
func Invoke[T any](ctx context.Context, d Dispatcher, command string, args Args) (T, error) {
	res, err := d.Dispatch(ctx, command, args)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](res)
}

// InvokeAsync runs Invoke in its own goroutine. The returned channel yields
// exactly one Result and is then closed.
func InvokeAsync[T any](ctx context.Context, d Dispatcher, command string, args Args) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		v, err := Invoke[T](ctx, d, command, args)
		out <- Result[T]{Value: v, Err: err}
	}()
	return out
}

// As converts an untyped dispatcher result into T.
//
// A nil result yields the zero T. A result already of type T is returned
// untouched. Results implementing Decoder are decoded into a new T. Anything
// else fails with ErrResultType.
func As[T any](res any) (T, error) {
	var out T
	if res == nil {
		return out, nil
	}

	if v, ok := res.(T); ok {
		return v, nil
	}

	if dec, ok := res.(Decoder); ok {
		if err := dec.Decode(&out); err != nil {
			var zero T
			return zero, errors.Join(ErrDecodeResult, err)
		}
		return out, nil
	}

	return out, errors.Join(
		ErrResultType,
		fmt.Errorf("want %s, got %T", reflect.TypeFor[T](), res),
	)
}

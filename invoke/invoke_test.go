package invoke_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tarmac-project/bridge/invoke"
	"github.com/tarmac-project/bridge/invoke/mock"
)

type greeting struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

func TestInvoke_Greet(t *testing.T) {
	t.Parallel()

	d := mock.New(mock.Config{})
	d.On("greet", mock.Response{Result: "Hello, World!"})

	got, err := invoke.Invoke[string](context.Background(), d, "greet", invoke.Args{"name": "World"})
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if got != "Hello, World!" {
		t.Fatalf("expected %q, got %q", "Hello, World!", got)
	}

	calls := d.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", len(calls))
	}
	if calls[0].Command != "greet" {
		t.Fatalf("expected command greet, got %q", calls[0].Command)
	}
	if !reflect.DeepEqual(calls[0].Args, invoke.Args{"name": "World"}) {
		t.Fatalf("unexpected args %v", calls[0].Args)
	}
}

func TestInvoke_UnknownCommandErrorPassesThrough(t *testing.T) {
	t.Parallel()

	errUnknown := errors.New("command unknown-command not found")
	d := mock.New(mock.Config{})
	d.On("unknown-command", mock.Response{Error: errUnknown})

	got, err := invoke.Invoke[string](context.Background(), d, "unknown-command", nil)
	if err != errUnknown {
		t.Fatalf("expected the dispatcher error unchanged, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected zero result, got %q", got)
	}
}

func TestInvoke_ForwardsArgumentsUnmodified(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name    string
		command string
		args    invoke.Args
	}{
		{name: "nil args", command: "greet", args: nil},
		{name: "empty args", command: "greet", args: invoke.Args{}},
		{name: "nested args", command: "save", args: invoke.Args{"doc": map[string]any{"id": 1}, "tags": []any{"a"}}},
		{name: "empty command", command: "", args: invoke.Args{"x": true}},
		{name: "odd command", command: "plugin:fs|read_file", args: invoke.Args{"path": "/tmp"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var (
				calls   int
				gotCmd  string
				gotArgs invoke.Args
			)
			d := invoke.DispatcherFunc(func(_ context.Context, command string, args invoke.Args) (any, error) {
				calls++
				gotCmd, gotArgs = command, args
				return nil, nil
			})

			if _, err := invoke.Invoke[any](context.Background(), d, tc.command, tc.args); err != nil {
				t.Fatalf("Invoke returned error: %v", err)
			}

			if calls != 1 {
				t.Fatalf("expected exactly one dispatch, got %d", calls)
			}
			if gotCmd != tc.command {
				t.Fatalf("expected command %q, got %q", tc.command, gotCmd)
			}
			if (gotArgs == nil) != (tc.args == nil) {
				t.Fatalf("nil-ness of args changed: sent %v, got %v", tc.args, gotArgs)
			}
			if tc.args != nil && reflect.ValueOf(gotArgs).Pointer() != reflect.ValueOf(tc.args).Pointer() {
				t.Fatalf("expected the same argument map to reach the dispatcher")
			}
		})
	}
}

func TestInvoke_ResultIdentity(t *testing.T) {
	t.Parallel()

	ptr := &greeting{Text: "hi"}
	d := invoke.DispatcherFunc(func(context.Context, string, invoke.Args) (any, error) {
		return ptr, nil
	})

	got, err := invoke.Invoke[*greeting](context.Background(), d, "greet", nil)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if got != ptr {
		t.Fatalf("expected the exact dispatcher result to be returned")
	}

	raw, err := invoke.Invoke[any](context.Background(), d, "greet", nil)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if raw != any(ptr) {
		t.Fatalf("expected untyped result to be the dispatcher value, got %v", raw)
	}
}

func TestInvoke_ContextReachesDispatcher(t *testing.T) {
	t.Parallel()

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	d := invoke.DispatcherFunc(func(ctx context.Context, _ string, _ invoke.Args) (any, error) {
		return ctx.Value(key{}), nil
	})

	got, err := invoke.Invoke[string](ctx, d, "probe", nil)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if got != "marker" {
		t.Fatalf("expected context value to reach dispatcher, got %q", got)
	}
}

func TestAs(t *testing.T) {
	t.Parallel()

	t.Run("nil result", func(t *testing.T) {
		got, err := invoke.As[greeting](nil)
		if err != nil || got != (greeting{}) {
			t.Fatalf("expected zero value and no error, got %+v, %v", got, err)
		}
	})

	t.Run("decoder result", func(t *testing.T) {
		v := invoke.NewValue(map[string]any{"text": "hello", "count": float64(2)})
		got, err := invoke.As[greeting](v)
		if err != nil {
			t.Fatalf("As returned error: %v", err)
		}
		if got != (greeting{Text: "hello", Count: 2}) {
			t.Fatalf("unexpected decoded value %+v", got)
		}
	})

	t.Run("decoder failure", func(t *testing.T) {
		_, err := invoke.As[int](invoke.NewValue("not a number"))
		if !errors.Is(err, invoke.ErrDecodeResult) {
			t.Fatalf("expected ErrDecodeResult, got %v", err)
		}
	})

	t.Run("lossy number", func(t *testing.T) {
		_, err := invoke.As[uint8](invoke.NewValue(float64(300)))
		if !errors.Is(err, invoke.ErrDecodeResult) || !errors.Is(err, invoke.ErrNumberRange) {
			t.Fatalf("expected ErrDecodeResult and ErrNumberRange, got %v", err)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := invoke.As[string](42)
		if !errors.Is(err, invoke.ErrResultType) {
			t.Fatalf("expected ErrResultType, got %v", err)
		}
	})

	t.Run("decoder kept when requested", func(t *testing.T) {
		v := invoke.NewValue("raw")
		got, err := invoke.As[*invoke.Value](v)
		if err != nil || got != v {
			t.Fatalf("expected the Value itself, got %v, %v", got, err)
		}
	})
}

func TestInvokeAsync(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	d := mock.New(mock.Config{})
	d.On("greet", mock.Response{Result: "Hello, World!"})
	d.On("fail", mock.Response{Error: errBoom})

	ok := invoke.InvokeAsync[string](context.Background(), d, "greet", invoke.Args{"name": "World"})
	bad := invoke.InvokeAsync[string](context.Background(), d, "fail", nil)

	res := <-ok
	if res.Err != nil || res.Value != "Hello, World!" {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, open := <-ok; open {
		t.Fatalf("expected channel to be closed after one result")
	}

	res = <-bad
	if res.Err != errBoom {
		t.Fatalf("expected dispatcher error unchanged, got %v", res.Err)
	}

	if n := len(d.Calls()); n != 2 {
		t.Fatalf("expected 2 dispatches, got %d", n)
	}
}

func FuzzInvoke_PassThrough(f *testing.F) {
	f.Add("greet", "name", "World", false)
	f.Add("", "", "", true)
	f.Add("unknown-command", "k", "v", true)

	f.Fuzz(func(t *testing.T, command, key, value string, fail bool) {
		errFail := errors.New("dispatch failed")
		args := invoke.Args{key: value}

		var calls int
		d := invoke.DispatcherFunc(func(_ context.Context, gotCmd string, gotArgs invoke.Args) (any, error) {
			calls++
			if gotCmd != command {
				t.Fatalf("command changed: %q -> %q", command, gotCmd)
			}
			if len(gotArgs) != 1 || gotArgs[key] != value {
				t.Fatalf("args changed: %v -> %v", args, gotArgs)
			}
			if fail {
				return nil, errFail
			}
			return command + value, nil
		})

		got, err := invoke.Invoke[string](context.Background(), d, command, args)
		if calls != 1 {
			t.Fatalf("expected exactly one dispatch, got %d", calls)
		}
		if fail {
			if err != errFail {
				t.Fatalf("expected dispatcher error unchanged, got %v", err)
			}
			return
		}
		if err != nil || got != command+value {
			t.Fatalf("expected %q, got %q (%v)", command+value, got, err)
		}
	})
}

package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	bridge "github.com/tarmac-project/bridge"
	wapc "github.com/wapc/wapc-guest-tinygo"
	pb "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const capabilityName = "invoke"

var (
	// ErrMarshalArgs wraps failures while encoding the argument bag.
	ErrMarshalArgs = errors.New("failed to marshal arguments")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

// HostCall defines the waPC host function signature used to dispatch commands.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls how a HostDispatcher interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig bridge.RuntimeConfig

	// HostCall overrides the waPC host function used to dispatch commands.
	HostCall HostCall
}

// HostDispatcher dispatches commands to the host over waPC. The command name
// is used verbatim as the waPC function name under the "invoke" capability.
type HostDispatcher struct {
	runtime  bridge.RuntimeConfig
	hostCall HostCall
}

// Ensure HostDispatcher satisfies the Dispatcher interface at compile time.
var _ Dispatcher = (*HostDispatcher)(nil)

// NewHostDispatcher creates a HostDispatcher with namespace defaults and an
// optional host-call override.
func NewHostDispatcher(config Config) (*HostDispatcher, error) {
	// Fall back to the real waPC host when no override is given
	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	// Empty namespace resolves to bridge.DefaultNamespace
	return &HostDispatcher{
		runtime:  config.SDKConfig.WithDefaults(),
		hostCall: hostCall,
	}, nil
}

// Dispatch sends command and args to the host. A successful call with an
// empty response yields a nil result; otherwise the result is a *Value.
func (h *HostDispatcher) Dispatch(ctx context.Context, command string, args Args) (any, error) {
	// waPC calls cannot be interrupted, so only honour cancellation up front
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := encodeArgs(args)
	if err != nil {
		return nil, err
	}

	resp, err := h.hostCall(h.runtime.Namespace, capabilityName, command, payload)
	if err != nil {
		return nil, errors.Join(bridge.ErrHostCall, err)
	}

	return decodeResult(resp)
}

// encodeArgs marshals args as a protobuf Struct. Nil and empty bags encode
// to the same zero-length payload.
func encodeArgs(args Args) ([]byte, error) {
	if len(args) == 0 {
		return nil, nil
	}

	fields := make(map[string]any, len(args))
	for k, v := range args {
		fields[k] = normalize(reflect.ValueOf(v))
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Join(ErrMarshalArgs, err)
	}

	b, err := pb.Marshal(s)
	if err != nil {
		return nil, errors.Join(ErrMarshalArgs, err)
	}
	return b, nil
}

func decodeResult(resp []byte) (any, error) {
	if len(resp) == 0 {
		return nil, nil
	}

	var v structpb.Value
	if err := pb.Unmarshal(resp, &v); err != nil {
		return nil, errors.Join(bridge.ErrHostResponseInvalid, ErrUnmarshalResponse, err)
	}
	return NewValue(v.AsInterface()), nil
}

// normalize rewrites v into the shapes structpb accepts: map[string]any,
// []any and builtin scalars. Structs become maps keyed by json tags. Kinds
// with no protobuf form are returned as is so structpb reports them.
func normalize(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	if n, ok := v.Interface().(json.Number); ok {
		return n
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return normalize(v.Elem())
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		// structpb carries byte slices as base64 strings
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes()
		}
		return normalizeList(v)
	case reflect.Array:
		return normalizeList(v)
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return v.Interface()
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value())
		}
		return out
	case reflect.Struct:
		m, err := ArgsFrom(v.Interface())
		if err != nil {
			return v.Interface()
		}
		return normalize(reflect.ValueOf(map[string]any(m)))
	default:
		return v.Interface()
	}
}

func normalizeList(v reflect.Value) []any {
	out := make([]any, v.Len())
	for i := range out {
		out[i] = normalize(v.Index(i))
	}
	return out
}

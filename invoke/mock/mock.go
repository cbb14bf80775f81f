package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tarmac-project/bridge/invoke"
)

// ErrUnknownCommand is returned for commands with no scripted response and no default.
var ErrUnknownCommand = errors.New("unknown command")

// Response describes the outcome scripted for a command.
type Response struct {
	// Result is returned when Error is nil.
	Result any

	// Error, when set, is returned instead of Result.
	Error error
}

// Call captures a single Dispatch observed by the mock.
type Call struct {
	// Command is the command name as received.
	Command string

	// Args is the argument bag as received, not copied.
	Args invoke.Args
}

// Config controls construction of a Dispatcher.
type Config struct {
	// DefaultResponse answers commands without a scripted response. When nil,
	// such commands fail with ErrUnknownCommand.
	DefaultResponse *Response
}

// Dispatcher implements invoke.Dispatcher with scripted responses and call
// recording. It is safe for concurrent use.
type Dispatcher struct {
	mu        sync.Mutex
	responses map[string]Response
	fallback  *Response
	calls     []Call
}

// Ensure Dispatcher satisfies invoke.Dispatcher at compile time.
var _ invoke.Dispatcher = (*Dispatcher)(nil)

// New creates a Dispatcher with no scripted responses.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		responses: make(map[string]Response),
		fallback:  config.DefaultResponse,
	}
}

// On scripts the response for command, replacing any earlier one.
func (d *Dispatcher) On(command string, resp Response) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses[command] = resp
}

// Dispatch records the call and returns the scripted response.
func (d *Dispatcher) Dispatch(_ context.Context, command string, args invoke.Args) (any, error) {
	d.mu.Lock()
	d.calls = append(d.calls, Call{Command: command, Args: args})
	resp, ok := d.responses[command]
	if !ok && d.fallback != nil {
		resp, ok = *d.fallback, true
	}
	d.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Result, nil
}

// Calls returns a copy of every call observed so far, in arrival order.
func (d *Dispatcher) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

// CallsFor returns the calls observed for command.
func (d *Dispatcher) CallsFor(command string) []Call {
	var out []Call
	for _, c := range d.Calls() {
		if c.Command == command {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls. Scripted responses are kept.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

package hostmock

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnexpectedNamespace is returned when the namespace is not as expected.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned when the capability is not as expected.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrUnexpectedFunction is returned when the function is not as expected.
	ErrUnexpectedFunction = errors.New("unexpected function")

	// ErrOperationFailed is returned when Fail is set without a custom error.
	ErrOperationFailed = errors.New("operation failed")
)

// Config describes what a Mock expects and how it answers.
type Config struct {
	// ExpectedNamespace is enforced when non-empty.
	ExpectedNamespace string

	// ExpectedCapability is enforced when non-empty.
	ExpectedCapability string

	// ExpectedFunction is enforced when non-empty. For the invoke capability
	// this is the command name.
	ExpectedFunction string

	// Error is returned when Fail is set.
	Error error

	// PayloadValidator validates the payload passed to the host call.
	PayloadValidator func([]byte) error

	// Response supplies fixed response bytes.
	Response func() []byte

	// Handler computes the response from the called function and payload.
	// It takes precedence over Response.
	Handler func(function string, payload []byte) ([]byte, error)

	// Fail makes every call return Error, or ErrOperationFailed when Error is nil.
	Fail bool
}

// Call records a single host call observed by the Mock.
type Call struct {
	Namespace  string
	Capability string
	Function   string
	Payload    []byte
}

// Mock simulates the waPC host call with validation, scripted responses and
// call recording. It is safe for concurrent use.
type Mock struct {
	cfg Config

	mu    sync.Mutex
	calls []Call
}

// New creates a Mock from config.
func New(config Config) (*Mock, error) {
	return &Mock{cfg: config}, nil
}

// HostCall simulates a host call. Every call is recorded, including those
// that fail validation.
func (m *Mock) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	m.record(Call{Namespace: namespace, Capability: capability, Function: function, Payload: payload})

	if m.cfg.Fail {
		if m.cfg.Error != nil {
			return nil, m.cfg.Error
		}
		return nil, ErrOperationFailed
	}

	if err := expect(ErrUnexpectedNamespace, "namespace", m.cfg.ExpectedNamespace, namespace); err != nil {
		return nil, err
	}
	if err := expect(ErrUnexpectedCapability, "capability", m.cfg.ExpectedCapability, capability); err != nil {
		return nil, err
	}
	if err := expect(ErrUnexpectedFunction, "function", m.cfg.ExpectedFunction, function); err != nil {
		return nil, err
	}

	if m.cfg.PayloadValidator != nil {
		if err := m.cfg.PayloadValidator(payload); err != nil {
			return nil, err
		}
	}

	if m.cfg.Handler != nil {
		return m.cfg.Handler(function, payload)
	}
	if m.cfg.Response != nil {
		return m.cfg.Response(), nil
	}

	return nil, nil
}

// Calls returns a copy of the recorded calls in arrival order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Mock) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// expect returns sentinel joined with detail when want is set and differs from got.
func expect(sentinel error, field, want, got string) error {
	if want == "" || want == got {
		return nil
	}
	return fmt.Errorf("%w: expected %s %s, got %s", sentinel, field, want, got)
}

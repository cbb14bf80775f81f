package bridge

import (
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const (
	// DefaultNamespace is used when no explicit namespace is provided.
	DefaultNamespace = "bridge"

	// DefaultFunction is the waPC function name the guest handler is exported under.
	DefaultFunction = "handler"
)

// Handler is the guest entry point invoked by the host with a raw payload.
type Handler func([]byte) ([]byte, error)

// Config provides configuration options for New.
type Config struct {
	// Namespace scopes host calls made by clients built from this bridge.
	// If empty, DefaultNamespace is used.
	Namespace string

	// Function is the exported waPC function name. If empty, DefaultFunction is used.
	Function string

	// Handler serves calls the host makes into the guest.
	Handler Handler
}

// RuntimeConfig carries configuration shared by host-facing clients.
type RuntimeConfig struct {
	// Namespace is used to scope host interactions.
	Namespace string
}

// WithDefaults returns a copy of c with empty fields replaced by their defaults.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}

// Bridge is an initialized guest runtime with its handler registered.
type Bridge struct {
	runtime  RuntimeConfig
	function string
	handler  Handler
}

// New validates cfg and registers its handler with waPC.
func New(cfg Config) (*Bridge, error) {
	// Validate Handler is not empty
	if cfg.Handler == nil {
		return nil, ErrHandlerNil
	}

	// Create runtime configuration with defaults
	b := &Bridge{
		runtime:  RuntimeConfig{Namespace: cfg.Namespace}.WithDefaults(),
		function: cfg.Function,
		handler:  cfg.Handler,
	}

	// Export under the default function name unless overridden
	if b.function == "" {
		b.function = DefaultFunction
	}

	// Register the handler with waPC
	wapc.RegisterFunction(b.function, func(payload []byte) ([]byte, error) {
		return b.handler(payload)
	})

	return b, nil
}

// Config returns a snapshot of the runtime configuration.
func (b *Bridge) Config() RuntimeConfig { return b.runtime }

// Function returns the waPC function name the handler was registered under.
func (b *Bridge) Function() string { return b.function }

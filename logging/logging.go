package logging

import (
	"fmt"

	bridge "github.com/tarmac-project/bridge"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const capabilityName = "logging"

// Level names the host logging function an entry is sent to.
type Level string

const (
	// LevelTrace is for fine-grained tracing output.
	LevelTrace Level = "Trace"

	// LevelDebug is for diagnostic output.
	LevelDebug Level = "Debug"

	// LevelInfo is for routine operational messages.
	LevelInfo Level = "Info"

	// LevelWarn is for conditions worth attention that do not stop work.
	LevelWarn Level = "Warn"

	// LevelError is for failures.
	LevelError Level = "Error"
)

// HostCall defines the waPC host function signature used for logging.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Client sends log entries to the host runtime. Delivery is best effort:
// failures are dropped so logging never changes caller control flow.
type Client interface {
	Log(level Level, message string)
	Info(message string)
	Warn(message string)
	Error(message string)
	Debug(message string)
	Trace(message string)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig bridge.RuntimeConfig

	// HostCall overrides the waPC host function used for logging operations.
	HostCall HostCall
}

type client struct {
	runtime  bridge.RuntimeConfig
	hostCall HostCall
}

// New creates a Client that emits logs through the host logging capability.
func New(cfg Config) (Client, error) {
	// Use the real waPC host unless a HostCall override is provided
	hostCall := cfg.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	// Apply the default namespace when none is set
	return &client{
		runtime:  cfg.SDKConfig.WithDefaults(),
		hostCall: hostCall,
	}, nil
}

func (c *client) Log(level Level, message string) {
	_, _ = c.hostCall(c.runtime.Namespace, capabilityName, string(level), []byte(message))
}

func (c *client) Info(message string)  { c.Log(LevelInfo, message) }
func (c *client) Warn(message string)  { c.Log(LevelWarn, message) }
func (c *client) Error(message string) { c.Log(LevelError, message) }
func (c *client) Debug(message string) { c.Log(LevelDebug, message) }
func (c *client) Trace(message string) { c.Log(LevelTrace, message) }

func (c *client) Infof(format string, args ...any) {
	c.Log(LevelInfo, fmt.Sprintf(format, args...))
}

func (c *client) Errorf(format string, args ...any) {
	c.Log(LevelError, fmt.Sprintf(format, args...))
}

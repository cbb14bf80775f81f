// Command greeter is an example guest function. It reads a name from the
// request payload, asks the host to greet it, and returns the greeting.
package main

import (
	bridge "github.com/tarmac-project/bridge"
	"github.com/tarmac-project/bridge/invoke"
	"github.com/tarmac-project/bridge/logging"
)

func main() {
	runtime := bridge.RuntimeConfig{}.WithDefaults()

	d, err := invoke.NewHostDispatcher(invoke.Config{SDKConfig: runtime})
	if err != nil {
		return
	}

	log, err := logging.New(logging.Config{SDKConfig: runtime})
	if err != nil {
		return
	}

	h := &handler{dispatcher: d, log: log}
	if _, err := bridge.New(bridge.Config{Namespace: runtime.Namespace, Handler: h.Handle}); err != nil {
		log.Errorf("registering handler: %v", err)
	}
}

package main

import (
	"bytes"
	"context"

	"github.com/tarmac-project/bridge/commands"
	"github.com/tarmac-project/bridge/invoke"
	"github.com/tarmac-project/bridge/logging"
)

const defaultName = "World"

type handler struct {
	dispatcher invoke.Dispatcher
	log        logging.Client
}

// Handle greets the name carried in payload, or defaultName when it is blank.
func (h *handler) Handle(payload []byte) ([]byte, error) {
	name := string(bytes.TrimSpace(payload))
	if name == "" {
		name = defaultName
	}

	greeting, err := commands.SayHello(context.Background(), h.dispatcher, name)
	if err != nil {
		h.log.Errorf("greet %q: %v", name, err)
		return nil, err
	}

	h.log.Infof("greeted %q", name)
	return []byte(greeting), nil
}

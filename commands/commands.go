package commands

import (
	"context"
	"sort"

	"github.com/tarmac-project/bridge/invoke"
)

// Greet is the name of the example greeting command.
const Greet = "greet"

// GreetArgs are the arguments accepted by Greet.
type GreetArgs struct {
	Name string `json:"name"`
}

// SayHello invokes Greet for name and returns the host's greeting.
func SayHello(ctx context.Context, d invoke.Dispatcher, name string) (string, error) {
	args, err := invoke.ArgsFrom(GreetArgs{Name: name})
	if err != nil {
		return "", err
	}
	return invoke.Invoke[string](ctx, d, Greet, args)
}

// Signature documents a command: its argument fields and result type.
type Signature struct {
	Name        string
	Args        map[string]string
	Result      string
	Description string
}

var catalog = map[string]Signature{
	Greet: {
		Name:        Greet,
		Args:        map[string]string{"name": "string"},
		Result:      "string",
		Description: `Returns "Hello, {name}! From Rust." built by the host.`,
	},
}

// Catalog returns every documented command sorted by name.
func Catalog() []Signature {
	out := make([]Signature, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the documented signature for name.
func Lookup(name string) (Signature, bool) {
	s, ok := catalog[name]
	return s, ok
}

/*
Package invoke forwards typed command calls to a host-provided dispatcher.

Invoke is a thin generic pass-through: it hands the command name and argument
bag to a Dispatcher exactly once and returns the result as the caller's
requested type. It adds no logging, caching, retries, or timeouts, and
dispatcher failures come back unchanged so they can be compared directly or
with errors.Is.

	greeting, err := invoke.Invoke[string](ctx, d, "greet", invoke.Args{"name": "World"})

HostDispatcher is the Dispatcher backed by the waPC host. Arguments travel as
a protobuf Struct and results come back as a *Value that Invoke decodes into
the requested type.
*/
package invoke

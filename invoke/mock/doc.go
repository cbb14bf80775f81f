/*
Package mock provides an in-memory invoke.Dispatcher for tests.

Responses are scripted per command, with an optional default for everything
else, and every call is recorded so tests can assert what reached the
dispatcher and how many times.

	d := mock.New(mock.Config{})
	d.On("greet", mock.Response{Result: "Hello, World!"})

	got, err := invoke.Invoke[string](ctx, d, "greet", invoke.Args{"name": "World"})
*/
package mock

/*
Package hostmock provides a pretend waPC host.

It stands in for the real host in tests that need to check exactly what guest
code sends across the boundary: the namespace, the capability, the function
(the command name, for invoke) and the raw payload.

	m, _ := hostmock.New(hostmock.Config{
	  ExpectedNamespace:  "bridge",
	  ExpectedCapability: "invoke",
	  ExpectedFunction:   "greet",
	  Handler: func(fn string, payload []byte) ([]byte, error) {
	    // decode the argument Struct, build a Value, marshal it
	    return resp, nil
	  },
	})

	d, _ := invoke.NewHostDispatcher(invoke.Config{HostCall: m.HostCall})

Behavior

  - If Fail is true, HostCall returns Error, or ErrOperationFailed when Error is nil.
  - Expected namespace, capability and function are only enforced when set.
  - PayloadValidator runs before the response is produced.
  - Handler, when set, produces the response; otherwise Response does; otherwise nil.
  - Every call is recorded and available through Calls.
*/
package hostmock

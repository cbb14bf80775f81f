/*
Package commands is the catalog of commands the host exposes to guest code.

Each command gets a name constant, an argument type and a typed helper built
on invoke.Invoke. Catalog lists the documented signatures so tools can show
what is available without calling the host.

Adding a command: declare its name and argument struct here, add a helper that
calls invoke.Invoke with the right result type, and append its Signature to
the catalog. The host must register a handler under the same name.
*/
package commands

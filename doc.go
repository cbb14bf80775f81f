/*
Package bridge provides the runtime entry point shared by guest code that
calls commands exposed by its host.

New registers the guest handler with waPC. RuntimeConfig carries the namespace
every host-facing client (invoke, logging) scopes its calls with;
DefaultNamespace is used when none is given.
*/
package bridge

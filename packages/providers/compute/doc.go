// Package compute is a client for a minimal compute API: list, fetch, create
// and delete servers.
//
// AsyncClient returns futures run on the user executor; Client waits on them.
// Register adds the provider to a rest.Registry under the id "compute".
package compute

// Package rest assembles API clients.
//
// A Source names what to build: either an explicit pair of client factories
// (Types) or a provider id looked up in a Registry (Provider). ResolveContextSpec
// turns a Source into a ContextSpec once; Assemble builds the client from the
// spec, a Config and an ordered list of wiring overlays.
package rest

// Package wiring resolves the roles a client is assembled from.
//
// A Roles value starts from Defaults, the real stack described by a Config,
// and is then overlaid by an ordered list of Overlay values. An overlay only
// replaces the roles it sets; for each role the last overlay that sets it wins.
package wiring

// Package nominal implements the core data structures of a nominal,
// self-adjusting computation library: name-annotated, probabilistically
// balanced lists and trees whose shape is a deterministic function of
// element and name hashes rather than of input order.
//
// The package is parametric over an external incremental-computation
// engine (see Engine); it never inspects the representation of an Art or
// a Name, only the operations in that interface.
package nominal

package nominal

// ProgPoint identifies a thunk's call site for memoization purposes.
// Engines are free to ignore it; the reference engine in package
// nominal/engine uses it together with the thunk's Name argument as a memo
// key.
type ProgPoint string

// Art is an opaque handle to a runtime-managed, possibly memoized value.
// The core never inspects its representation; only Engine operations may
// produce or consume one. Cloning an Art is a plain Go value copy and is
// O(1): engines must implement Art as something cheap to copy (a pointer or
// a small struct), never something that duplicates the pointed-to content.
type Art interface {
	// artHandle is unexported so only this module's packages can
	// implement Art; callers outside the module receive Art values from
	// an Engine but can never manufacture their own.
	artHandle()
}

// Engine is the runtime interface the core requires. It is the entire
// surface through which this package talks to an external
// incremental-computation runtime; the runtime's dependency graph, change
// propagation, and dirty/clean bookkeeping are out of scope and are never
// visible here.
type Engine interface {
	// Cell stores v under name n and returns a writable handle. Repeated
	// calls with the same n and an equal v (by the caller's own notion of
	// equality) are expected to yield the same logical articulation.
	Cell(n Name, v any) (Art, error)

	// ReadOnly freezes a cell handle; subsequent Force calls are pure.
	ReadOnly(a Art) Art

	// Force evaluates and returns the content of a. Two Force calls on the
	// same Art under the same trace must observe equal results
	// (referential transparency).
	Force(a Art) (any, error)

	// Thunk suspends f(args) under program point pt, keyed additionally by
	// name n so independent thunks at the same call site don't collide.
	// The engine may memoize: a later Thunk call with the same (pt, n) may
	// skip calling f and return the previous result's Art directly.
	Thunk(pt ProgPoint, n Name, f func(args any) (any, error), args any) (Art, error)

	// Structural executes body in a mode where Art and Name accesses
	// inside it are not recorded as dependencies of the enclosing
	// computation; NextLeaf requires this.
	Structural(body func() (any, error)) (any, error)

	// NameFork and NameFork4 are the engine-supplied name-forking
	// primitives, exposed here because some engines key forked names off
	// internal bookkeeping (e.g. a per-trace counter) rather than the pure
	// path-derivation nominal.Fork/Fork4 provide. The core algorithms call
	// through the Engine so either strategy works; the reference engine in
	// package engine simply delegates to nominal.Fork/Fork4.
	NameFork(n Name) (Name, Name)
	NameFork4(n Name) (Name, Name, Name, Name)
}

// ForceAs forces a and type-asserts the result to T. A failed Force is
// returned wrapped in a *ForceError; a stored value that is not a T yields a
// *ForceError wrapping ErrShapeInvariantViolation. Algorithms in this package use it to keep the any-typed Engine
// boundary from leaking into generic call sites.
func ForceAs[T any](eng Engine, a Art) (T, error) {
	v, err := eng.Force(a)
	if err != nil {
		var zero T
		return zero, &ForceError{Err: err}
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, &ForceError{Err: ErrShapeInvariantViolation}
	}
	return t, nil
}

package nominal

// Dir selects which side of a Bin/Name node tree_of_list and NextLeaf
// treat as the "spine".
type Dir int

const (
	// DirLeft builds/streams a left-spine tree: in-order yields input order.
	DirLeft Dir = iota
	// DirRight builds/streams the mirror image of DirLeft.
	DirRight
)

type treeKind uint8

const (
	treeNil treeKind = iota
	treeLeaf
	treeBin
	treeName
	treeRc
	treeArt
)

// Tree is the nominal tree ADT: Nil, Leaf(E), Bin(lev,l,r), Name(n,lev,l,r),
// Rc(shared), Art(a). It is immutable once constructed;
// algorithms in this package always re-emit new structure rather than
// mutate an existing node.
type Tree[E any] struct {
	kind  treeKind
	leaf  E
	lev   Level
	left  *Tree[E]
	right *Tree[E]
	name  Name
	rc    *Tree[E]
	art   Art
}

// TreeNil constructs the empty tree.
func TreeNil[E any]() *Tree[E] { return &Tree[E]{kind: treeNil} }

// Leaf constructs a single-element tree.
func Leaf[E any](x E) *Tree[E] { return &Tree[E]{kind: treeLeaf, leaf: x} }

// Bin constructs an internal node at the given level over l and r. Callers
// are responsible for the heap-order invariant; tree_of_list is the only
// place in this package that must maintain it by construction.
func Bin[E any](lev Level, l, r *Tree[E]) *Tree[E] {
	return &Tree[E]{kind: treeBin, lev: lev, left: l, right: r}
}

// NameNode constructs a name-annotated internal node (lev must be >=
// NameLevelFloor, per the name-dominance invariant).
func NameNode[E any](n Name, lev Level, l, r *Tree[E]) *Tree[E] {
	return &Tree[E]{kind: treeName, name: n, lev: lev, left: l, right: r}
}

// RcTree wraps shared is shared among concurrent consumers of one build.
// Go's garbage collector already manages the lifetime of
// the pointee; this constructor exists to preserve the ADT's Rc variant so
// eliminators can distinguish explicitly shared nodes (e.g. when
// re-emitting a subtree without rebuilding it).
func RcTree[E any](shared *Tree[E]) *Tree[E] {
	return &Tree[E]{kind: treeRc, rc: shared}
}

// ArtTree wraps an articulation that, when forced, yields a *Tree[E].
func ArtTree[E any](a Art) *Tree[E] { return &Tree[E]{kind: treeArt, art: a} }

// IsNil reports whether t is the Nil variant (after no unwrapping — Rc/Art
// wrappers are never Nil themselves even if their content is).
func (t *Tree[E]) IsNil() bool { return t.kind == treeNil }

// LevOfTree returns the node's own level, unwrapping Rc and forcing Art as
// needed: Nil has level 0, and Leaf reports 0 because a bare Leaf carries
// no level field; its element-derived level must be computed by the caller
// via LevelOfElement, the same way a freshly consed element's is during
// tree construction.
func LevOfTree[E any](eng Engine, t *Tree[E]) (Level, error) {
	switch t.kind {
	case treeNil:
		return 0, nil
	case treeLeaf:
		return 0, nil
	case treeBin, treeName:
		return t.lev, nil
	case treeRc:
		return LevOfTree(eng, t.rc)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			return 0, err
		}
		return LevOfTree(eng, sub)
	}
	return 0, ErrShapeInvariantViolation
}

// TreeElim dispatches on the top constructor of t, transparently unwrapping
// Rc and forcing Art.
func TreeElim[E, Res any](eng Engine, t *Tree[E], onNil func() Res, onLeaf func(E) Res, onBin func(Level, *Tree[E], *Tree[E]) Res, onName func(Name, Level, *Tree[E], *Tree[E]) Res) (Res, error) {
	switch t.kind {
	case treeNil:
		return onNil(), nil
	case treeLeaf:
		return onLeaf(t.leaf), nil
	case treeBin:
		return onBin(t.lev, t.left, t.right), nil
	case treeName:
		return onName(t.name, t.lev, t.left, t.right), nil
	case treeRc:
		return TreeElim(eng, t.rc, onNil, onLeaf, onBin, onName)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			var zero Res
			return zero, err
		}
		return TreeElim(eng, sub, onNil, onLeaf, onBin, onName)
	}
	var zero Res
	return zero, ErrShapeInvariantViolation
}

// TreeElimRef is the observe-without-consuming variant for read-only
// queries: the leaf callback receives a pointer rather than a copy.
func TreeElimRef[E, Res any](eng Engine, t *Tree[E], onNil func() Res, onLeaf func(*E) Res, onBin func(Level, *Tree[E], *Tree[E]) Res, onName func(Name, Level, *Tree[E], *Tree[E]) Res) (Res, error) {
	switch t.kind {
	case treeNil:
		return onNil(), nil
	case treeLeaf:
		return onLeaf(&t.leaf), nil
	case treeBin:
		return onBin(t.lev, t.left, t.right), nil
	case treeName:
		return onName(t.name, t.lev, t.left, t.right), nil
	case treeRc:
		return TreeElimRef(eng, t.rc, onNil, onLeaf, onBin, onName)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			var zero Res
			return zero, err
		}
		return TreeElimRef(eng, sub, onNil, onLeaf, onBin, onName)
	}
	var zero Res
	return zero, ErrShapeInvariantViolation
}

// TreeElimMove threads an explicit argument through the dispatch, avoiding
// closures that would otherwise have to capture it.
func TreeElimMove[E, Arg, Res any](eng Engine, t *Tree[E], arg Arg, onNil func(Arg) Res, onLeaf func(E, Arg) Res, onBin func(Level, *Tree[E], *Tree[E], Arg) Res, onName func(Name, Level, *Tree[E], *Tree[E], Arg) Res) (Res, error) {
	switch t.kind {
	case treeNil:
		return onNil(arg), nil
	case treeLeaf:
		return onLeaf(t.leaf, arg), nil
	case treeBin:
		return onBin(t.lev, t.left, t.right, arg), nil
	case treeName:
		return onName(t.name, t.lev, t.left, t.right, arg), nil
	case treeRc:
		return TreeElimMove(eng, t.rc, arg, onNil, onLeaf, onBin, onName)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			var zero Res
			return zero, err
		}
		return TreeElimMove(eng, sub, arg, onNil, onLeaf, onBin, onName)
	}
	var zero Res
	return zero, ErrShapeInvariantViolation
}

// TreeFullMove is TreeElimMove plus an Art branch exposed directly to the
// caller, used when an algorithm wants to re-emit the articulation rather
// than pay for Force.
func TreeFullMove[E, Arg, Res any](eng Engine, t *Tree[E], arg Arg, onNil func(Arg) Res, onLeaf func(E, Arg) Res, onBin func(Level, *Tree[E], *Tree[E], Arg) Res, onName func(Name, Level, *Tree[E], *Tree[E], Arg) Res, onArt func(Art, Arg) Res) Res {
	switch t.kind {
	case treeNil:
		return onNil(arg)
	case treeLeaf:
		return onLeaf(t.leaf, arg)
	case treeBin:
		return onBin(t.lev, t.left, t.right, arg)
	case treeName:
		return onName(t.name, t.lev, t.left, t.right, arg)
	case treeRc:
		return TreeFullMove(eng, t.rc, arg, onNil, onLeaf, onBin, onName, onArt)
	case treeArt:
		return onArt(t.art, arg)
	}
	var zero Res
	return zero
}

// FoldUp is the bottom-up catamorphism over Tree. name_c is the only place an
// algorithm may invoke the engine's Thunk to memoize the combine, by
// wrapping the recursive call under thunk(name) (see TreeReduceMonoid for
// the canonical use).
func FoldUp[E, R any](eng Engine, t *Tree[E], nilC func() R, leafC func(E) R, binC func(Level, R, R) R, nameC func(Name, Level, R, R) (R, error)) (R, error) {
	switch t.kind {
	case treeNil:
		return nilC(), nil
	case treeLeaf:
		return leafC(t.leaf), nil
	case treeBin:
		l, err := FoldUp(eng, t.left, nilC, leafC, binC, nameC)
		if err != nil {
			var zero R
			return zero, err
		}
		r, err := FoldUp(eng, t.right, nilC, leafC, binC, nameC)
		if err != nil {
			var zero R
			return zero, err
		}
		return binC(t.lev, l, r), nil
	case treeName:
		l, err := FoldUp(eng, t.left, nilC, leafC, binC, nameC)
		if err != nil {
			var zero R
			return zero, err
		}
		r, err := FoldUp(eng, t.right, nilC, leafC, binC, nameC)
		if err != nil {
			var zero R
			return zero, err
		}
		return nameC(t.name, t.lev, l, r)
	case treeRc:
		return FoldUp(eng, t.rc, nilC, leafC, binC, nameC)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			var zero R
			return zero, err
		}
		return FoldUp(eng, sub, nilC, leafC, binC, nameC)
	}
	var zero R
	return zero, ErrShapeInvariantViolation
}

// FoldLR is the in-order accumulating fold (left-to-right): leaves are
// visited in tree order, threading acc left-to-right.
func FoldLR[E, R any](eng Engine, t *Tree[E], acc R, leafC func(E, R) R, binC func(Level, R) R, nameC func(Name, Level, R) (R, error)) (R, error) {
	switch t.kind {
	case treeNil:
		return acc, nil
	case treeLeaf:
		return leafC(t.leaf, acc), nil
	case treeBin:
		acc, err := FoldLR(eng, t.left, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		acc, err = FoldLR(eng, t.right, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		return binC(t.lev, acc), nil
	case treeName:
		acc, err := FoldLR(eng, t.left, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		acc, err = FoldLR(eng, t.right, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		return nameC(t.name, t.lev, acc)
	case treeRc:
		return FoldLR(eng, t.rc, acc, leafC, binC, nameC)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			return acc, err
		}
		return FoldLR(eng, sub, acc, leafC, binC, nameC)
	}
	return acc, ErrShapeInvariantViolation
}

// FoldRL is the reverse-in-order accumulating fold (right-to-left).
func FoldRL[E, R any](eng Engine, t *Tree[E], acc R, leafC func(E, R) R, binC func(Level, R) R, nameC func(Name, Level, R) (R, error)) (R, error) {
	switch t.kind {
	case treeNil:
		return acc, nil
	case treeLeaf:
		return leafC(t.leaf, acc), nil
	case treeBin:
		acc, err := FoldRL(eng, t.right, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		acc, err = FoldRL(eng, t.left, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		return binC(t.lev, acc), nil
	case treeName:
		acc, err := FoldRL(eng, t.right, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		acc, err = FoldRL(eng, t.left, acc, leafC, binC, nameC)
		if err != nil {
			return acc, err
		}
		return nameC(t.name, t.lev, acc)
	case treeRc:
		return FoldRL(eng, t.rc, acc, leafC, binC, nameC)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			return acc, err
		}
		return FoldRL(eng, sub, acc, leafC, binC, nameC)
	}
	return acc, ErrShapeInvariantViolation
}

package nominal

type listKind uint8

const (
	listNil listKind = iota
	listCons
	listName
	listArt
	listRc
	listTree
)

// List is the nominal list ADT: Nil, Cons(hd,tl), Name(n,tl), Art(a),
// Rc(shared), Tree(t,dir,tl). Tree embeds an unflattened subtree
// that NextLeaf streams lazily, one leaf at a time, in the given direction.
type List[E any] struct {
	kind listKind
	head E
	tail *List[E]
	name Name
	art  Art
	rc   *List[E]
	tree *Tree[E]
	dir  Dir
}

// NilList constructs the empty list.
func NilList[E any]() *List[E] { return &List[E]{kind: listNil} }

// Cons constructs a list with head hd followed by tl.
func Cons[E any](hd E, tl *List[E]) *List[E] {
	return &List[E]{kind: listCons, head: hd, tail: tl}
}

// NameList marks a segment boundary in the sequence at n.
func NameList[E any](n Name, tl *List[E]) *List[E] {
	return &List[E]{kind: listName, name: n, tail: tl}
}

// ArtList wraps an articulation that, when forced, yields a *List[E].
func ArtList[E any](a Art) *List[E] { return &List[E]{kind: listArt, art: a} }

// RcList wraps a list for shared ownership within one build.
func RcList[E any](shared *List[E]) *List[E] { return &List[E]{kind: listRc, rc: shared} }

// TreeList embeds an unflattened subtree that, when eliminated, is streamed
// leaf-by-leaf in dir, prepending leaves to tl.
func TreeList[E any](t *Tree[E], dir Dir, tl *List[E]) *List[E] {
	return &List[E]{kind: listTree, tree: t, dir: dir, tail: tl}
}

// IsEmpty reports whether list, after full elimination, is Nil.
func IsEmpty[E any](eng Engine, list *List[E]) (bool, error) {
	return ListElim(eng, list,
		func() bool { return true },
		func(E, *List[E]) bool { return false },
		func(Name, *List[E]) bool { return false },
	)
}

// ListElim dispatches on the top constructor of list, transparently
// unwrapping Rc, forcing Art, and streaming Tree via NextLeaf.
func ListElim[E, Res any](eng Engine, list *List[E], onNil func() Res, onCons func(E, *List[E]) Res, onName func(Name, *List[E]) Res) (Res, error) {
	switch list.kind {
	case listNil:
		return onNil(), nil
	case listCons:
		return onCons(list.head, list.tail), nil
	case listName:
		return onName(list.name, list.tail), nil
	case listRc:
		return ListElim(eng, list.rc, onNil, onCons, onName)
	case listArt:
		sub, err := ForceAs[*List[E]](eng, list.art)
		if err != nil {
			var zero Res
			return zero, err
		}
		return ListElim(eng, sub, onNil, onCons, onName)
	case listTree:
		hd, ok, rest, err := NextLeaf(eng, list.tree, list.dir, list.tail)
		if err != nil {
			var zero Res
			return zero, err
		}
		if !ok {
			return ListElim(eng, rest, onNil, onCons, onName)
		}
		return onCons(hd, rest), nil
	}
	var zero Res
	return zero, ErrShapeInvariantViolation
}

// ListElimMove threads an explicit argument through the dispatch, avoiding
// closures that capture linear state.
func ListElimMove[E, Arg, Res any](eng Engine, list *List[E], arg Arg, onNil func(Arg) Res, onCons func(E, *List[E], Arg) Res, onName func(Name, *List[E], Arg) Res) (Res, error) {
	switch list.kind {
	case listNil:
		return onNil(arg), nil
	case listCons:
		return onCons(list.head, list.tail, arg), nil
	case listName:
		return onName(list.name, list.tail, arg), nil
	case listRc:
		return ListElimMove(eng, list.rc, arg, onNil, onCons, onName)
	case listArt:
		sub, err := ForceAs[*List[E]](eng, list.art)
		if err != nil {
			var zero Res
			return zero, err
		}
		return ListElimMove(eng, sub, arg, onNil, onCons, onName)
	case listTree:
		hd, ok, rest, err := NextLeaf(eng, list.tree, list.dir, list.tail)
		if err != nil {
			var zero Res
			return zero, err
		}
		if !ok {
			return ListElimMove(eng, rest, arg, onNil, onCons, onName)
		}
		return onCons(hd, rest, arg), nil
	}
	var zero Res
	return zero, ErrShapeInvariantViolation
}

// ListFullElimMove is ListElimMove plus a Tree branch and an Art branch
// exposed directly to the caller: used when an algorithm wants to re-emit
// the articulation or the embedded subtree rather than pay for
// Force/NextLeaf.
func ListFullElimMove[E, Arg, Res any](eng Engine, list *List[E], arg Arg,
	onTree func(*Tree[E], Dir, *List[E], Arg) Res,
	onNil func(Arg) Res,
	onCons func(E, *List[E], Arg) Res,
	onName func(Name, *List[E], Arg) Res,
	onArt func(Art, Arg) Res,
) Res {
	switch list.kind {
	case listNil:
		return onNil(arg)
	case listCons:
		return onCons(list.head, list.tail, arg)
	case listName:
		return onName(list.name, list.tail, arg)
	case listRc:
		return ListFullElimMove(eng, list.rc, arg, onTree, onNil, onCons, onName, onArt)
	case listArt:
		return onArt(list.art, arg)
	case listTree:
		return onTree(list.tree, list.dir, list.tail, arg)
	}
	var zero Res
	return zero
}

// NextLeaf streams one leaf out of tree in the given direction, returning
// (leaf, true, rest) or (zero, false, rest) when tree is empty, where rest
// is a list whose head is either another Tree (the remaining subtree
// threaded along) or the original tail. It must run inside Structural —
// the traversal order is an implementation detail that must not taint the
// incremental trace.
//
// Of the alternative ways to embed a Name crossing during this traversal,
// this implements only one: crossing a Name node emits a bare Name wrapper
// in rest, with no extra cell or Rc wrapping.
func NextLeaf[E any](eng Engine, tree *Tree[E], dir Dir, rest *List[E]) (E, bool, *List[E], error) {
	type result struct {
		leaf E
		ok   bool
		rest *List[E]
	}
	v, err := eng.Structural(func() (any, error) {
		leaf, ok, rest, err := nextLeafRec(eng, tree, dir, rest)
		return result{leaf, ok, rest}, err
	})
	if err != nil {
		var zero E
		return zero, false, nil, err
	}
	r := v.(result)
	return r.leaf, r.ok, r.rest, nil
}

func nextLeafRec[E any](eng Engine, tree *Tree[E], dir Dir, rest *List[E]) (E, bool, *List[E], error) {
	switch tree.kind {
	case treeNil:
		var zero E
		return zero, false, rest, nil
	case treeRc:
		return nextLeafRec(eng, tree.rc, dir, rest)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, tree.art)
		if err != nil {
			var zero E
			return zero, false, nil, err
		}
		return nextLeafRec(eng, sub, dir, rest)
	case treeLeaf:
		return tree.leaf, true, rest, nil
	case treeBin:
		if dir == DirLeft {
			return nextLeafRec(eng, tree.left, DirLeft, TreeList(tree.right, DirLeft, rest))
		}
		return nextLeafRec(eng, tree.right, DirRight, TreeList(tree.left, DirRight, rest))
	case treeName:
		if dir == DirLeft {
			return nextLeafRec(eng, tree.left, DirLeft, NameList(tree.name, TreeList(tree.right, DirLeft, rest)))
		}
		return nextLeafRec(eng, tree.right, DirRight, NameList(tree.name, TreeList(tree.left, DirRight, rest)))
	}
	var zero E
	return zero, false, nil, ErrShapeInvariantViolation
}

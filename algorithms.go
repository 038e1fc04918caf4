package nominal

import "errors"

// Monoid bundles the identity and associative combinator tree_reduce_monoid
// and list_reduce_monoid require. Binop must be associative and Zero must
// be its identity; TreeReduceMonoid's name_c memoization is only sound
// under that assumption.
type Monoid[E any] struct {
	Zero  E
	Binop func(E, E) E
}

// progPointTreeReduce is the call site TreeReduceMonoid's name_c memoizes
// under: Binop's purity makes a memo hit observationally equivalent to
// recomputing it.
const progPointTreeReduce ProgPoint = "nominal.tree_reduce_monoid"

// TreeReduceMonoid folds tree down to a single value via m. name_c is
// the only callback that touches the engine: it wraps the combine in a
// Thunk keyed by the tree's own name so that an unchanged named subtree's
// contribution is reused verbatim on re-reduction.
func TreeReduceMonoid[E any](eng Engine, t *Tree[E], m Monoid[E]) (E, error) {
	return FoldUp(eng, t,
		func() E { return m.Zero },
		func(x E) E { return x },
		func(_ Level, l, r E) E { return m.Binop(l, r) },
		func(n Name, _ Level, l, r E) (E, error) {
			a, err := eng.Thunk(progPointTreeReduce, n, func(any) (any, error) {
				return m.Binop(l, r), nil
			}, nil)
			if err != nil {
				var zero E
				return zero, err
			}
			return ForceAs[E](eng, a)
		},
	)
}

// ListReduceMonoid reduces list via m by first building a left-spine tree
// and reducing that.
func ListReduceMonoid[E any](eng Engine, lh LevelHasher[E], list *List[E], m Monoid[E]) (E, error) {
	tree, err := TreeOfList(eng, lh, DirLeft, list)
	if err != nil {
		var zero E
		return zero, err
	}
	return TreeReduceMonoid(eng, tree, m)
}

// TreeFilter rebuilds tree keeping only leaves for which pred holds,
// re-emitting Nil for filtered-out leaves and preserving all Bin/Name
// scaffolding so a later fold over the result can reuse as much of its
// structure as possible.
func TreeFilter[E any](eng Engine, t *Tree[E], pred func(E) bool) (*Tree[E], error) {
	return FoldUp(eng, t,
		func() *Tree[E] { return TreeNil[E]() },
		func(x E) *Tree[E] {
			if pred(x) {
				return Leaf(x)
			}
			return TreeNil[E]()
		},
		func(lev Level, l, r *Tree[E]) *Tree[E] { return Bin(lev, l, r) },
		func(n Name, lev Level, l, r *Tree[E]) (*Tree[E], error) {
			return NameNode(n, lev, l, r), nil
		},
	)
}

// ListOfTree flattens tree into a list via fold_rl with cons as the leaf
// combiner, re-emitting Name markers.
func ListOfTree[E any](eng Engine, t *Tree[E]) (*List[E], error) {
	return FoldRL(eng, t, NilList[E](),
		func(x E, acc *List[E]) *List[E] { return Cons(x, acc) },
		func(_ Level, acc *List[E]) *List[E] { return acc },
		func(n Name, _ Level, acc *List[E]) (*List[E], error) { return NameList(n, acc), nil },
	)
}

// RevListOfTree flattens tree in the opposite order from ListOfTree via
// fold_lr, re-emitting Name markers.
func RevListOfTree[E any](eng Engine, t *Tree[E]) (*List[E], error) {
	return FoldLR(eng, t, NilList[E](),
		func(x E, acc *List[E]) *List[E] { return Cons(x, acc) },
		func(_ Level, acc *List[E]) *List[E] { return acc },
		func(n Name, _ Level, acc *List[E]) (*List[E], error) { return NameList(n, acc), nil },
	)
}

// progPointListMerge is ListMerge's memoization call site.
const progPointListMerge ProgPoint = "nominal.list_merge"

// namedHead pairs an optional name with the list it fronts.
type namedHead[E any] struct {
	name    Name
	hasName bool
	list    *List[E]
}

func unnamed[E any](list *List[E]) namedHead[E] { return namedHead[E]{list: list} }

// UnnamedHead builds a ListMerge head argument with no fronting name: the
// common case for an ordinary sorted run.
func UnnamedHead[E any](list *List[E]) namedHead[E] { return unnamed(list) }

// NamedHead builds a ListMerge head argument fronted by n, so that a merge
// step won by this side is memoized under a fork of n.
func NamedHead[E any](n Name, list *List[E]) namedHead[E] {
	return namedHead[E]{name: n, hasName: true, list: list}
}

// ListMerge merges two sorted lists under the total order lessEq(a,b) ("a
// belongs before or alongside b"), each optionally fronted by a name.
// When the winning side carries a name, the recursive tail is
// memoized under a fork of that name and wrapped in an articulation — an
// edit that only changes one named run re-executes only the merges on the
// path from that name to the root.
//
// It works directly on list's constructors rather than through ListElim,
// since its recursive calls must propagate errors from Thunk and ListElim's
// callback shape does not allow that.
func ListMerge[E any](eng Engine, lessEq func(a, b E) bool, h1, h2 namedHead[E]) (*List[E], error) {
	switch h1.list.kind {
	case listRc:
		return ListMerge(eng, lessEq, namedHead[E]{name: h1.name, hasName: h1.hasName, list: h1.list.rc}, h2)
	case listArt:
		sub, err := ForceAs[*List[E]](eng, h1.list.art)
		if err != nil {
			return nil, err
		}
		return ListMerge(eng, lessEq, namedHead[E]{name: h1.name, hasName: h1.hasName, list: sub}, h2)
	case listTree:
		hd, ok, rest, err := NextLeaf(eng, h1.list.tree, h1.list.dir, h1.list.tail)
		if err != nil {
			return nil, err
		}
		if !ok {
			return ListMerge(eng, lessEq, namedHead[E]{name: h1.name, hasName: h1.hasName, list: rest}, h2)
		}
		return ListMerge(eng, lessEq, namedHead[E]{name: h1.name, hasName: h1.hasName, list: Cons(hd, rest)}, h2)
	case listNil:
		return h2.list, nil
	case listName:
		return ListMerge(eng, lessEq, namedHead[E]{name: h1.list.name, hasName: true, list: h1.list.tail}, h2)
	}
	// listCons: dispatch on h2's constructor next.
	hd1, tl1 := h1.list.head, h1.list.tail

	switch h2.list.kind {
	case listRc:
		return ListMerge(eng, lessEq, h1, namedHead[E]{name: h2.name, hasName: h2.hasName, list: h2.list.rc})
	case listArt:
		sub, err := ForceAs[*List[E]](eng, h2.list.art)
		if err != nil {
			return nil, err
		}
		return ListMerge(eng, lessEq, h1, namedHead[E]{name: h2.name, hasName: h2.hasName, list: sub})
	case listTree:
		hd, ok, rest, err := NextLeaf(eng, h2.list.tree, h2.list.dir, h2.list.tail)
		if err != nil {
			return nil, err
		}
		if !ok {
			return ListMerge(eng, lessEq, h1, namedHead[E]{name: h2.name, hasName: h2.hasName, list: rest})
		}
		return ListMerge(eng, lessEq, h1, namedHead[E]{name: h2.name, hasName: h2.hasName, list: Cons(hd, rest)})
	case listNil:
		return Cons(hd1, tl1), nil
	case listName:
		return ListMerge(eng, lessEq, h1, namedHead[E]{name: h2.list.name, hasName: true, list: h2.list.tail})
	}

	// Both sides are Cons: the real comparison.
	hd2, tl2 := h2.list.head, h2.list.tail
	if lessEq(hd1, hd2) {
		l2 := Cons(hd2, tl2)
		if !h1.hasName {
			rest, err := ListMerge(eng, lessEq, unnamed(tl1), h2)
			if err != nil {
				return nil, err
			}
			return Cons(hd1, rest), nil
		}
		n1a, n1b := eng.NameFork(h1.name)
		a, err := eng.Thunk(progPointListMerge, n1a, func(any) (any, error) {
			return ListMerge(eng, lessEq, unnamed(tl1), namedHead[E]{name: h2.name, hasName: h2.hasName, list: l2})
		}, nil)
		if err != nil {
			return nil, err
		}
		return NameList(n1b, Cons(hd1, ArtList[E](a))), nil
	}

	l1 := Cons(hd1, tl1)
	if !h2.hasName {
		rest, err := ListMerge(eng, lessEq, namedHead[E]{name: h1.name, hasName: h1.hasName, list: l1}, unnamed(tl2))
		if err != nil {
			return nil, err
		}
		return Cons(hd2, rest), nil
	}
	n2a, n2b := eng.NameFork(h2.name)
	a, err := eng.Thunk(progPointListMerge, n2a, func(any) (any, error) {
		return ListMerge(eng, lessEq, namedHead[E]{name: h1.name, hasName: h1.hasName, list: l1}, unnamed(tl2))
	}, nil)
	if err != nil {
		return nil, err
	}
	return NameList(n2b, Cons(hd2, ArtList[E](a))), nil
}

// mergeCombinePanic carries an error out of a FoldUp bin_c callback, whose
// signature deliberately cannot return one: only name_c is meant to
// touch the engine. ListMerge's own recursion does touch it (forcing Art
// nodes nested in the input), so a failure there is recovered back into a
// normal error at the ListMergeSort/ListMergeSortViaSingletons boundary
// rather than left to escape as a bare panic.
type mergeCombinePanic struct{ err error }

func recoverMergeCombine(errp *error) {
	if r := recover(); r != nil {
		if mp, ok := r.(mergeCombinePanic); ok {
			*errp = mp.err
			return
		}
		panic(r)
	}
}

// ListMergeSort sorts list under lessEq by building a left-spine tree and
// folding it with ListMerge, forking the name at each Name node to key the
// left and right halves' merges independently.
func ListMergeSort[E any](eng Engine, lh LevelHasher[E], lessEq func(a, b E) bool, list *List[E]) (result *List[E], err error) {
	defer recoverMergeCombine(&err)
	tree, err := TreeOfList(eng, lh, DirLeft, list)
	if err != nil {
		return nil, err
	}
	return FoldUp(eng, tree,
		func() *List[E] { return NilList[E]() },
		func(x E) *List[E] { return Cons(x, NilList[E]()) },
		func(_ Level, left, right *List[E]) *List[E] {
			merged, err := ListMerge(eng, lessEq, unnamed(left), unnamed(right))
			if err != nil {
				panic(mergeCombinePanic{err})
			}
			return merged
		},
		func(n Name, _ Level, left, right *List[E]) (*List[E], error) {
			n1, n2 := eng.NameFork(n)
			return ListMerge(eng, lessEq,
				namedHead[E]{name: n1, hasName: true, list: left},
				namedHead[E]{name: n2, hasName: true, list: right})
		},
	)
}

// TreeAppend concatenates tree1 and tree2 under a single fresh Bin node at
// MaxLevel. This deliberately violates the heap-order invariant whenever
// either side is non-trivial: a balanced append would need to re-descend
// and re-level one side along its spine, which this package does not
// implement. Safe to use only when one side is Nil, or when the caller
// accepts that the appended tree's shape will not match a from-scratch
// TreeOfList build over the same elements.
func TreeAppend[E any](t1, t2 *Tree[E]) *Tree[E] {
	return Bin(MaxLevel, t1, t2)
}

// Contract run-length coalesces adjacent elements of list under combine
// wherever eq holds between them, left to right. Used by Reduce's
// contraction step below; also useful standalone wherever adjacency-based
// deduplication is wanted.
func Contract[E any](eng Engine, eq func(a, b E) bool, combine func(a, b E) E, list *List[E]) (*List[E], error) {
	switch list.kind {
	case listNil:
		return NilList[E](), nil
	case listRc:
		return Contract(eng, eq, combine, list.rc)
	case listArt:
		sub, err := ForceAs[*List[E]](eng, list.art)
		if err != nil {
			return nil, err
		}
		return Contract(eng, eq, combine, sub)
	case listTree:
		hd, ok, rest, err := NextLeaf(eng, list.tree, list.dir, list.tail)
		if err != nil {
			return nil, err
		}
		if !ok {
			return Contract(eng, eq, combine, rest)
		}
		return Contract(eng, eq, combine, Cons(hd, rest))
	case listName:
		rest, err := Contract(eng, eq, combine, list.tail)
		if err != nil {
			return nil, err
		}
		return NameList(list.name, rest), nil
	}

	// listCons: look at the next element to decide whether to coalesce.
	hd1, tl := list.head, list.tail
	switch tl.kind {
	case listNil:
		return Cons(hd1, NilList[E]()), nil
	case listRc:
		return Contract(eng, eq, combine, Cons(hd1, tl.rc))
	case listArt:
		sub, err := ForceAs[*List[E]](eng, tl.art)
		if err != nil {
			return nil, err
		}
		return Contract(eng, eq, combine, Cons(hd1, sub))
	case listTree:
		hd2, ok, rest, err := NextLeaf(eng, tl.tree, tl.dir, tl.tail)
		if err != nil {
			return nil, err
		}
		if !ok {
			return Contract(eng, eq, combine, Cons(hd1, rest))
		}
		return Contract(eng, eq, combine, Cons(hd1, Cons(hd2, rest)))
	case listName:
		rest, err := Contract(eng, eq, combine, Cons(hd1, tl.tail))
		if err != nil {
			return nil, err
		}
		return NameList(tl.name, rest), nil
	}

	// Both hd1 and tl's head are plain elements: the real comparison.
	hd2, rest := tl.head, tl.tail
	if eq(hd1, hd2) {
		return Contract(eng, eq, combine, Cons(combine(hd1, hd2), rest))
	}
	tail, err := Contract(eng, eq, combine, Cons(hd2, rest))
	if err != nil {
		return nil, err
	}
	return Cons(hd1, tail), nil
}

// Reduce folds list down to a single element without a Zero: it repeatedly
// combines the first two remaining elements, re-Contracts the result under
// eq, and recurses, until one element is left. Returns ErrEmptyReduce if
// list holds no elements at all.
//
// A Name marker or an Art indirection encountered as the *second* element
// of a pending pair is followed but the first element is dropped without
// being combined. Rc and Tree at that position re-Cons the pending element
// and continue, the same unwrapping treatment this package's other
// eliminators give them.
func Reduce[E any](eng Engine, eq func(a, b E) bool, combine func(a, b E) E, list *List[E]) (E, error) {
	switch list.kind {
	case listNil:
		var zero E
		return zero, ErrEmptyReduce
	case listRc:
		return Reduce(eng, eq, combine, list.rc)
	case listArt:
		sub, err := ForceAs[*List[E]](eng, list.art)
		if err != nil {
			var zero E
			return zero, err
		}
		return Reduce(eng, eq, combine, sub)
	case listTree:
		hd, ok, rest, err := NextLeaf(eng, list.tree, list.dir, list.tail)
		if err != nil {
			var zero E
			return zero, err
		}
		if !ok {
			return Reduce(eng, eq, combine, rest)
		}
		return Reduce(eng, eq, combine, Cons(hd, rest))
	case listName:
		return Reduce(eng, eq, combine, list.tail)
	}

	// listCons: peel hd and look at what follows it.
	hd, tl := list.head, list.tail
	switch tl.kind {
	case listNil:
		return hd, nil
	case listRc:
		return Reduce(eng, eq, combine, Cons(hd, tl.rc))
	case listArt:
		// hd is dropped here; the articulation's content continues the
		// reduction alone. See the doc comment.
		sub, err := ForceAs[*List[E]](eng, tl.art)
		if err != nil {
			var zero E
			return zero, err
		}
		return Reduce(eng, eq, combine, sub)
	case listTree:
		hd2, ok, rest, err := NextLeaf(eng, tl.tree, tl.dir, tl.tail)
		if err != nil {
			var zero E
			return zero, err
		}
		if !ok {
			return Reduce(eng, eq, combine, Cons(hd, rest))
		}
		return Reduce(eng, eq, combine, Cons(hd, Cons(hd2, rest)))
	case listName:
		return Reduce(eng, eq, combine, tl.tail)
	}

	// Both hd and tl's head are plain elements: combine the pair, contract
	// the result, and recurse.
	hd2, rest := tl.head, tl.tail
	contracted, err := Contract(eng, eq, combine, Cons(combine(hd, hd2), rest))
	if err != nil {
		var zero E
		return zero, err
	}
	return Reduce(eng, eq, combine, contracted)
}

// Singletons wraps each element of list into its own one-element list, the
// first one after a Name boundary carrying that name.
// ListMergeSortViaSingletons folds the result with ListMerge to sort list
// without ever building a Tree.
func Singletons[E any](eng Engine, h namedHead[E]) (*List[*List[E]], error) {
	switch h.list.kind {
	case listNil:
		return NilList[*List[E]](), nil
	case listRc:
		return Singletons(eng, namedHead[E]{name: h.name, hasName: h.hasName, list: h.list.rc})
	case listArt:
		sub, err := ForceAs[*List[E]](eng, h.list.art)
		if err != nil {
			return nil, err
		}
		return Singletons(eng, namedHead[E]{name: h.name, hasName: h.hasName, list: sub})
	case listTree:
		hd, ok, rest, err := NextLeaf(eng, h.list.tree, h.list.dir, h.list.tail)
		if err != nil {
			return nil, err
		}
		if !ok {
			return Singletons(eng, namedHead[E]{name: h.name, hasName: h.hasName, list: rest})
		}
		return Singletons(eng, namedHead[E]{name: h.name, hasName: h.hasName, list: Cons(hd, rest)})
	case listName:
		return Singletons(eng, namedHead[E]{name: h.list.name, hasName: true, list: h.list.tail})
	}

	hd, tl := h.list.head, h.list.tail
	var one *List[E]
	if h.hasName {
		one = NameList(h.name, Cons(hd, NilList[E]()))
	} else {
		one = Cons(hd, NilList[E]())
	}
	rest, err := Singletons(eng, unnamed(tl))
	if err != nil {
		return nil, err
	}
	return Cons(one, rest), nil
}

// runRankSeed seeds the hash comparison ListMergeSortViaSingletons uses to
// decide which of two pending runs to merge first. Distinct from HashSeed
// (reserved for level derivation) since this is a memo-unrelated ranking,
// not a level.
const runRankSeed uint64 = 2

// ListMergeSortViaSingletons sorts list by Reduce-ing its Singletons under
// ListMerge: Reduce repeatedly merges the front two runs, ranked by hash,
// and re-Contracts the result (see Reduce's doc comment) rather than ever
// building a balanced tree. It is therefore a genuinely different
// algorithm from ListMergeSort, not a second front end onto the same
// tree-fold mechanism, despite sorting the same input to the same output.
func ListMergeSortViaSingletons[E any](eng Engine, hsh SeededHash, lessEq func(a, b E) bool, list *List[E]) (result *List[E], err error) {
	defer recoverMergeCombine(&err)
	runs, err := Singletons(eng, unnamed(list))
	if err != nil {
		return nil, err
	}
	rank := func(l *List[E]) uint64 {
		s, _ := GetString(eng, l)
		return hsh(runRankSeed, []byte(s))
	}
	eq := func(a, b *List[E]) bool { return rank(a) < rank(b) }
	combine := func(a, b *List[E]) *List[E] {
		merged, err := ListMerge(eng, lessEq, unnamed(a), unnamed(b))
		if err != nil {
			panic(mergeCombinePanic{err})
		}
		return merged
	}
	sorted, err := Reduce(eng, eq, combine, runs)
	if err != nil {
		if errors.Is(err, ErrEmptyReduce) {
			return NilList[E](), nil
		}
		return nil, err
	}
	return sorted, nil
}

package nominal

// LevelHasher bundles the seeded hasher and the byte-encoder needed to
// derive levels for a concrete element type. Callers typically
// construct one LevelHasher per element type and reuse it across
// TreeOfList/ListMergeSort/etc. calls.
type LevelHasher[E any] struct {
	Hash   SeededHash
	Encode Encode[E]
}

func (lh LevelHasher[E]) levelOfElement(x E) Level { return LevelOfElement(lh.Hash, lh.Encode, x) }
func (lh LevelHasher[E]) levelOfName(n Name) Level  { return LevelOfName(lh.Hash, n) }

// progPointTreeOfList is the single program point tree_of_list_rec's
// recursive calls are memoized under (two nested cells per name).
const progPointTreeOfList ProgPoint = "nominal.tree_of_list_rec"

// TreeOfList builds a hash-determined tree from list. dir selects
// whether the tree is left- or right-spined; Left reproduces the input
// order in-order, Right mirrors it. The shape of the result depends only
// on the multiset and relative order of element/name levels in list, not
// on any other property of the input — this is what makes small edits
// change only a logarithmic slice of the tree.
func TreeOfList[E any](eng Engine, lh LevelHasher[E], dir Dir, list *List[E]) (*Tree[E], error) {
	tree, rest, err := treeOfListRec(eng, lh, dir, list, TreeNil[E](), 0, MaxLevel)
	if err != nil {
		return nil, err
	}
	empty, err := IsEmpty(eng, rest)
	if err != nil {
		return nil, err
	}
	if !empty {
		return nil, ErrShapeInvariantViolation
	}
	return tree, nil
}

// headForm is the result of resolving list's top constructor, transparently
// unwrapping Rc/Art and streaming Tree via NextLeaf, without yet deciding
// what to do with it (internal to tree_of_list_rec's trampoline).
type headForm[E any] struct {
	isNil  bool
	hd     E
	haveHd bool
	nm     Name
	haveNm bool
	rest   *List[E]
}

func resolveHead[E any](eng Engine, list *List[E]) (headForm[E], error) {
	cur := list
	for {
		switch cur.kind {
		case listNil:
			return headForm[E]{isNil: true}, nil
		case listCons:
			return headForm[E]{hd: cur.head, haveHd: true, rest: cur.tail}, nil
		case listName:
			return headForm[E]{nm: cur.name, haveNm: true, rest: cur.tail}, nil
		case listRc:
			cur = cur.rc
		case listArt:
			sub, err := ForceAs[*List[E]](eng, cur.art)
			if err != nil {
				return headForm[E]{}, err
			}
			cur = sub
		case listTree:
			hd, ok, rest, err := NextLeaf(eng, cur.tree, cur.dir, cur.tail)
			if err != nil {
				return headForm[E]{}, err
			}
			if !ok {
				cur = rest
				continue
			}
			return headForm[E]{hd: hd, haveHd: true, rest: rest}, nil
		default:
			return headForm[E]{}, ErrShapeInvariantViolation
		}
	}
}

// consFrame records what to do once the recursive build of a Cons
// element's right-hand child completes: combine it with leftTree
// under a Bin at lev, then resume consuming the list at parentLev.
type consFrame[E any] struct {
	leftTree  *Tree[E]
	lev       Level
	parentLev Level
}

func combineBin[E any](dir Dir, accTree, builtTree *Tree[E], lev Level) *Tree[E] {
	if dir == DirLeft {
		return Bin(lev, accTree, builtTree)
	}
	return Bin(lev, builtTree, accTree)
}

// treeOfListRec implements tree_of_list_rec. The Cons-element
// unfolding — the part of the recursion whose depth is driven by the raw
// length of an un-named run of elements, and so can reach O(n) in the
// adversarial case — runs on an explicit
// heap-allocated stack (consFrame) instead of the Go call stack. Name
// boundaries recurse natively: that recursion's depth grows with the
// number of Name markers the caller places, not with the number of
// elements.
func treeOfListRec[E any](eng Engine, lh LevelHasher[E], dir Dir, list *List[E], tree *Tree[E], treeLev, parentLev Level) (*Tree[E], *List[E], error) {
	var stack []consFrame[E]
	curList, curTree, curLev, curParent := list, tree, treeLev, parentLev

	// resume pops frames, combining each with (doneTree, doneRest) until
	// either the stack empties (return the final pair) or a frame leaves
	// new work for the outer loop to process.
	resume := func(doneTree *Tree[E], doneRest *List[E]) (final bool, rt *Tree[E], rl *List[E]) {
		if len(stack) == 0 {
			return true, doneTree, doneRest
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		curTree = combineBin(dir, f.leftTree, doneTree, f.lev)
		curLev = f.lev
		curParent = f.parentLev
		curList = doneRest
		return false, nil, nil
	}

	for {
		hf, err := resolveHead(eng, curList)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case hf.isNil:
			if final, rt, rl := resume(curTree, NilList[E]()); final {
				return rt, rl, nil
			}
			continue

		case hf.haveHd:
			levHd := lh.levelOfElement(hf.hd) + 1
			if curLev <= levHd && levHd <= curParent {
				stack = append(stack, consFrame[E]{leftTree: curTree, lev: levHd, parentLev: curParent})
				curList = hf.rest
				curTree = Leaf(hf.hd)
				curLev = 0
				curParent = levHd
				continue
			}
			if final, rt, rl := resume(curTree, Cons(hf.hd, hf.rest)); final {
				return rt, rl, nil
			}
			continue

		default: // hf.haveNm
			levNm := lh.levelOfName(hf.nm) + 1
			if curLev <= levNm && levNm <= curParent {
				builtTree, builtRest, err := buildNameSubtree(eng, lh, dir, hf.nm, hf.rest, levNm, curParent, curTree)
				if err != nil {
					return nil, nil, err
				}
				if final, rt, rl := resume(builtTree, builtRest); final {
					return rt, rl, nil
				}
				continue
			}
			if final, rt, rl := resume(curTree, NameList(hf.nm, hf.rest)); final {
				return rt, rl, nil
			}
			continue
		}
	}
}

// rtPair is the (tree, rest) pair tree_of_list_rec's memoized calls
// produce; it is the payload of the Art a Thunk call returns.
type rtPair[E any] struct {
	tree *Tree[E]
	rest *List[E]
}

// memoTreeOfListRec wraps a recursive treeOfListRec call in eng.Thunk,
// keyed by n, then forces it immediately: calls are memoized transparently,
// so the caller always sees a plain (tree, rest) pair regardless of whether
// the engine served it from cache.
func memoTreeOfListRec[E any](eng Engine, lh LevelHasher[E], n Name, dir Dir, list *List[E], tree *Tree[E], treeLev, parentLev Level) (*Tree[E], *List[E], error) {
	a, err := eng.Thunk(progPointTreeOfList, n, func(any) (any, error) {
		t, r, err := treeOfListRec(eng, lh, dir, list, tree, treeLev, parentLev)
		if err != nil {
			return nil, err
		}
		return rtPair[E]{t, r}, nil
	}, nil)
	if err != nil {
		return nil, nil, err
	}
	pair, err := ForceAs[rtPair[E]](eng, a)
	if err != nil {
		return nil, nil, err
	}
	return pair.tree, pair.rest, nil
}

// buildNameSubtree implements the Name branch of tree_of_list_rec: fork n
// into four sub-names; build the inner subtree memoized under n1,
// combine it with accTree under a Name node, cell-wrap it (read-only) under
// n3; continue consuming the rest memoized under n2 with that cell-wrapped
// tree as accumulator; cell-wrap the final result (read-only) under n4.
// The two nested cells bound the change-propagation radius of an edit near
// this name to O(log n) articulation rebuilds.
func buildNameSubtree[E any](eng Engine, lh LevelHasher[E], dir Dir, nm Name, rest *List[E], levNm, parentLev Level, accTree *Tree[E]) (*Tree[E], *List[E], error) {
	nm1, nm2, nm3, nm4 := eng.NameFork4(nm)

	tree2, rest2, err := memoTreeOfListRec(eng, lh, nm1, dir, rest, TreeNil[E](), 0, levNm)
	if err != nil {
		return nil, nil, err
	}

	var tree3 *Tree[E]
	if dir == DirLeft {
		tree3 = NameNode(nm, levNm, accTree, tree2)
	} else {
		tree3 = NameNode(nm, levNm, tree2, accTree)
	}

	cellA, err := eng.Cell(nm3, tree3)
	if err != nil {
		return nil, nil, err
	}
	cellA = eng.ReadOnly(cellA)
	tree3Art := ArtTree[E](cellA)

	treeFinal, restFinal, err := memoTreeOfListRec(eng, lh, nm2, dir, rest2, tree3Art, levNm, parentLev)
	if err != nil {
		return nil, nil, err
	}

	cellB, err := eng.Cell(nm4, treeFinal)
	if err != nil {
		return nil, nil, err
	}
	cellB = eng.ReadOnly(cellB)
	treeFinalArt := ArtTree[E](cellB)

	return treeFinalArt, restFinal, nil
}

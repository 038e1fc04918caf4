package nominal

// StructuralEqualList compares two lists for equality after transparently
// forcing Art and unwrapping Rc on both sides. Name markers must match
// exactly: two lists that carry the same
// elements under different Name placement are not structurally equal,
// since their shapes diverge under tree_of_list.
func StructuralEqualList[E comparable](eng Engine, a, b *List[E]) (bool, error) {
	ra, err := resolveHead(eng, a)
	if err != nil {
		return false, err
	}
	rb, err := resolveHead(eng, b)
	if err != nil {
		return false, err
	}

	switch {
	case ra.isNil && rb.isNil:
		return true, nil
	case ra.isNil != rb.isNil:
		return false, nil
	case ra.haveHd && rb.haveHd:
		if ra.hd != rb.hd {
			return false, nil
		}
		return StructuralEqualList(eng, ra.rest, rb.rest)
	case ra.haveNm && rb.haveNm:
		if ra.nm != rb.nm {
			return false, nil
		}
		return StructuralEqualList(eng, ra.rest, rb.rest)
	default:
		return false, nil
	}
}

// StructuralEqualTree compares two trees for equality after transparently
// forcing Art and unwrapping Rc, including their Bin/Name levels.
func StructuralEqualTree[E comparable](eng Engine, a, b *Tree[E]) (bool, error) {
	a, err := deref(eng, a)
	if err != nil {
		return false, err
	}
	b, err = deref(eng, b)
	if err != nil {
		return false, err
	}

	if a.kind != b.kind {
		return false, nil
	}
	switch a.kind {
	case treeNil:
		return true, nil
	case treeLeaf:
		return a.leaf == b.leaf, nil
	case treeBin:
		if a.lev != b.lev {
			return false, nil
		}
		l, err := StructuralEqualTree(eng, a.left, b.left)
		if err != nil || !l {
			return false, err
		}
		return StructuralEqualTree(eng, a.right, b.right)
	case treeName:
		if a.lev != b.lev || a.name != b.name {
			return false, nil
		}
		l, err := StructuralEqualTree(eng, a.left, b.left)
		if err != nil || !l {
			return false, err
		}
		return StructuralEqualTree(eng, a.right, b.right)
	}
	return false, ErrShapeInvariantViolation
}

// deref unwraps Rc and forces Art until reaching a directly-inspectable
// node; unlike NextLeaf/resolveHead this never crosses a Tree-in-List
// boundary, since it operates purely on *Tree[E].
func deref[E any](eng Engine, t *Tree[E]) (*Tree[E], error) {
	for {
		switch t.kind {
		case treeRc:
			t = t.rc
		case treeArt:
			sub, err := ForceAs[*Tree[E]](eng, t.art)
			if err != nil {
				return nil, err
			}
			t = sub
		default:
			return t, nil
		}
	}
}

package nominal

import "fmt"

// Debug is the debug-print capability required of E. Callers that have a
// fmt.Stringer or just want %v can pass fmt.Sprintf("%v", x) wrapped in a
// trivial function; a dedicated parameter (rather than requiring E itself
// to implement an interface) keeps List[E]/Tree[E] usable with element
// types that don't implement one.
type Debug[E any] func(E) string

// GetStringList is the shape-preserving textual dump of list used by tests
// and debugging tools. Unlike NextLeaf it must traverse Art via
// Force, not Structural, so that every articulation it crosses is recorded
// as a dependency of whatever computation called it — this function is a
// test/debug tool, not an incremental algorithm, and its whole point is to
// observe the structure the engine would otherwise hide.
func GetStringList[E any](eng Engine, list *List[E], dbg Debug[E]) (string, error) {
	switch list.kind {
	case listNil:
		return "Nil", nil
	case listCons:
		tl, err := GetStringList(eng, list.tail, dbg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Cons(%s,%s)", dbg(list.head), tl), nil
	case listName:
		tl, err := GetStringList(eng, list.tail, dbg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Name(%s,%s)", list.name.String(), tl), nil
	case listRc:
		return GetStringList(eng, list.rc, dbg)
	case listArt:
		sub, err := ForceAs[*List[E]](eng, list.art)
		if err != nil {
			return "", err
		}
		inner, err := GetStringList(eng, sub, dbg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Art(%s)", inner), nil
	case listTree:
		ts, err := GetStringTree(eng, list.tree, dbg)
		if err != nil {
			return "", err
		}
		rest, err := GetStringList(eng, list.tail, dbg)
		if err != nil {
			return "", err
		}
		dirName := "Left"
		if list.dir == DirRight {
			dirName = "Right"
		}
		return fmt.Sprintf("Tree(%s,%s,%s)", ts, dirName, rest), nil
	}
	return "", ErrShapeInvariantViolation
}

// GetStringTree is the textual dump of t, matching GetStringList's
// Art-forcing traversal.
func GetStringTree[E any](eng Engine, t *Tree[E], dbg Debug[E]) (string, error) {
	switch t.kind {
	case treeNil:
		return "Nil", nil
	case treeLeaf:
		return fmt.Sprintf("Leaf(%s)", dbg(t.leaf)), nil
	case treeBin:
		ls, err := GetStringTree(eng, t.left, dbg)
		if err != nil {
			return "", err
		}
		rs, err := GetStringTree(eng, t.right, dbg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Bin(%d,%s,%s)", t.lev, ls, rs), nil
	case treeName:
		ls, err := GetStringTree(eng, t.left, dbg)
		if err != nil {
			return "", err
		}
		rs, err := GetStringTree(eng, t.right, dbg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Name(%d,%s,%s,%s)", t.lev, t.name.String(), ls, rs), nil
	case treeRc:
		return GetStringTree(eng, t.rc, dbg)
	case treeArt:
		sub, err := ForceAs[*Tree[E]](eng, t.art)
		if err != nil {
			return "", err
		}
		inner, err := GetStringTree(eng, sub, dbg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Art(%s)", inner), nil
	}
	return "", ErrShapeInvariantViolation
}

// GetString is the %v-based shorthand GetStringList/GetStringTree callers
// reach for when E's Go zero-value formatting is good enough (used
// internally by ListMergeSortViaSingletons to derive a merge-rank encoding
// for a run; test code generally prefers GetStringList/GetStringTree with
// an explicit Debug so output stays stable across fmt changes).
func GetString[E any](eng Engine, list *List[E]) (string, error) {
	return GetStringList(eng, list, func(x E) string { return fmt.Sprintf("%v", x) })
}

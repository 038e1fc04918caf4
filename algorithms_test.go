package nominal_test

import (
	"errors"
	"sort"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/nominal-adapton"
	"github.com/vocdoni/nominal-adapton/engine"
)

var sumMonoid = nominal.Monoid[int]{
	Zero:  0,
	Binop: func(a, b int) int { return a + b },
}

func lessEqInt(a, b int) bool { return a <= b }

func TestTreeReduceMonoidSumsOneThroughEight(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)
	lh := intLevelHasher()

	tree, err := nominal.TreeOfList(eng, lh, nominal.DirLeft, listOfInts(1, 2, 3, 4, 5, 6, 7, 8))
	c.Assert(err, qt.IsNil)

	sum, err := nominal.TreeReduceMonoid(eng, tree, sumMonoid)
	c.Assert(err, qt.IsNil)
	c.Assert(sum, qt.Equals, 36)
}

func TestListReduceMonoidMatchesTreeReduceMonoid(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)
	lh := intLevelHasher()

	sum, err := nominal.ListReduceMonoid(eng, lh, listOfInts(1, 2, 3, 4, 5), sumMonoid)
	c.Assert(err, qt.IsNil)
	c.Assert(sum, qt.Equals, 15)
}

func TestTreeFilterKeepsOnlyMatchingLeaves(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)
	lh := intLevelHasher()

	tree, err := nominal.TreeOfList(eng, lh, nominal.DirLeft, listOfInts(1, 2, 3, 4, 5, 6, 7, 8))
	c.Assert(err, qt.IsNil)

	even, err := nominal.TreeFilter(eng, tree, func(x int) bool { return x%2 == 0 })
	c.Assert(err, qt.IsNil)

	out, err := nominal.ListOfTree(eng, even)
	c.Assert(err, qt.IsNil)
	c.Assert(drainInts(t, eng, out), qt.DeepEquals, []int{2, 4, 6, 8})
}

func TestTreeFilterComposesConjunctively(t *testing.T) {
	// filter(filter(t,p),q) == filter(t, p && q).
	c := qt.New(t)
	eng := newMemo(t)
	lh := intLevelHasher()

	input := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	tree, err := nominal.TreeOfList(eng, lh, nominal.DirLeft, listOfInts(input...))
	c.Assert(err, qt.IsNil)

	isEven := func(x int) bool { return x%2 == 0 }
	isMultOf3 := func(x int) bool { return x%3 == 0 }

	t1, err := nominal.TreeFilter(eng, tree, isEven)
	c.Assert(err, qt.IsNil)
	composed, err := nominal.TreeFilter(eng, t1, isMultOf3)
	c.Assert(err, qt.IsNil)

	direct, err := nominal.TreeFilter(eng, tree, func(x int) bool { return isEven(x) && isMultOf3(x) })
	c.Assert(err, qt.IsNil)

	composedList, err := nominal.ListOfTree(eng, composed)
	c.Assert(err, qt.IsNil)
	directList, err := nominal.ListOfTree(eng, direct)
	c.Assert(err, qt.IsNil)

	c.Assert(drainInts(t, eng, composedList), qt.DeepEquals, drainInts(t, eng, directList))
}

func TestListMergeInterleavesTwoSortedRuns(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)

	merged, err := nominal.ListMerge[int](eng, lessEqInt,
		nominal.UnnamedHead(listOfInts(1, 3, 5)),
		nominal.UnnamedHead(listOfInts(2, 4, 6)),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(drainInts(t, eng, merged), qt.DeepEquals, []int{1, 2, 3, 4, 5, 6})
}

func TestListMergeTakesLeftSideOnTies(t *testing.T) {
	// ties resolved by taking l1 first.
	type tagged struct {
		key int
		tag string
	}
	c := qt.New(t)
	eng := newMemo(t)

	l1 := nominal.Cons(tagged{1, "left"}, nominal.NilList[tagged]())
	l2 := nominal.Cons(tagged{1, "right"}, nominal.NilList[tagged]())
	lessEqTagged := func(a, b tagged) bool { return a.key <= b.key }

	merged, err := nominal.ListMerge[tagged](eng, lessEqTagged, nominal.UnnamedHead(l1), nominal.UnnamedHead(l2))
	c.Assert(err, qt.IsNil)

	var got []string
	cur := merged
	for {
		empty, err := nominal.IsEmpty(eng, cur)
		c.Assert(err, qt.IsNil)
		if empty {
			break
		}
		_, err = nominal.ListElim(eng, cur,
			func() struct{} { return struct{}{} },
			func(x tagged, rest *nominal.List[tagged]) struct{} { got = append(got, x.tag); cur = rest; return struct{}{} },
			func(_ nominal.Name, rest *nominal.List[tagged]) struct{} { cur = rest; return struct{}{} },
		)
		c.Assert(err, qt.IsNil)
	}
	c.Assert(got, qt.DeepEquals, []string{"left", "right"})
}

func TestListMergeMemoizesUnderNamedHead(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)

	n := nominal.RootName("merge-left")
	h1 := nominal.NamedHead(n, listOfInts(1, 3, 5))
	h2 := nominal.UnnamedHead(listOfInts(2, 4, 6))

	merged1, err := nominal.ListMerge[int](eng, lessEqInt, h1, h2)
	c.Assert(err, qt.IsNil)
	merged2, err := nominal.ListMerge[int](eng, lessEqInt, h1, h2)
	c.Assert(err, qt.IsNil)

	c.Assert(drainInts(t, eng, merged1), qt.DeepEquals, []int{1, 2, 3, 4, 5, 6})
	c.Assert(drainInts(t, eng, merged2), qt.DeepEquals, drainInts(t, eng, merged1))
}

func TestListMergeSortSortsAndPermutes(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)
	lh := intLevelHasher()

	input := []int{9, 3, 7, 1, 8, 2, 6, 4, 5, 0}
	sorted, err := nominal.ListMergeSort(eng, lh, lessEqInt, listOfInts(input...))
	c.Assert(err, qt.IsNil)

	got := drainInts(t, eng, sorted)
	want := append([]int(nil), input...)
	sort.Ints(want)
	c.Assert(got, qt.DeepEquals, want)
}

func TestListMergeSortViaSingletonsAgreesWithListMergeSort(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)
	lh := intLevelHasher()

	input := []int{5, 1, 9, 2, 8, 3, 7, 4, 6, 0}
	viaTree, err := nominal.ListMergeSort(eng, lh, lessEqInt, listOfInts(input...))
	c.Assert(err, qt.IsNil)

	viaSingletons, err := nominal.ListMergeSortViaSingletons(eng, nominal.FNV1aSeededHash, lessEqInt, listOfInts(input...))
	c.Assert(err, qt.IsNil)

	c.Assert(drainInts(t, eng, viaSingletons), qt.DeepEquals, drainInts(t, eng, viaTree))
}

func TestContractCoalescesAdjacentEqualElements(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)

	list := listOfInts(1, 1, 2, 2, 2, 3, 1, 1)
	contracted, err := nominal.Contract(eng, func(a, b int) bool { return a == b }, func(a, b int) int { return a }, list)
	c.Assert(err, qt.IsNil)
	c.Assert(drainInts(t, eng, contracted), qt.DeepEquals, []int{1, 2, 3, 1})
}

func TestReduceFoldsListWithoutAZero(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)

	list := listOfInts(3, 1, 4, 1, 5)
	eq := func(a, b int) bool { return false }
	sum, err := nominal.Reduce(eng, eq, func(a, b int) int { return a + b }, list)
	c.Assert(err, qt.IsNil)
	c.Assert(sum, qt.Equals, 14)
}

func TestReduceOfSingletonReturnsThatElement(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)

	list := listOfInts(42)
	eq := func(a, b int) bool { return false }
	got, err := nominal.Reduce(eng, eq, func(a, b int) int { return a + b }, list)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, 42)
}

func TestReduceOfEmptyListReturnsErrEmptyReduce(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)

	eq := func(a, b int) bool { return false }
	_, err := nominal.Reduce(eng, eq, func(a, b int) int { return a + b }, nominal.NilList[int]())
	c.Assert(errors.Is(err, nominal.ErrEmptyReduce), qt.IsTrue)
}

func TestReduceContractsCombinedAdjacentPairsUnderEq(t *testing.T) {
	// eq always true means every combine step's result is itself eligible
	// to coalesce with whatever follows, so the whole list collapses in
	// one contraction pass rather than pairwise from the front.
	c := qt.New(t)
	eng := newMemo(t)

	list := listOfInts(1, 2, 3, 4)
	eq := func(a, b int) bool { return true }
	got, err := nominal.Reduce(eng, eq, func(a, b int) int { return a + b }, list)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, 10)
}

func TestTreeAppendOfNilIsIdentity(t *testing.T) {
	c := qt.New(t)
	eng := newMemo(t)
	lh := intLevelHasher()

	tree, err := nominal.TreeOfList(eng, lh, nominal.DirLeft, listOfInts(1, 2, 3))
	c.Assert(err, qt.IsNil)

	appended := nominal.TreeAppend(tree, nominal.TreeNil[int]())
	out, err := nominal.ListOfTree(eng, appended)
	c.Assert(err, qt.IsNil)
	c.Assert(drainInts(t, eng, out), qt.DeepEquals, []int{1, 2, 3})
}

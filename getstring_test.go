package nominal

import (
	"strconv"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestGetStringListRendersConsNameAndNil(t *testing.T) {
	c := qt.New(t)
	eng := nullEngine{}
	dbg := strconv.Itoa

	list := Cons(1, NameList(RootName("n"), Cons(2, NilList[int]())))
	s, err := GetStringList(eng, list, dbg)
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, "Cons(1,Name(r:n,Cons(2,Nil)))")
}

func TestGetStringListForcesArt(t *testing.T) {
	c := qt.New(t)
	eng := nullEngine{}

	a, err := eng.Cell(RootName("cell"), Cons(7, NilList[int]()))
	c.Assert(err, qt.IsNil)

	s, err := GetStringList(eng, ArtList[int](a), strconv.Itoa)
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, "Art(Cons(7,Nil))")
}

func TestGetStringTreeRendersBinAndNameWithLevels(t *testing.T) {
	c := qt.New(t)
	eng := nullEngine{}

	tr := NameNode(RootName("n"), NameLevelFloor, Bin(2, Leaf(1), Leaf(2)), TreeNil[int]())
	s, err := GetStringTree(eng, tr, strconv.Itoa)
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, "Name(33,r:n,Bin(2,Leaf(1),Leaf(2)),Nil)")
}

func TestGetStringTreeUnwrapsRcSilently(t *testing.T) {
	c := qt.New(t)
	eng := nullEngine{}

	s, err := GetStringTree(eng, RcTree(Leaf(5)), strconv.Itoa)
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, "Leaf(5)")
}

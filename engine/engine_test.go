package engine_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/nominal-adapton"
	"github.com/vocdoni/nominal-adapton/engine"
)

func newMemo(t *testing.T) *engine.Memo {
	t.Helper()
	m, err := engine.New(nil, engine.Codec{})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return m
}

func TestCellThenForceReturnsStoredValue(t *testing.T) {
	// Force(Cell(n, v)) == v.
	c := qt.New(t)
	m := newMemo(t)

	a, err := m.Cell(nominal.RootName("x"), 42)
	c.Assert(err, qt.IsNil)

	v, err := m.Force(a)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, 42)
}

func TestReadOnlyDoesNotChangeForceResult(t *testing.T) {
	c := qt.New(t)
	m := newMemo(t)

	a, err := m.Cell(nominal.RootName("y"), "hello")
	c.Assert(err, qt.IsNil)
	a = m.ReadOnly(a)

	v, err := m.Force(a)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, "hello")
}

func TestThunkMemoizesSameProgPointAndName(t *testing.T) {
	// two equal-keyed calls observe equal Force results,
	// and the underlying f only runs once.
	c := qt.New(t)
	m := newMemo(t)

	calls := 0
	n := nominal.RootName("memo")
	f := func(any) (any, error) {
		calls++
		return calls, nil
	}

	a1, err := m.Thunk("pp", n, f, nil)
	c.Assert(err, qt.IsNil)
	a2, err := m.Thunk("pp", n, f, nil)
	c.Assert(err, qt.IsNil)

	v1, err := m.Force(a1)
	c.Assert(err, qt.IsNil)
	v2, err := m.Force(a2)
	c.Assert(err, qt.IsNil)

	c.Assert(v1, qt.Equals, v2)
	c.Assert(calls, qt.Equals, 1)
}

func TestThunkRunsAgainUnderADifferentName(t *testing.T) {
	c := qt.New(t)
	m := newMemo(t)

	calls := 0
	f := func(any) (any, error) {
		calls++
		return calls, nil
	}

	_, err := m.Thunk("pp", nominal.RootName("a"), f, nil)
	c.Assert(err, qt.IsNil)
	_, err = m.Thunk("pp", nominal.RootName("b"), f, nil)
	c.Assert(err, qt.IsNil)

	c.Assert(calls, qt.Equals, 2)
}

func TestStructuralRunsBodyAndPropagatesResultAndError(t *testing.T) {
	c := qt.New(t)
	m := newMemo(t)

	v, err := m.Structural(func() (any, error) { return 7, nil })
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, 7)

	wantErr := errors.New("boom")
	_, err = m.Structural(func() (any, error) { return nil, wantErr })
	c.Assert(err, qt.Equals, wantErr)
}

func TestNameForkDelegatesToPackageNominal(t *testing.T) {
	c := qt.New(t)
	m := newMemo(t)

	n := nominal.RootName("root")
	a1, b1 := m.NameFork(n)
	a2, b2 := nominal.Fork(n)
	c.Assert(a1, qt.Equals, a2)
	c.Assert(b1, qt.Equals, b2)
}

func TestForceOutsideStructuralGrowsDependencyLog(t *testing.T) {
	c := qt.New(t)
	m := newMemo(t)

	a, err := m.Cell(nominal.RootName("tracked"), 9)
	c.Assert(err, qt.IsNil)

	c.Assert(m.DependencyLog(), qt.HasLen, 0)
	_, err = m.Force(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m.DependencyLog(), qt.HasLen, 1)
	_, err = m.Force(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m.DependencyLog(), qt.HasLen, 2)
}

func TestForceInsideStructuralDoesNotGrowDependencyLog(t *testing.T) {
	// a Structural body's Force calls are not recorded as dependencies.
	c := qt.New(t)
	m := newMemo(t)

	a, err := m.Cell(nominal.RootName("untracked"), 9)
	c.Assert(err, qt.IsNil)

	_, err = m.Structural(func() (any, error) {
		return m.Force(a)
	})
	c.Assert(err, qt.IsNil)
	c.Assert(m.DependencyLog(), qt.HasLen, 0)

	// A Force outside Structural still counts; only the nested one is
	// suppressed.
	_, err = m.Force(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m.DependencyLog(), qt.HasLen, 1)
}

func TestForceOnUnknownArtFails(t *testing.T) {
	c := qt.New(t)
	m := newMemo(t)
	other := newMemo(t)

	a, err := other.Cell(nominal.RootName("foreign"), 1)
	c.Assert(err, qt.IsNil)

	_, err = m.Force(a)
	c.Assert(err, qt.IsNotNil)
}

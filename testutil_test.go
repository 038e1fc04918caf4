package nominal

// nullArt is the nullEngine's nominal.Art: it carries its stored value
// directly rather than going through a table, since nullEngine never needs
// to look anything up by Name.
type nullArt struct{ v any }

func (nullArt) artHandle() {}

// nullEngine is the simplest possible nominal.Engine: it performs no
// memoization at all, forcing every Thunk call to re-run f. It exists for
// unit tests in this package that only need the eliminator plumbing to work
// (ListElim, NextLeaf, FoldUp, ...) and don't care about memo reuse, so they
// don't have to pull in package engine.
type nullEngine struct{}

func (nullEngine) Cell(n Name, v any) (Art, error) { return nullArt{v}, nil }

func (nullEngine) ReadOnly(a Art) Art { return a }

func (nullEngine) Force(a Art) (any, error) {
	na, ok := a.(nullArt)
	if !ok {
		return nil, ErrShapeInvariantViolation
	}
	return na.v, nil
}

func (nullEngine) Thunk(pt ProgPoint, n Name, f func(args any) (any, error), args any) (Art, error) {
	v, err := f(args)
	if err != nil {
		return nil, err
	}
	return nullArt{v}, nil
}

func (nullEngine) Structural(body func() (any, error)) (any, error) { return body() }

func (nullEngine) NameFork(n Name) (Name, Name) { return Fork(n) }

func (nullEngine) NameFork4(n Name) (Name, Name, Name, Name) { return Fork4(n) }

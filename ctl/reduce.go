package ctl

// Reduce rewrites f into an equivalent formula that is cheaper to evaluate:
// constants are folded, double negations removed, nested EF/AF/AG collapsed,
// EF and EX distributed over disjunctions, AX over conjunctions, EG and AG
// expressed through AF and EF, and until operators whose left side is
// deadlock or a constant simplified.
func Reduce(f Formula) Formula {
	for {
		r := reduce(f)
		if r.String() == f.String() {
			return r
		}
		f = r
	}
}

func reduce(f Formula) Formula {
	switch f := f.(type) {
	case Compare:
		return reduceCompare(f)
	case Not:
		return reduceNot(reduce(f.F))
	case And:
		return reduceAnd(reduce(f.Left), reduce(f.Right))
	case Or:
		return reduceOr(reduce(f.Left), reduce(f.Right))
	case EX:
		switch g := reduce(f.F).(type) {
		case False:
			return False{}
		case Or:
			return Or{Left: EX{F: g.Left}, Right: EX{F: g.Right}}
		default:
			return EX{F: g}
		}
	case AX:
		switch g := reduce(f.F).(type) {
		case True:
			return True{}
		case And:
			return And{Left: AX{F: g.Left}, Right: AX{F: g.Right}}
		default:
			return AX{F: g}
		}
	case EF:
		switch g := reduce(f.F).(type) {
		case True, False:
			return g
		case EF:
			return g
		case EU:
			return EF{F: g.Q}
		case Or:
			return Or{Left: EF{F: g.Left}, Right: EF{F: g.Right}}
		default:
			return EF{F: g}
		}
	case AF:
		switch g := reduce(f.F).(type) {
		case True, False:
			return g
		case AF:
			return g
		default:
			return AF{F: g}
		}
	case EG:
		switch g := reduce(f.F).(type) {
		case True, False:
			return g
		default:
			return Not{F: AF{F: reduceNot(g)}}
		}
	case AG:
		switch g := reduce(f.F).(type) {
		case True, False:
			return g
		default:
			return Not{F: EF{F: reduceNot(g)}}
		}
	case EU:
		p, q := reduce(f.P), reduce(f.Q)
		switch p.(type) {
		case True:
			return EF{F: q}
		case False, Deadlock:
			return q
		}
		switch q.(type) {
		case True, False:
			return q
		}
		return EU{P: p, Q: q}
	case AU:
		p, q := reduce(f.P), reduce(f.Q)
		switch p.(type) {
		case True:
			return AF{F: q}
		case False, Deadlock:
			return q
		}
		switch q.(type) {
		case True, False:
			return q
		}
		return AU{P: p, Q: q}
	}
	return f
}

func reduceCompare(f Compare) Formula {
	l, lok := f.Left.(Value)
	r, rok := f.Right.(Value)
	if !lok || !rok {
		return f
	}
	v, err := f.Op.holds(int(l), int(r))
	if err != nil {
		return f
	}
	if v {
		return True{}
	}
	return False{}
}

func reduceNot(g Formula) Formula {
	switch g := g.(type) {
	case Not:
		return g.F
	case True:
		return False{}
	case False:
		return True{}
	}
	return Not{F: g}
}

func reduceAnd(l, r Formula) Formula {
	switch {
	case isFalse(l) || isFalse(r):
		return False{}
	case isTrue(l):
		return r
	case isTrue(r) || l.String() == r.String():
		return l
	}
	return And{Left: l, Right: r}
}

func reduceOr(l, r Formula) Formula {
	switch {
	case isTrue(l) || isTrue(r):
		return True{}
	case isFalse(l):
		return r
	case isFalse(r) || l.String() == r.String():
		return l
	}
	return Or{Left: l, Right: r}
}

func isTrue(f Formula) bool {
	_, ok := f.(True)
	return ok
}

func isFalse(f Formula) bool {
	_, ok := f.(False)
	return ok
}

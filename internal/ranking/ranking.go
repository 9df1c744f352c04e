package ranking

// BestOf filters a slice of items down to those whose extracted Score
// ties for best (spec.md §4.9: a solver run can discover many solutions;
// only the best-scored ones are reported, and more than one surviving
// means AmbiguousSolutions). New logic with no direct teacher analog,
// since the teacher's checker only ever produces one candidate type per
// expression.
func BestOf[T any](items []T, score func(T) Score) []T {
	if len(items) == 0 {
		return nil
	}
	best := score(items[0])
	for _, it := range items[1:] {
		if s := score(it); s.Less(best) {
			best = s
		}
	}
	var out []T
	for _, it := range items {
		if score(it).Equal(best) {
			out = append(out, it)
		}
	}
	return out
}

// CompareSolutions orders a and b the way spec.md §4.9's tie-breaking
// table does once their Scores already compare equal: more specific
// (fewer defaulted type variables) wins, otherwise neither is preferred.
// The chosen overloads are not compared.
func CompareSolutions(aDefaultedVars, bDefaultedVars int) int {
	switch {
	case aDefaultedVars < bDefaultedVars:
		return -1
	case aDefaultedVars > bDefaultedVars:
		return 1
	default:
		return 0
	}
}

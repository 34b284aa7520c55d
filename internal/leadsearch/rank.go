package leadsearch

import (
	"cmp"
	"slices"
)

// Rank returns a copy ordered by score, highest first. Equal scores keep
// their input order.
func Rank(leads []Lead) []Lead {
	out := make([]Lead, len(leads))
	copy(out, leads)
	slices.SortStableFunc(out, func(a, b Lead) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

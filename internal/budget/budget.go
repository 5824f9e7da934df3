// Package budget accounts for live lookup calls against the provider's
// daily request ceiling.
package budget

// DailyCeiling is the provider-side request quota per calendar day.
const DailyCeiling = 1000

// Budget counts live calls made during the current run. Cache-served lookups
// never touch it. It is not safe for concurrent use; the enrichment pass is
// strictly sequential.
type Budget struct {
	used    int
	ceiling int
}

// New returns a budget with the given ceiling and used already spent, as
// restored from a same-day checkpoint.
func New(ceiling, used int) *Budget {
	if ceiling <= 0 {
		ceiling = DailyCeiling
	}
	if used < 0 {
		used = 0
	}
	return &Budget{used: used, ceiling: ceiling}
}

// TryConsume reserves one live call. It returns false, without counting,
// once the ceiling is reached.
func (b *Budget) TryConsume() bool {
	if b.used >= b.ceiling {
		return false
	}
	b.used++
	return true
}

// Exhausted reports whether no live calls remain.
func (b *Budget) Exhausted() bool {
	return b.used >= b.ceiling
}

// Used returns the number of live calls spent so far.
func (b *Budget) Used() int {
	return b.used
}

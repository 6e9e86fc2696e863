// Package ledger tracks the ingredient pool shared by both seats.
//
// Counts never go negative. Spending is all-or-nothing: either every
// ingredient of a cost is available and all of them are taken, or the pool
// is left untouched.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrInsufficient is returned (wrapped in a ShortfallError) when a cost cannot be covered.
	ErrInsufficient = errors.New("ledger: insufficient ingredients")
	// ErrUnknownIngredient is returned for ingredients the pool was not created with.
	ErrUnknownIngredient = errors.New("ledger: unknown ingredient")
	// ErrNegativeAmount is returned for negative credits or costs.
	ErrNegativeAmount = errors.New("ledger: negative amount")
)

// Ingredient names a kind of ingredient, e.g. "corn" or "popcorn".
type Ingredient string

// Counts maps ingredient kinds to amounts.
type Counts map[Ingredient]int

// Clone returns an independent copy.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Total returns the sum of all amounts.
func (c Counts) Total() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// Equal reports whether both maps hold the same non-zero amounts.
func (c Counts) Equal(o Counts) bool {
	for k, v := range c {
		if o[k] != v {
			return false
		}
	}
	for k, v := range o {
		if c[k] != v {
			return false
		}
	}
	return true
}

// Kinds returns the ingredient kinds in sorted order.
func (c Counts) Kinds() []Ingredient {
	kinds := make([]Ingredient, 0, len(c))
	for k := range c {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// String formats counts as "corn:5 popcorn:2" in sorted order.
func (c Counts) String() string {
	parts := make([]string, 0, len(c))
	for _, k := range c.Kinds() {
		parts = append(parts, fmt.Sprintf("%s:%d", k, c[k]))
	}
	return strings.Join(parts, " ")
}

// ShortfallError reports which ingredients were missing from a spend.
type ShortfallError struct {
	Missing Counts // amount still needed per ingredient
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("ledger: insufficient ingredients, missing %s", e.Missing)
}

func (e *ShortfallError) Unwrap() error {
	return ErrInsufficient
}

// Stock declares an ingredient the pool accepts.
// MaxStack of zero means unbounded.
type Stock struct {
	Kind     Ingredient
	MaxStack int
}

// Pool is the shared ingredient pool. It is safe for concurrent use.
type Pool struct {
	mu     sync.RWMutex
	counts Counts
	limits map[Ingredient]int
}

// New creates a pool for the given catalog, seeded with start amounts.
// Start amounts above a stack limit are rejected.
func New(catalog []Stock, start Counts) (*Pool, error) {
	p := &Pool{
		counts: make(Counts, len(catalog)),
		limits: make(map[Ingredient]int, len(catalog)),
	}
	for _, s := range catalog {
		if s.MaxStack < 0 {
			return nil, fmt.Errorf("ledger: %s: %w", s.Kind, ErrNegativeAmount)
		}
		p.limits[s.Kind] = s.MaxStack
		p.counts[s.Kind] = 0
	}
	for _, k := range start.Kinds() {
		n := start[k]
		if _, ok := p.limits[k]; !ok {
			return nil, fmt.Errorf("ledger: start amount for %q: %w", k, ErrUnknownIngredient)
		}
		if n < 0 {
			return nil, fmt.Errorf("ledger: start amount for %q: %w", k, ErrNegativeAmount)
		}
		if limit := p.limits[k]; limit > 0 && n > limit {
			return nil, fmt.Errorf("ledger: start amount %d for %q exceeds stack limit %d", n, k, limit)
		}
		p.counts[k] = n
	}
	return p, nil
}

// Count returns the current amount of one ingredient.
func (p *Pool) Count(k Ingredient) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counts[k]
}

// Snapshot returns a copy of all counts, including zeros.
func (p *Pool) Snapshot() Counts {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counts.Clone()
}

// Covers reports whether the pool can pay the cost right now.
func (p *Pool) Covers(cost Counts) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, err := p.shortfall(cost)
	return err == nil
}

// Spend removes the full cost atomically.
// On any error the pool is unchanged.
func (p *Pool) Spend(cost Counts) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.shortfall(cost); err != nil {
		return err
	}
	for k, n := range cost {
		p.counts[k] -= n
	}
	return nil
}

// shortfall validates a cost against the current counts. Caller holds the lock.
func (p *Pool) shortfall(cost Counts) (Counts, error) {
	missing := Counts{}
	for _, k := range cost.Kinds() {
		n := cost[k]
		if n < 0 {
			return nil, fmt.Errorf("ledger: cost for %q: %w", k, ErrNegativeAmount)
		}
		if _, ok := p.limits[k]; !ok {
			return nil, fmt.Errorf("ledger: cost for %q: %w", k, ErrUnknownIngredient)
		}
		if have := p.counts[k]; have < n {
			missing[k] = n - have
		}
	}
	if len(missing) > 0 {
		return missing, &ShortfallError{Missing: missing}
	}
	return nil, nil
}

// Credit adds n of one ingredient, clamped to its stack limit.
// Returns how much was actually stored.
func (p *Pool) Credit(k Ingredient, n int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.credit(k, n)
}

func (p *Pool) credit(k Ingredient, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("ledger: credit for %q: %w", k, ErrNegativeAmount)
	}
	limit, ok := p.limits[k]
	if !ok {
		return 0, fmt.Errorf("ledger: credit for %q: %w", k, ErrUnknownIngredient)
	}
	stored := n
	if limit > 0 && p.counts[k]+n > limit {
		stored = limit - p.counts[k]
	}
	p.counts[k] += stored
	return stored, nil
}

// CreditAll adds a whole reward. Unknown ingredients fail the entire credit
// before anything is stored. Returns the overflow that did not fit.
func (p *Pool) CreditAll(reward Counts) (Counts, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for k, n := range reward {
		if n < 0 {
			return nil, fmt.Errorf("ledger: credit for %q: %w", k, ErrNegativeAmount)
		}
		if _, ok := p.limits[k]; !ok {
			return nil, fmt.Errorf("ledger: credit for %q: %w", k, ErrUnknownIngredient)
		}
	}

	overflow := Counts{}
	for _, k := range reward.Kinds() {
		stored, _ := p.credit(k, reward[k])
		if lost := reward[k] - stored; lost > 0 {
			overflow[k] = lost
		}
	}
	return overflow, nil
}

// Limit returns the stack limit of an ingredient (0 = unbounded).
func (p *Pool) Limit(k Ingredient) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.limits[k]
}

// Kinds returns every ingredient the pool accepts, sorted.
func (p *Pool) Kinds() []Ingredient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counts.Kinds()
}

package ledger

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
)

func newCornPool(t *testing.T, corn int) *Pool {
	t.Helper()
	p, err := New([]Stock{{Kind: "corn"}, {Kind: "popcorn", MaxStack: 10}, {Kind: "salt"}}, Counts{"corn": corn})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return p
}

func TestNewRejectsBadStart(t *testing.T) {
	tests := []struct {
		name  string
		start Counts
		want  error
	}{
		{"unknown ingredient", Counts{"beans": 1}, ErrUnknownIngredient},
		{"negative start", Counts{"corn": -1}, ErrNegativeAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New([]Stock{{Kind: "corn"}}, tc.start)
			if !errors.Is(err, tc.want) {
				t.Errorf("New() error = %v, expected %v", err, tc.want)
			}
		})
	}

	if _, err := New([]Stock{{Kind: "corn", MaxStack: 3}}, Counts{"corn": 4}); err == nil {
		t.Error("start above stack limit should be rejected")
	}
}

func TestSpendSuccessSubtractsExactCost(t *testing.T) {
	p := newCornPool(t, 20)
	if _, err := p.Credit("salt", 3); err != nil {
		t.Fatal(err)
	}
	before := p.Snapshot()

	cost := Counts{"corn": 5, "salt": 1}
	if err := p.Spend(cost); err != nil {
		t.Fatalf("Spend() error: %v", err)
	}

	after := p.Snapshot()
	for _, k := range before.Kinds() {
		want := before[k] - cost[k]
		if after[k] != want {
			t.Errorf("%s = %d, expected %d", k, after[k], want)
		}
	}
}

func TestSpendRejectedLeavesPoolUnchanged(t *testing.T) {
	p := newCornPool(t, 4)
	before := p.Snapshot()

	err := p.Spend(Counts{"corn": 3, "salt": 1})
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("expected ErrInsufficient, got %v", err)
	}

	var short *ShortfallError
	if !errors.As(err, &short) {
		t.Fatalf("expected ShortfallError, got %T", err)
	}
	if short.Missing["salt"] != 1 || short.Missing["corn"] != 0 {
		t.Errorf("Missing = %v, expected only salt:1", short.Missing)
	}

	if !p.Snapshot().Equal(before) {
		t.Errorf("pool changed after rejected spend: %v -> %v", before, p.Snapshot())
	}
}

func TestSpendUnknownIngredient(t *testing.T) {
	p := newCornPool(t, 10)
	if err := p.Spend(Counts{"truffle": 1}); !errors.Is(err, ErrUnknownIngredient) {
		t.Errorf("expected ErrUnknownIngredient, got %v", err)
	}
	if p.Count("corn") != 10 {
		t.Error("corn should be untouched")
	}
}

func TestCreditClampsToStackLimit(t *testing.T) {
	p := newCornPool(t, 0)

	stored, err := p.Credit("popcorn", 7)
	if err != nil || stored != 7 {
		t.Fatalf("Credit() = %d, %v", stored, err)
	}
	stored, _ = p.Credit("popcorn", 7)
	if stored != 3 {
		t.Errorf("second credit stored %d, expected 3", stored)
	}
	if p.Count("popcorn") != 10 {
		t.Errorf("popcorn = %d, expected limit 10", p.Count("popcorn"))
	}
}

func TestCreditAllIsAllOrNothingOnUnknown(t *testing.T) {
	p := newCornPool(t, 0)
	_, err := p.CreditAll(Counts{"corn": 2, "truffle": 1})
	if !errors.Is(err, ErrUnknownIngredient) {
		t.Fatalf("expected ErrUnknownIngredient, got %v", err)
	}
	if p.Count("corn") != 0 {
		t.Error("no part of a failed reward may be stored")
	}

	overflow, err := p.CreditAll(Counts{"corn": 2, "popcorn": 12})
	if err != nil {
		t.Fatal(err)
	}
	if overflow["popcorn"] != 2 || p.Count("corn") != 2 {
		t.Errorf("overflow = %v, corn = %d", overflow, p.Count("corn"))
	}
}

func TestCountsNeverNegativeUnderRandomOps(t *testing.T) {
	p := newCornPool(t, 5)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		n := rng.Intn(6)
		if rng.Intn(2) == 0 {
			_ = p.Spend(Counts{"corn": n, "popcorn": rng.Intn(3)})
		} else {
			_, _ = p.Credit("popcorn", n)
			_, _ = p.Credit("corn", rng.Intn(2))
		}
		for k, v := range p.Snapshot() {
			if v < 0 {
				t.Fatalf("step %d: %s went negative (%d)", i, k, v)
			}
		}
	}
}

func TestConcurrentSpendNeverOverdraws(t *testing.T) {
	p := newCornPool(t, 20)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Spend(Counts{"corn": 5}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 4 {
		t.Errorf("successful spends = %d, expected 4", successes)
	}
	if p.Count("corn") != 0 {
		t.Errorf("corn = %d, expected 0", p.Count("corn"))
	}
}

func TestCountsString(t *testing.T) {
	c := Counts{"salt": 1, "corn": 5}
	if got := c.String(); got != "corn:5 salt:1" {
		t.Errorf("String() = %q", got)
	}
}

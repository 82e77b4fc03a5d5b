package orders

import (
	"context"
	"strings"
	"testing"
)

type fakeTxRefChecker struct {
	taken    map[string]bool
	takeAll  bool
	attempts int
}

func (f *fakeTxRefChecker) TxRefExists(_ context.Context, txRef string) (bool, error) {
	f.attempts++
	if f.takeAll {
		return true, nil
	}
	return f.taken[txRef], nil
}

func TestRandomTxRefShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := randomTxRef()
		if err != nil {
			t.Fatalf("randomTxRef: %v", err)
		}
		if len(ref) != txRefLength {
			t.Fatalf("expected %d chars, got %q", txRefLength, ref)
		}
		for _, c := range ref {
			if !strings.ContainsRune(txRefAlphabet, c) {
				t.Fatalf("character %q outside alphabet in %q", c, ref)
			}
		}
		seen[ref] = true
	}
	if len(seen) < 45 {
		t.Fatalf("references barely vary: %d unique out of 50", len(seen))
	}
}

func TestGenerateTxRefReturnsFreeReference(t *testing.T) {
	checker := &fakeTxRefChecker{taken: map[string]bool{}}
	ref, err := GenerateTxRef(context.Background(), checker)
	if err != nil {
		t.Fatalf("GenerateTxRef: %v", err)
	}
	if len(ref) != txRefLength {
		t.Fatalf("expected %d chars, got %q", txRefLength, ref)
	}
	if checker.attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", checker.attempts)
	}
}

func TestGenerateTxRefGivesUpAfterBoundedAttempts(t *testing.T) {
	checker := &fakeTxRefChecker{takeAll: true}
	if _, err := GenerateTxRef(context.Background(), checker); err == nil {
		t.Fatal("expected an error when every candidate is taken")
	}
	if checker.attempts != txRefAttempts {
		t.Fatalf("expected %d attempts, got %d", txRefAttempts, checker.attempts)
	}
}

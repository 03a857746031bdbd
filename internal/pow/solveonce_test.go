package pow

import (
	"context"
	"testing"
	"time"

	"github.com/holiman/uint256"
)

func TestSolveOnce_FindsSolutionAtTrivialDifficulty(t *testing.T) {
	block := BlockContext{
		BlockNumber: 1,
		HashASCII:   []byte("00112233"),
		Difficulty:  uint256.NewInt(1),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	solution, err := SolveOnce(ctx, block, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution == nil || solution.Nonce != 0 {
		t.Fatalf("expected a solution at nonce 0 for difficulty 1, got %+v", solution)
	}
}

func TestSolveOnce_StopsOnContextCancellation(t *testing.T) {
	impossible := new(uint256.Int).Not(uint256.NewInt(0))
	block := BlockContext{
		BlockNumber: 1,
		HashASCII:   []byte("00112233"),
		Difficulty:  impossible,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	solution, err := SolveOnce(ctx, block, 0)
	if err == nil {
		t.Fatal("expected a context error for an unsatisfiable difficulty")
	}
	if solution != nil {
		t.Fatalf("expected no solution, got %+v", solution)
	}
}

package pow

import (
	"context"
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/gydschain/gydschain/internal/chainclient"
)

func easyConfig() Config {
	return Config{NumWorkers: 1, UpdateInterval: 64}
}

func TestCoordinator_FindsSolutionAtTrivialDifficulty(t *testing.T) {
	fake := chainclient.NewFake(1, "00112233", uint256.NewInt(1))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	coordinator := NewCoordinator(fake, easyConfig(), nil)
	solution, err := coordinator.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution == nil {
		t.Fatal("expected a solution at difficulty 1, got nil")
	}
	if !Meets(solution.Seal, uint256.NewInt(1)) {
		t.Fatal("returned solution does not actually meet difficulty")
	}
}

func TestCoordinator_StopsWhenWalletAlreadyRegistered(t *testing.T) {
	// A difficulty no CPU worker will ever satisfy in this test's lifetime.
	impossible := new(uint256.Int).Not(uint256.NewInt(0))
	fake := chainclient.NewFake(1, "00112233", impossible)
	fake.SetRegistered(true)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	coordinator := NewCoordinator(fake, easyConfig(), nil)
	solution, err := coordinator.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution != nil {
		t.Fatalf("expected nil solution when wallet is already registered, got %+v", solution)
	}
}

func TestCoordinator_RetriesTransientBlockHashFailures(t *testing.T) {
	fake := chainclient.NewFake(1, "00112233", uint256.NewInt(1))
	fake.NullHashCount = 2

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coordinator := NewCoordinator(fake, easyConfig(), nil)
	solution, err := coordinator.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution == nil {
		t.Fatal("expected a solution after transient null-hash responses clear")
	}
}

func TestCoordinator_GivesUpAfterExhaustingRetries(t *testing.T) {
	fake := chainclient.NewFake(1, "00112233", uint256.NewInt(1))
	persistentErr := context.DeadlineExceeded
	fake.BlockHashErrs = []error{persistentErr, persistentErr, persistentErr}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coordinator := NewCoordinator(fake, easyConfig(), nil)
	_, err := coordinator.Run(ctx)
	if err == nil {
		t.Fatal("expected an error after exhausting the retry budget")
	}
}

func TestCoordinator_SolutionCarriesPostTurnoverBlockNumber(t *testing.T) {
	// Block 100 starts out unsolvable; block 101 arrives mid-run at a
	// difficulty any worker clears almost immediately.
	impossible := new(uint256.Int).Not(uint256.NewInt(0))
	fake := chainclient.NewFake(100, "00112233", impossible)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(300 * time.Millisecond)
		fake.Advance(101, "44556677", uint256.NewInt(1))
	}()

	coordinator := NewCoordinator(fake, easyConfig(), nil)
	solution, err := coordinator.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution == nil {
		t.Fatal("expected a solution once the chain advances to a solvable difficulty")
	}
	if solution.BlockNumber != 101 {
		t.Fatalf("expected the solution to carry the post-turnover block number 101, got %d", solution.BlockNumber)
	}
}

func TestCoordinator_RejectsMalformedBlockHash(t *testing.T) {
	fake := chainclient.NewFake(1, "not-hex!!", uint256.NewInt(1))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	coordinator := NewCoordinator(fake, easyConfig(), nil)
	_, err := coordinator.Run(ctx)
	if err == nil {
		t.Fatal("expected an error for a malformed block hash")
	}
}

func TestIsFresh_StalenessBoundary(t *testing.T) {
	cases := []struct {
		mined, current uint64
		want           bool
	}{
		{100, 100, true},
		{100, 101, true},
		{100, 103, true},
		{100, 104, false},
		{100, 200, false},
		{100, 99, true}, // chain tip behind the mined block: treated as fresh
	}
	for _, c := range cases {
		got := IsFresh(c.mined, c.current)
		if got != c.want {
			t.Errorf("IsFresh(%d, %d) = %v, want %v", c.mined, c.current, got, c.want)
		}
	}
}

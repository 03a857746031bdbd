package pow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/gydschain/gydschain/internal/chainclient"
)

func TestCreatePOW_CPUFindsSolution(t *testing.T) {
	fake := chainclient.NewFake(1, "00112233", uint256.NewInt(1))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	solution, err := CreatePOW(ctx, fake, easyConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution == nil {
		t.Fatal("expected a solution, got nil")
	}
}

func TestCreatePOW_GPURequestedWithoutBuildTagFailsFast(t *testing.T) {
	fake := chainclient.NewFake(1, "00112233", uint256.NewInt(1))
	cfg := easyConfig()
	cfg.CUDA = true

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := CreatePOW(ctx, fake, cfg)
	if !errors.Is(err, ErrUnavailableAccelerator) {
		t.Fatalf("expected ErrUnavailableAccelerator, got %v", err)
	}
}

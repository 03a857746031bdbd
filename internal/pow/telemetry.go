package pow

import (
	"fmt"
	"math/big"
	"time"

	"github.com/gydschain/gydschain/internal/util"
)

// Frame is one telemetry snapshot, pushed by the coordinator after each
// poll cycle. It is side-channel and non-authoritative: nothing in the
// solver ever blocks on, or changes behavior based on, a telemetry Frame.
type Frame struct {
	ObservedAt  uint64 // Unix seconds the frame was assembled
	Elapsed     time.Duration
	Difficulty  *big.Int
	ItersPerSec float64
	BlockNumber uint64
	BlockHash   []byte
	BestMargin  *big.Int
	BestSeal    [32]byte
}

// String renders a Frame as a single human-readable status line.
func (f Frame) String() string {
	best := "none"
	if f.BestMargin != nil {
		best = fmt.Sprintf("margin=%s seal=%x", f.BestMargin.String(), f.BestSeal[:4])
	}
	return fmt.Sprintf("⛏️  ts=%d block=%d hash=%s elapsed=%s rate=%s diff=%s best=%s",
		f.ObservedAt, f.BlockNumber, util.EncodeHex(f.BlockHash), util.FormatDuration(f.Elapsed),
		FormatRate(f.ItersPerSec), f.Difficulty.String(), best)
}

// FormatRate renders a hashes-per-second figure with an SI-ish suffix.
func FormatRate(hashesPerSec float64) string {
	units := []string{"", "K", "M", "G", "T", "P", "E", "Z"}
	n := hashesPerSec
	for _, unit := range units {
		if n < 1000 || unit == units[len(units)-1] {
			return fmt.Sprintf("%.1f%sH/s", n, unit)
		}
		n /= 1000
	}
	return fmt.Sprintf("%.1fH/s", n)
}

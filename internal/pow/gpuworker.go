package pow

import (
	"math/big"
	"math/rand/v2"
	"time"
)

func bytesToBig(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// gpuBatchRequest describes one kernel launch: a contiguous run of
// nonces starting at Start, one block hash and difficulty, and the
// device/geometry to launch on.
type gpuBatchRequest struct {
	Start           uint64
	Count           uint64
	BlockNumber     uint64
	HashASCII       []byte
	Difficulty      []byte // big-endian, fixed 32 bytes
	DeviceID        int
	ThreadsPerBlock int
}

// gpuBatchResult is what a kernel launch reports back: at most one
// winning nonce (Found), plus the best near-miss seen in the batch for
// telemetry, matching the CPU worker's per-tick reporting shape.
type gpuBatchResult struct {
	Found      bool
	Nonce      uint64
	Seal       [32]byte
	BestMargin []byte // big-endian, variable length, nil if no near-miss
	BestSeal   [32]byte
	Elapsed    time.Duration
}

// gpuLauncher is the seam between the coordination loop and a concrete
// accelerator backend. launchBatch runs req.Count nonces starting at
// req.Start and reports the result; release frees any device-side state
// the launcher holds open. Exactly one implementation of this interface
// is linked in depending on the cuda build tag.
type gpuLauncher interface {
	launchBatch(req gpuBatchRequest) (gpuBatchResult, error)
	release()
}

// gpuWorker drives a gpuLauncher the same way cpuWorker drives the CPU
// nonce loop: striped nonce intervals, a polled new-block signal, and
// the same solution/best/tick-time channel triple, so the coordinator
// never has to know which backend produced a given message.
type gpuWorker struct {
	launcher gpuLauncher

	cfg      Config
	interval uint64

	newBlock *signal
	stop     *signal

	state     *BlockState
	solutions chan<- Solution
	bestCh    chan<- BestCandidate
	tickTimes chan<- time.Duration
}

func (w *gpuWorker) run() {
	defer w.launcher.release()

	batchSize := uint64(w.cfg.ThreadsPerBlock) * w.interval
	nonceStart := uint64(0)

	for {
		if w.stop.IsSet() {
			return
		}
		if w.newBlock.IsSet() {
			w.newBlock.Clear()
			nonceStart = rand.Uint64() % (1 << 63)
		}

		blockNumber, hashASCII, difficulty := w.state.Snapshot()
		diffBytes := difficulty.Bytes32()

		result, err := w.launcher.launchBatch(gpuBatchRequest{
			Start:           nonceStart,
			Count:           batchSize,
			BlockNumber:     blockNumber,
			HashASCII:       hashASCII,
			Difficulty:      diffBytes[:],
			DeviceID:        w.cfg.DeviceID,
			ThreadsPerBlock: w.cfg.ThreadsPerBlock,
		})
		if err != nil {
			return
		}

		trySendDuration(w.tickTimes, result.Elapsed)

		if result.Found {
			trySendSolution(w.solutions, Solution{
				Nonce:       result.Nonce,
				BlockNumber: blockNumber,
				Difficulty:  difficulty,
				Seal:        result.Seal,
			})
			return
		}
		if result.BestMargin != nil {
			trySendBest(w.bestCh, BestCandidate{
				Margin: bytesToBig(result.BestMargin),
				Seal:   result.BestSeal,
			})
		}

		// Nonce space wraps at 2^63 rather than 2^64 so Start+Count never
		// overflows a uint64 on a single wide batch.
		nonceStart = (nonceStart + batchSize) % (1 << 63)
	}
}

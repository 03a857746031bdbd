package pow

import (
	"math/big"
	"math/rand/v2"
	"time"
)

// cpuWorker is one nonce-search goroutine. It never writes BlockState and
// never terminates itself on success; it defers to the coordinator's
// stop signal so exactly one canonical solution is used. Each worker
// starts at a random nonce and, after every interval-sized tick, advances
// by interval*numWorkers; because the starts are random, overlap between
// two workers' ranges is unlikely but not excluded.
type cpuWorker struct {
	numWorkers uint64
	interval   uint64

	newBlock *signal
	stop     *signal

	state     *BlockState
	solutions chan<- Solution
	bestCh    chan<- BestCandidate
	tickTimes chan<- time.Duration
}

// run sweeps contiguous nonce intervals until the stop signal is raised.
// Each tick re-snapshots BlockState so a mid-sweep block change is picked
// up on the very next tick even without a new-block signal, though in
// practice the signal is what triggers the randomized restart.
func (w *cpuWorker) run() {
	nonceStart := rand.Uint64()
	nonceEnd := nonceStart + w.interval

	for {
		if w.stop.IsSet() {
			return
		}
		if w.newBlock.IsSet() {
			w.newBlock.Clear()
			nonceStart = rand.Uint64()
			nonceEnd = nonceStart + w.interval
		}

		blockNumber, hashASCII, difficulty := w.state.Snapshot()
		tickStart := time.Now()

		var bestMargin *big.Int
		var bestSeal [32]byte
		for nonce := nonceStart; nonce != nonceEnd; nonce++ {
			seal := Seal(nonce, hashASCII)

			if Meets(seal, difficulty) {
				trySendSolution(w.solutions, Solution{
					Nonce:       nonce,
					BlockNumber: blockNumber,
					Difficulty:  difficulty,
					Seal:        seal,
				})
				// One solution per worker keeps every send within the
				// channel's numWorkers buffer; the worker then idles until
				// the coordinator raises stop.
				for !w.stop.IsSet() {
					time.Sleep(time.Millisecond)
				}
				return
			}

			if margin, notMet := Margin(seal, difficulty); notMet {
				if bestMargin == nil || margin.Cmp(bestMargin) < 0 {
					bestMargin, bestSeal = margin, seal
				}
			}
		}

		trySendDuration(w.tickTimes, time.Since(tickStart))
		if bestMargin != nil {
			trySendBest(w.bestCh, BestCandidate{Margin: bestMargin, Seal: bestSeal})
		}

		advance := w.interval * w.numWorkers
		nonceStart += advance
		nonceEnd += advance
	}
}

// trySendSolution is a blocking send: a found solution must never be
// dropped. Each worker sends at most one solution and the channel is
// buffered to the worker count (see NewCoordinator), so the send does not
// block even after the coordinator has stopped reading.
func trySendSolution(ch chan<- Solution, s Solution) {
	ch <- s
}

// trySendBest and trySendDuration are the telemetry-path sends: best and
// the non-blocking queue policy. Telemetry must never stall the mining
// loop, so a full channel drops the update rather than blocking.
func trySendBest(ch chan<- BestCandidate, b BestCandidate) {
	select {
	case ch <- b:
	default:
	}
}

func trySendDuration(ch chan<- time.Duration, d time.Duration) {
	select {
	case ch <- d:
	default:
	}
}

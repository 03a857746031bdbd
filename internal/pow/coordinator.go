package pow

import (
	"context"
	"log"
	"math/big"
	"sync"
	"time"

	"github.com/gydschain/gydschain/internal/chainclient"
	"github.com/gydschain/gydschain/internal/util"
)

const (
	chainRetryAttempts = 3
	chainRetryDelay    = time.Second
	solutionPollPeriod = 250 * time.Millisecond
	stalenessBlocks    = 3
)

// Coordinator owns the lifecycle of BlockState and of every worker: it
// seeds the target from the chain, spawns the CPU workers onto it, polls
// for block turnover and wallet registration, and stops everyone on the
// first valid solution.
type Coordinator struct {
	chain chainclient.Client
	cfg   Config

	state           *BlockState
	stop            *signal
	newBlockSignals []*signal

	solutions chan Solution
	best      chan BestCandidate
	times     chan time.Duration
	telemetry chan<- Frame

	wg sync.WaitGroup
}

// NewCoordinator builds a Coordinator for cfg.NumWorkers CPU workers.
// telemetry may be nil; a nil channel simply means no Frame is ever sent.
func NewCoordinator(chain chainclient.Client, cfg Config, telemetry chan<- Frame) *Coordinator {
	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	signals := make([]*signal, numWorkers)
	for i := range signals {
		signals[i] = &signal{}
	}

	return &Coordinator{
		chain:           chain,
		cfg:             cfg,
		state:           NewBlockState(),
		stop:            &signal{},
		newBlockSignals: signals,
		// Buffered to numWorkers so a solution send from any worker never
		// blocks even if the coordinator is mid-telemetry-emit.
		solutions: make(chan Solution, numWorkers),
		best:      make(chan BestCandidate, numWorkers),
		times:     make(chan time.Duration, numWorkers),
		telemetry: telemetry,
	}
}

// Run fetches the initial block, spawns workers, and blocks until a
// solution is mined or the wallet is found registered. A nil Solution
// with a nil error means the wallet registered first.
func (c *Coordinator) Run(ctx context.Context) (*Solution, error) {
	initial, err := c.fetchBlockContext(ctx, 0, true)
	if err != nil {
		return nil, util.WrapWithOp("pow: initial block fetch", err)
	}
	c.state.Update(initial)
	lastBlockNumber := initial.BlockNumber

	for _, s := range c.newBlockSignals {
		s.Raise()
	}
	c.spawnWorkers()

	var bestMargin *big.Int
	var bestSeal [32]byte
	loopStart := time.Now()

	for {
		registered, err := c.chain.WalletIsRegistered(ctx)
		if err != nil {
			log.Printf("pow: wallet registration check failed: %v", err)
		} else if registered {
			c.stop.Raise()
			c.wg.Wait()
			return nil, nil
		}

		select {
		case solution := <-c.solutions:
			c.stop.Raise()
			c.wg.Wait()
			return &solution, nil
		case <-time.After(solutionPollPeriod):
		case <-ctx.Done():
			c.stop.Raise()
			c.wg.Wait()
			return nil, ctx.Err()
		}

		currentBlockNumber, err := c.chain.CurrentBlockNumber(ctx)
		if err != nil {
			log.Printf("pow: current block number check failed: %v", err)
		} else if currentBlockNumber != lastBlockNumber {
			fresh, err := c.fetchBlockContext(ctx, currentBlockNumber, false)
			if err != nil {
				log.Printf("pow: refresh for block %d failed: %v", currentBlockNumber, err)
			} else {
				c.state.Update(fresh)
				lastBlockNumber = fresh.BlockNumber
				for _, s := range c.newBlockSignals {
					s.Raise()
				}
			}
		}

		itersPerSec := c.drainTickTimes()
		if margin, seal, ok := c.drainBest(); ok {
			if bestMargin == nil || margin.Cmp(bestMargin) < 0 {
				bestMargin, bestSeal = margin, seal
			}
		}

		c.emitTelemetry(loopStart, lastBlockNumber, itersPerSec, bestMargin, bestSeal)
	}
}

// fetchBlockContext retrieves a BlockContext for blockNumber (or the
// chain's current tip, when useCurrent is true), retrying every call
// with a constant backoff since all three chain reads can fail
// transiently.
func (c *Coordinator) fetchBlockContext(ctx context.Context, blockNumber uint64, useCurrent bool) (BlockContext, error) {
	if useCurrent {
		current, err := chainclient.RetryConstant(ctx, chainRetryAttempts, chainRetryDelay, c.chain.CurrentBlockNumber)
		if err != nil {
			return BlockContext{}, err
		}
		blockNumber = current
	}

	hashHex, err := chainclient.FetchBlockHash(ctx, c.chain, blockNumber, chainRetryAttempts, chainRetryDelay)
	if err != nil {
		return BlockContext{}, err
	}
	hashASCII := stripHexPrefix(hashHex)
	if _, err := util.DecodeHex(string(hashASCII)); err != nil {
		return BlockContext{}, util.WrapWithOp("pow: malformed block hash", err)
	}

	difficulty, err := chainclient.RetryConstant(ctx, chainRetryAttempts, chainRetryDelay, c.chain.CurrentDifficulty)
	if err != nil {
		return BlockContext{}, err
	}

	return BlockContext{
		BlockNumber: blockNumber,
		HashASCII:   hashASCII,
		Difficulty:  difficulty,
	}, nil
}

func (c *Coordinator) spawnWorkers() {
	numWorkers := uint64(len(c.newBlockSignals))
	for i := range c.newBlockSignals {
		w := &cpuWorker{
			numWorkers: numWorkers,
			interval:   c.cfg.UpdateInterval,
			newBlock:   c.newBlockSignals[i],
			stop:       c.stop,
			state:      c.state,
			solutions:  c.solutions,
			bestCh:     c.best,
			tickTimes:  c.times,
		}
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			w.run()
		}()
	}
}

// drainTickTimes empties the tick-time queue and returns the implied
// iterations-per-second figure for the batch just drained.
func (c *Coordinator) drainTickTimes() float64 {
	var total time.Duration
	var count int
drain:
	for {
		select {
		case d := <-c.times:
			total += d
			count++
		default:
			break drain
		}
	}
	if count == 0 || total == 0 {
		return 0
	}
	avg := total / time.Duration(count)
	return float64(c.cfg.UpdateInterval) * float64(len(c.newBlockSignals)) / avg.Seconds()
}

// drainBest empties the best-candidate queue and returns the smallest
// margin seen in this batch, if any.
func (c *Coordinator) drainBest() (margin *big.Int, seal [32]byte, ok bool) {
drain:
	for {
		select {
		case b := <-c.best:
			if margin == nil || b.Margin.Cmp(margin) < 0 {
				margin, seal, ok = b.Margin, b.Seal, true
			}
		default:
			break drain
		}
	}
	return margin, seal, ok
}

func (c *Coordinator) emitTelemetry(loopStart time.Time, blockNumber uint64, itersPerSec float64, bestMargin *big.Int, bestSeal [32]byte) {
	if c.telemetry == nil {
		return
	}
	_, hashASCII, difficulty := c.state.Snapshot()
	// The ASCII-hex body was validated by fetchBlockContext; Frame.BlockHash
	// holds the binary hash, which Frame.String renders as 0x-hex.
	blockHash, _ := util.DecodeHex(string(hashASCII))
	frame := Frame{
		ObservedAt:  util.Now(),
		Elapsed:     time.Since(loopStart),
		Difficulty:  difficulty.ToBig(),
		ItersPerSec: itersPerSec,
		BlockNumber: blockNumber,
		BlockHash:   blockHash,
		BestMargin:  bestMargin,
		BestSeal:    bestSeal,
	}
	select {
	case c.telemetry <- frame:
	default:
	}
}

// stripHexPrefix strips a leading "0x"/"0X" from an ASCII-hex string and
// returns the remaining ASCII bytes, unpadded and uncounted: the hash
// primitive consumes whatever the chain actually sent.
func stripHexPrefix(s string) []byte {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return []byte(s)
}

// IsFresh reports whether a solution mined against blockNumber is still
// usable when the chain's current tip is currentBlockNumber: fresh iff
// the lag is at most 3 blocks. A block number ahead of the chain's tip
// (a reorg, or a read against a lagging replica) is treated as fresh
// rather than rejected.
func IsFresh(blockNumber, currentBlockNumber uint64) bool {
	if currentBlockNumber < blockNumber {
		return true
	}
	return currentBlockNumber-blockNumber <= stalenessBlocks
}

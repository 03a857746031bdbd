package pow

import (
	"context"
	"time"

	"github.com/gydschain/gydschain/internal/chainclient"
	"github.com/gydschain/gydschain/internal/util"
)

// CreatePOW runs the registration proof-of-work search to completion
// against chain, dispatching to the CPU or GPU coordination path
// according to cfg.CUDA. It returns (nil, nil) if the wallet is observed
// registered before a local solution is found, a Solution on success, or
// a non-nil error for anything else (ctx cancellation, an unavailable
// accelerator, exhausted chain retries).
func CreatePOW(ctx context.Context, chain chainclient.Client, cfg Config) (*Solution, error) {
	if cfg.CUDA {
		return runGPU(ctx, chain, cfg)
	}
	return runCPU(ctx, chain, cfg)
}

func runCPU(ctx context.Context, chain chainclient.Client, cfg Config) (*Solution, error) {
	coordinator := NewCoordinator(chain, cfg, nil)
	return coordinator.Run(ctx)
}

// runGPU mirrors runCPU's shape but spawns a single gpuWorker against a
// device-backed launcher instead of a pool of cpuWorkers: one CUDA
// context per process is the norm, so there is no equivalent of
// cfg.NumWorkers on this path.
func runGPU(ctx context.Context, chain chainclient.Client, cfg Config) (*Solution, error) {
	launcher, err := newGPULauncher(cfg)
	if err != nil {
		return nil, err
	}

	state := NewBlockState()
	stop := &signal{}
	newBlock := &signal{}

	initial, err := fetchInitialBlockContext(ctx, chain)
	if err != nil {
		launcher.release()
		return nil, util.WrapWithOp("pow: initial block fetch", err)
	}
	state.Update(initial)
	newBlock.Raise()

	solutions := make(chan Solution, 1)
	best := make(chan BestCandidate, 1)
	times := make(chan time.Duration, 1)

	worker := &gpuWorker{
		launcher:  launcher,
		cfg:       cfg,
		interval:  cfg.UpdateInterval,
		newBlock:  newBlock,
		stop:      stop,
		state:     state,
		solutions: solutions,
		bestCh:    best,
		tickTimes: times,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.run()
	}()

	lastBlockNumber := initial.BlockNumber
	for {
		registered, err := chain.WalletIsRegistered(ctx)
		if err == nil && registered {
			stop.Raise()
			<-done
			return nil, nil
		}

		select {
		case solution := <-solutions:
			stop.Raise()
			<-done
			return &solution, nil
		case <-done:
			return nil, ErrNoWorkers
		case <-time.After(solutionPollPeriod):
		case <-ctx.Done():
			stop.Raise()
			<-done
			return nil, ctx.Err()
		}

		currentBlockNumber, err := chain.CurrentBlockNumber(ctx)
		if err == nil && currentBlockNumber != lastBlockNumber {
			fresh, err := fetchBlockContextFor(ctx, chain, currentBlockNumber)
			if err == nil {
				state.Update(fresh)
				lastBlockNumber = fresh.BlockNumber
				newBlock.Raise()
			}
		}

		drainGPUTelemetry(times, best)
	}
}

func fetchInitialBlockContext(ctx context.Context, chain chainclient.Client) (BlockContext, error) {
	blockNumber, err := chainclient.RetryConstant(ctx, chainRetryAttempts, chainRetryDelay, chain.CurrentBlockNumber)
	if err != nil {
		return BlockContext{}, err
	}
	return fetchBlockContextFor(ctx, chain, blockNumber)
}

func fetchBlockContextFor(ctx context.Context, chain chainclient.Client, blockNumber uint64) (BlockContext, error) {
	hashHex, err := chainclient.FetchBlockHash(ctx, chain, blockNumber, chainRetryAttempts, chainRetryDelay)
	if err != nil {
		return BlockContext{}, err
	}
	hashASCII := stripHexPrefix(hashHex)
	if _, err := util.DecodeHex(string(hashASCII)); err != nil {
		return BlockContext{}, util.WrapWithOp("pow: malformed block hash", err)
	}
	difficulty, err := chainclient.RetryConstant(ctx, chainRetryAttempts, chainRetryDelay, chain.CurrentDifficulty)
	if err != nil {
		return BlockContext{}, err
	}
	return BlockContext{BlockNumber: blockNumber, HashASCII: hashASCII, Difficulty: difficulty}, nil
}

// drainGPUTelemetry discards tick-time and best-candidate updates on the
// GPU path: a single worker has no cross-worker best to merge, and this
// facade has no telemetry sink wired in. It exists as the hook future
// callers can replace once one is needed.
func drainGPUTelemetry(times <-chan time.Duration, best <-chan BestCandidate) {
	for {
		select {
		case <-times:
		case <-best:
		default:
			return
		}
	}
}

package pow

import "errors"

// Sentinel errors for the solver's fatal error kinds. TransientChainError
// is not listed here: it lives in package chainclient, which is the
// component that actually retries and eventually gives up.
var (
	// ErrUnavailableAccelerator is returned when cuda is requested but no
	// GPU build tag / device is available. It is fatal and is never
	// downgraded to a CPU run.
	ErrUnavailableAccelerator = errors.New("pow: cuda accelerator unavailable")

	// ErrLogicBug marks an invariant violation: a torn BlockState
	// snapshot, or a worker that failed to observe the stop signal within
	// one tick. There is no recovery path; callers should treat it as a
	// crash, not a retryable condition.
	ErrLogicBug = errors.New("pow: internal invariant violated")

	// ErrNoWorkers is returned by CreatePOW's GPU path when its single
	// worker exits (for example after a failed kernel launch) without a
	// solution. The CPU Coordinator does not return it.
	ErrNoWorkers = errors.New("pow: all workers exited, no progress possible")
)

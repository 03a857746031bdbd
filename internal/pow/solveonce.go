package pow

import "context"

// SolveOnce searches a single contiguous nonce range against one fixed
// BlockContext, starting at startNonce, stopping only on a solution or
// ctx cancellation. It is a debugging and benchmarking helper: unlike
// CreatePOW it does not poll the chain for block turnover or wallet
// registration, so callers that want a real registration run should use
// CreatePOW instead.
func SolveOnce(ctx context.Context, ctxBlock BlockContext, startNonce uint64) (*Solution, error) {
	nonce := startNonce
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		seal := Seal(nonce, ctxBlock.HashASCII)
		if Meets(seal, ctxBlock.Difficulty) {
			return &Solution{
				Nonce:       nonce,
				BlockNumber: ctxBlock.BlockNumber,
				Difficulty:  ctxBlock.Difficulty,
				Seal:        seal,
			}, nil
		}
		nonce++
	}
}

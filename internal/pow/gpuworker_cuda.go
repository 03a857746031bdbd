//go:build cuda

package pow

/*
#cgo LDFLAGS: -lcudart -lpowseal_cuda
#include <stdint.h>
#include "powseal_cuda.h"
*/
import "C"

import (
	"fmt"
	"time"
	"unsafe"
)

type cudaLauncher struct {
	deviceID int
}

func newGPULauncher(cfg Config) (gpuLauncher, error) {
	if C.powseal_cuda_init(C.int(cfg.DeviceID)) != 0 {
		return nil, fmt.Errorf("%w: device %d init failed", ErrUnavailableAccelerator, cfg.DeviceID)
	}
	return &cudaLauncher{deviceID: cfg.DeviceID}, nil
}

// launchBatch runs req.Count consecutive nonces as one kernel launch of
// ThreadsPerBlock threads per block, each thread owning one nonce. The
// result carries any outright solution; a near-miss is copied out only
// when the device sets has_margin, which the reference kernel in
// powseal_cuda.cu never does.
func (l *cudaLauncher) launchBatch(req gpuBatchRequest) (gpuBatchResult, error) {
	if len(req.Difficulty) != 32 {
		return gpuBatchResult{}, fmt.Errorf("pow: difficulty must be 32 bytes, got %d", len(req.Difficulty))
	}

	hashPtr := (*C.uint8_t)(unsafe.Pointer(&req.HashASCII[0]))
	diffPtr := (*C.uint8_t)(unsafe.Pointer(&req.Difficulty[0]))

	var out C.powseal_result_t
	start := time.Now()
	status := C.powseal_cuda_launch(
		C.uint64_t(req.Start),
		C.uint64_t(req.Count),
		hashPtr, C.size_t(len(req.HashASCII)),
		diffPtr,
		C.int(req.ThreadsPerBlock),
		&out,
	)
	elapsed := time.Since(start)
	if status != 0 {
		return gpuBatchResult{}, fmt.Errorf("%w: kernel launch failed with status %d", ErrUnavailableAccelerator, status)
	}

	result := gpuBatchResult{
		Found:   out.found != 0,
		Nonce:   uint64(out.nonce),
		Elapsed: elapsed,
	}
	for i := range result.Seal {
		result.Seal[i] = byte(out.seal[i])
	}
	if out.has_margin != 0 {
		margin := make([]byte, 48)
		for i := range margin {
			margin[i] = byte(out.best_margin[i])
		}
		result.BestMargin = margin
		for i := range result.BestSeal {
			result.BestSeal[i] = byte(out.best_seal[i])
		}
	}
	return result, nil
}

func (l *cudaLauncher) release() {
	C.powseal_cuda_reset(C.int(l.deviceID))
}

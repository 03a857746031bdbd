//go:build !linux

package pow

import "runtime"

// schedulableCPUCount falls back to the total logical CPU count on
// platforms without a cgroup/cpuset affinity concept to query.
func schedulableCPUCount() int {
	return runtime.NumCPU()
}

//go:build linux

package pow

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// schedulableCPUCount returns the number of CPUs this process is actually
// allowed to run on, rather than the host's total CPU count: under a
// cgroup/cpuset restriction the two can differ widely, and a worker pool
// sized off the host total would oversubscribe the cores the process can
// actually use.
func schedulableCPUCount() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

package montecarlo

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/exp/rand"
)

// DefaultWorkers is the number of logical CPUs.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

type span struct {
	worker int
	lo, hi int
	seed   uint64
}

// partition splits [0, m) into contiguous ranges, one per worker, each with
// its own seed drawn from a master generator. The same (seed, workers)
// pair always yields the same spans.
func partition(m, workers int, seed uint64) []span {
	if workers < 1 {
		workers = 1
	}
	if workers > m {
		workers = m
	}

	master := rand.New(rand.NewSource(seed))
	chunk := (m + workers - 1) / workers

	spans := make([]span, 0, workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= m {
			break
		}
		hi := lo + chunk
		if hi > m {
			hi = m
		}
		spans = append(spans, span{worker: w, lo: lo, hi: hi, seed: master.Uint64()})
	}
	return spans
}

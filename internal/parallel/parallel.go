// Package parallel provides worker fan-out helpers for CPU kernels.
package parallel

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Config controls how For splits work across goroutines.
type Config struct {
	Enabled      bool // run sequentially when false
	NumWorkers   int  // goroutines to fan out across
	MinChunkSize int  // smallest per-goroutine range worth spawning for
}

// DefaultConfig returns sensible defaults based on the detected CPU.
// The logical core count comes from CPUID, with runtime.NumCPU as the
// fallback when detection reports nothing (VMs, exotic platforms).
func DefaultConfig() Config {
	n := cpuid.CPU.LogicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // below this, spawn overhead beats the win
	}
}

// For runs f(i) for every i in [0, n), fanning the range out across worker
// goroutines when it is large enough to cover the spawn overhead. Runs
// sequentially when parallelism is disabled or n is below MinChunkSize.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	// Cap the worker count so every goroutine gets at least MinChunkSize
	// items.
	workers := cfg.NumWorkers
	if byChunk := (n + cfg.MinChunkSize - 1) / cfg.MinChunkSize; workers > byChunk {
		workers = byChunk
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(start int) {
			defer wg.Done()
			for i, end := start, min(start+chunk, n); i < end; i++ {
				f(i)
			}
		}(w * chunk)
	}
	wg.Wait()
}

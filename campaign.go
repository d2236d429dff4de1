package apat

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Job is one unit of campaign work: a named sequence to scan against a
// Runner's pattern.
type Job struct {
	Name string
	Seq  *Sequence
}

// Result is a Job's scan outcome.
type Result struct {
	Name string
	Hits []Hit
	Err  error
}

// Stats accumulates a Runner's progress. All fields are updated with
// atomic operations and may be read concurrently with a running campaign.
type Stats struct {
	Scanned int64
	Hits    int64
}

// String renders Stats with thousands separators, in the spirit of
// utils.go's PrintMemory diagnostic output.
func (s *Stats) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d sequences scanned, %d hits found", atomic.LoadInt64(&s.Scanned), atomic.LoadInt64(&s.Hits))
}

// Runner fans one compiled Pattern out over many Sequences concurrently.
// A Pattern is immutable and safe to share across goroutines (spec.md
// §5); a Sequence and its hit stacks are not, so each Job must carry
// its own Sequence. Running N jobs concurrently through one Runner is
// exactly the "same pattern, many sequences" case spec.md §5 sanctions.
type Runner struct {
	Pattern *Pattern
	Workers int
}

// NewRunner sizes a Runner's worker pool from the host's logical cores,
// mirroring SetTunings's nCPU/cpuid-based sizing in utils.go, capped so
// the pool never outgrows the host's memory (one worker per 256MiB,
// floor of 1). Pass workers > 0 to bypass autosizing.
func NewRunner(p *Pattern, workers int) *Runner {
	if workers <= 0 {
		n := runtime.NumCPU()
		if cpuid.CPU.LogicalCores > 0 && cpuid.CPU.LogicalCores < n {
			n = cpuid.CPU.LogicalCores
		}
		if byMem := int(memory.TotalMemory() / (256 * 1024 * 1024)); byMem > 0 && byMem < n {
			n = byMem
		}
		if n < 1 {
			n = 1
		}
		workers = n
	}
	return &Runner{Pattern: p, Workers: workers}
}

// Run scans every Job arriving on jobs against r.Pattern across
// r.Workers goroutines, streaming one Result per Job on the returned
// channel. The channel closes once jobs is drained and every worker has
// exited, or ctx is canceled. Each Job's whole sequence (including any
// circular pad) is scanned.
func (r *Runner) Run(ctx context.Context, jobs <-chan Job) (<-chan Result, *Stats) {
	stats := &Stats{}
	results := make(chan Result, r.Workers)

	var wg sync.WaitGroup
	wg.Add(r.Workers)
	for i := 0; i < r.Workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-jobs:
					if !ok {
						return
					}
					hits, err := r.Pattern.Scan(job.Seq, 0, job.Seq.totalLen())
					atomic.AddInt64(&stats.Scanned, 1)
					if err == nil {
						atomic.AddInt64(&stats.Hits, int64(len(hits)))
					}
					select {
					case results <- Result{Name: job.Name, Hits: hits, Err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, stats
}

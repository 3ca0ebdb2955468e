// Package runner implements the workload partitioning and concurrent execution
// engine: key generation, pre-fill for read workloads, the fixed pool of
// workers, and throughput aggregation.
package runner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ZeroLiu2018/mcbench/config"
	"github.com/ZeroLiu2018/mcbench/constants"
	"github.com/ZeroLiu2018/mcbench/logger"
	"github.com/ZeroLiu2018/mcbench/store"
)

// Runner coordinates a single benchmark run against an established store
// handle. The handle, key sequence and payload are shared read-only across all
// workers; all mutation happens remotely inside the store.
type Runner struct {
	cfg *config.BenchConfig
	st  store.Store
	log *logger.Logger
	rg  *rand.Rand
}

func New(cfg *config.BenchConfig, st store.Store, log *logger.Logger) *Runner {
	return &Runner{
		cfg: cfg,
		st:  st,
		log: log,
		rg:  rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Run executes the configured workload and returns the aggregate result. The
// timing spans the entire batch of concurrent workers, so the reported
// throughput reflects the slowest worker's completion. If any worker fails,
// Run waits for all of them to terminate, then returns the first error and no
// result: a throughput number is only ever reported for a fully completed
// workload.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	total := r.cfg.TotalRequests
	op := r.cfg.Operation

	ks := NewKeySpace(total, r.cfg.ValueSize, r.rg)

	// Pre-fill so get/mixed workers never read a missing key. Single-threaded
	// on purpose: loading cost must not leak into the measured phase.
	if op == constants.OP_GET || op == constants.OP_MIXED {
		r.log.Printf("Pre-filling %d keys before the timed run", total)
		for _, key := range ks.Keys {
			if err := r.st.Put(ctx, key, ks.Value); err != nil {
				return nil, fmt.Errorf("pre-fill put %s: %w", key, err)
			}
		}
	}

	parts := PartitionWorkload(total, r.cfg.Concurrency)

	r.log.Printf("Starting %d workers for %d %s requests", len(parts), total, op)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range parts {
		p := p
		g.Go(func() error {
			return runWorker(gctx, r.st, ks, p, op)
		})
	}
	// The join barrier observes every worker's termination, success or failure,
	// before the end timestamp is read.
	err := g.Wait()
	duration := time.Since(start)

	if err != nil {
		return nil, err
	}

	ops := total
	if op == constants.OP_MIXED {
		ops = 2 * total
	}

	res := &Result{
		RunID:       uuid.New().String(),
		Operation:   op,
		Concurrency: r.cfg.Concurrency,
		Requests:    total,
		ValueSize:   r.cfg.ValueSize,
		Operations:  ops,
		Duration:    duration,
		Throughput:  float64(ops) / duration.Seconds(),
	}
	r.log.Printf("Run %s completed: %d ops in %v", res.RunID, res.Operations, res.Duration)
	return res, nil
}

// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pool implements a process-wide worker pool for the distance kernels.
// jobs run to completion on a fixed set of workers; each worker carries a
// stable index so callers can keep worker-local accumulators and merge them
// once after waiting
package pool

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
)

// Job is a unit of work. worker is the index of the executing worker,
// 0 ≤ worker < NumWorkers
type Job func(worker int)

// Future signals the completion of a submitted job
type Future struct {
	done chan struct{}
}

// Wait blocks until the job has finished
func (o *Future) Wait() { <-o.done }

// Pool runs jobs on a fixed number of workers
type Pool struct {
	nw   int
	jobs chan task
	once sync.Once
}

type task struct {
	job Job
	fut *Future
}

// New creates a pool with the given number of workers. n < 1 selects
// hardware concurrency minus one (at least one)
func New(n int) (o *Pool) {
	if n < 1 {
		n = runtime.NumCPU() - 1
		if n < 1 {
			n = 1
		}
	}
	o = &Pool{nw: n, jobs: make(chan task, 4*n)}
	for w := 0; w < n; w++ {
		go o.work(w)
	}
	return
}

// NumWorkers returns the number of workers
func (o *Pool) NumWorkers() int { return o.nw }

// Submit enqueues a job and returns its future
func (o *Pool) Submit(job Job) *Future {
	if job == nil {
		chk.Panic("pool: cannot submit nil job")
	}
	fut := &Future{done: make(chan struct{})}
	o.jobs <- task{job: job, fut: fut}
	return fut
}

// WaitAll blocks until all given futures have completed
func WaitAll(futures []*Future) {
	for _, f := range futures {
		f.Wait()
	}
}

func (o *Pool) work(w int) {
	for t := range o.jobs {
		t.job(w)
		close(t.fut.done)
	}
}

// Close stops the workers after the queued jobs drain. the process-wide pool
// is never closed; Close exists for tests
func (o *Pool) Close() {
	o.once.Do(func() { close(o.jobs) })
}

// the process-wide default pool, created on first use
var (
	defaultPool *Pool
	defaultOnce sync.Once
)

// Default returns the process-wide pool
func Default() *Pool {
	defaultOnce.Do(func() { defaultPool = New(0) })
	return defaultPool
}

// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"github.com/thinhdanggroup/executor"
	"runtime"
	"sync/atomic"
)

// Result is the verdict of a password at position Index of the evaluated corpus.
type Result struct {
	Index    int    `json:"index"`
	Password string `json:"password"`
	Verdict
}

type BatchOptions struct {
	// Workers evaluating chunks concurrently. If <= 0, defaults to the number of logical processors.
	Workers int
	// ChunkSize is the number of passwords handed to a worker at a time. Defaults to 4096.
	ChunkSize int
	// OnProgress, if set, is called with the number of passwords evaluated so far after every chunk.
	// It may be called from several goroutines at once.
	OnProgress func(done int)
}

const defaultChunkSize = 4 * 1024

// EvaluateAll evaluates every password of the corpus. Chunks of the corpus are evaluated concurrently,
// the results are always in corpus order.
func (e *Evaluator) EvaluateAll(passwords []string, opts BatchOptions) ([]Result, error) {
	results := make([]Result, len(passwords))
	if len(passwords) == 0 {
		return results, nil
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Not worth spinning up the pool for a single chunk.
	if workers == 1 || len(passwords) <= chunkSize {
		e.evaluateChunk(passwords, results, 0, len(passwords))
		if opts.OnProgress != nil {
			opts.OnProgress(len(passwords))
		}
		return results, nil
	}

	pool, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * workers,
		NumWorkers:    workers,
	})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	var done int64
	task := func(start, end int) {
		// Every chunk owns the [start, end) slots of results, no locking needed.
		e.evaluateChunk(passwords, results, start, end)
		n := atomic.AddInt64(&done, int64(end-start))
		if opts.OnProgress != nil {
			opts.OnProgress(int(n))
		}
	}

	for start := 0; start < len(passwords); start += chunkSize {
		end := min(start+chunkSize, len(passwords))
		if err = pool.Publish(task, start, end); err != nil {
			return nil, err
		}
	}

	pool.Wait()
	return results, nil
}

func (e *Evaluator) evaluateChunk(passwords []string, results []Result, start, end int) {
	for i := start; i < end; i++ {
		results[i] = Result{Index: i, Password: passwords[i], Verdict: e.Evaluate(passwords[i])}
	}
}

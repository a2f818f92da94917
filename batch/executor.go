// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batch evaluates many formula requests concurrently against one
// shared Orchestrator, demonstrating spec §5's guarantee that the
// Function Registry, Unit Resolver, and predefined-constants table are
// safely shareable across concurrent requests without synchronization:
// formula requests are embarrassingly parallel, unlike protocompile's
// file-dependency-graph compilation, so the executor here needs no
// dependency tracking, only a bound on fan-out.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/openformula/formulacore"
)

// Executor runs many Requests against one Orchestrator, bounded by a
// weighted semaphore the same way protocompile's compiler.go bounds
// parallel file compilation.
type Executor struct {
	Core           *formulacore.Orchestrator
	MaxParallelism int
}

// New constructs an Executor over core. If maxParallelism is <= 0, it
// defaults to GOMAXPROCS capped at NumCPU, exactly as the teacher's
// executor picks its default parallelism.
func New(core *formulacore.Orchestrator, maxParallelism int) *Executor {
	return &Executor{Core: core, MaxParallelism: maxParallelism}
}

func (e *Executor) parallelism() int64 {
	if e.MaxParallelism > 0 {
		return int64(e.MaxParallelism)
	}
	par := runtime.GOMAXPROCS(-1)
	if cpus := runtime.NumCPU(); par > cpus {
		par = cpus
	}
	return int64(par)
}

// EvaluateAll validates every request in reqs concurrently, bounded by
// the executor's parallelism, and returns one Response per request in
// the same order as reqs. It returns early with ctx.Err() if ctx is
// canceled before every result is ready.
func (e *Executor) EvaluateAll(ctx context.Context, reqs []formulacore.Request) ([]formulacore.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sem := semaphore.NewWeighted(e.parallelism())
	out := make([]formulacore.Response, len(reqs))

	done := make(chan struct{}, len(reqs))
	for i, req := range reqs {
		i, req := i, req
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func() {
			defer sem.Release(1)
			out[i] = e.Core.Validate(req)
			done <- struct{}{}
		}()
	}

	for range reqs {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}

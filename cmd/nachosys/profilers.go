package main

import (
	"context"
	"log/slog"
	"os"
	"runtime/pprof"
)

type profileKind int

const (
	profileCPU profileKind = iota
	profileAllocs
)

// profiler writes a CPU profile covering its lifetime, or an allocation
// profile taken when it is stopped. An empty path disables it.
//
//nolint:containedctx
type profiler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

func newProfiler(ctx context.Context, kind profileKind, path string) *profiler {
	prof := &profiler{}
	prof.ctx, prof.cancel = context.WithCancel(ctx)
	prof.doneChan = make(chan struct{})

	go prof.profile(kind, path)

	return prof
}

func (prof *profiler) profile(kind profileKind, path string) {
	defer close(prof.doneChan)

	if path == "" {
		return
	}

	if kind == profileAllocs {
		<-prof.ctx.Done()
	}

	f, err := os.Create(path)
	if err != nil {
		slog.Error("Could not create profile.", "path", path, "err", err)

		return
	}
	defer f.Close()

	switch kind {
	case profileCPU:
		if err := pprof.StartCPUProfile(f); err != nil {
			slog.Error("Could not start cpu profile.", "err", err)

			return
		}
		defer pprof.StopCPUProfile()

		<-prof.ctx.Done()
	case profileAllocs:
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			slog.Error("Could not write allocs profile.", "err", err)
		}
	}
}

func (prof *profiler) Stop() {
	prof.cancel()
	<-prof.doneChan
}

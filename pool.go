package web2pdf

import (
	"context"
	"runtime"
)

// Gate sizing constants.
const (
	// MinGateSize ensures at least one render can proceed.
	MinGateSize = 1

	// MaxGateSize caps concurrent browser instances to limit memory
	// (~200MB each).
	MaxGateSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RenderGate bounds the number of render sessions in flight. The
// baseline deployment runs without one (one browser per request, no
// admission control beyond the rate limiter); a gate adds backpressure
// when that model overwhelms the host.
//
// A nil *RenderGate is valid and admits everything.
type RenderGate struct {
	sem chan struct{}
}

// NewRenderGate creates a gate admitting at most n concurrent sessions.
// n < 1 returns nil (unbounded).
func NewRenderGate(n int) *RenderGate {
	if n < 1 {
		return nil
	}
	return &RenderGate{sem: make(chan struct{}, n)}
}

// Acquire blocks until a session slot is free or ctx is done.
func (g *RenderGate) Acquire(ctx context.Context) error {
	if g == nil {
		return nil
	}
	select {
	case g.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a session slot. Must be called exactly once per
// successful Acquire.
func (g *RenderGate) Release() {
	if g == nil {
		return
	}
	<-g.sem
}

// Size returns the gate capacity, 0 when unbounded.
func (g *RenderGate) Size() int {
	if g == nil {
		return 0
	}
	return cap(g.sem)
}

// ResolveGateSize determines the gate capacity when bounding is
// requested. Priority: explicit value > GOMAXPROCS-based calculation
// (adjusted by automaxprocs for containers).
func ResolveGateSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinGateSize {
		return MinGateSize
	}
	if n > MaxGateSize {
		return MaxGateSize
	}
	return n
}

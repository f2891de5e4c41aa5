// Package leaktest catches goroutines left running by concurrency tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// SettleTimeout bounds how long Check waits for stragglers to exit
const SettleTimeout = 2 * time.Second

const pollInterval = 10 * time.Millisecond

// GoroutineChecker records a goroutine baseline and later verifies the
// count has returned to it
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test unless the goroutine count drops to within tolerance
// of the baseline before SettleTimeout. Pool workers and timers wind down
// asynchronously, so it polls rather than sampling once.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after, ok := settle(g.before+tolerance, SettleTimeout)
	if !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
			g.before, after, after-g.before, tolerance)
	}
}

// Verify records a baseline now and checks it when the test finishes
func Verify(t testing.TB, tolerance int) {
	t.Helper()
	g := NewGoroutineChecker(t)
	t.Cleanup(func() { g.Check(tolerance) })
}

// Run executes fn and fails if it leaves goroutines behind
func Run(t testing.TB, fn func()) {
	t.Helper()
	g := NewGoroutineChecker(t)
	fn()
	g.Check(0)
}

func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}

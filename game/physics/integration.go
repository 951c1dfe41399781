package physics

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Ticker is anything that advances one fixed simulation step
type Ticker interface {
	Tick(dt float64)
}

// Integration drives a Ticker from wall-clock time using fixed steps
type Integration struct {
	target      Ticker
	step        float64
	maxSubSteps int
	rate        time.Duration

	mutex      sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
	done       chan struct{}

	accumulator float64
	steps       uint64
}

// NewIntegration creates a loop that runs target at tickRate steps per second
func NewIntegration(target Ticker, tickRate int, maxSubSteps int) *Integration {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxSubSteps <= 0 {
		maxSubSteps = 5
	}
	return &Integration{
		target:      target,
		step:        1 / float64(tickRate),
		maxSubSteps: maxSubSteps,
		rate:        time.Second / time.Duration(tickRate),
	}
}

// Start begins the simulation loop. It stops on Stop or when ctx is done.
func (pi *Integration) Start(ctx context.Context) {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	if pi.isRunning {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	pi.cancelFunc = cancel
	pi.done = make(chan struct{})
	pi.isRunning = true

	go pi.runLoop(loopCtx, pi.done)
	log.Info("Physics integration started", "step", pi.step)
}

// Stop halts the loop and waits for it to exit
func (pi *Integration) Stop() {
	pi.mutex.Lock()
	if !pi.isRunning {
		pi.mutex.Unlock()
		return
	}
	pi.isRunning = false
	pi.cancelFunc()
	done := pi.done
	pi.mutex.Unlock()

	<-done
	log.Info("Physics integration stopped", "steps", pi.Steps())
}

// IsRunning reports whether the loop is active
func (pi *Integration) IsRunning() bool {
	pi.mutex.RLock()
	defer pi.mutex.RUnlock()
	return pi.isRunning
}

// Steps is the number of fixed steps run so far
func (pi *Integration) Steps() uint64 {
	pi.mutex.RLock()
	defer pi.mutex.RUnlock()
	return pi.steps
}

func (pi *Integration) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(pi.rate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			pi.mutex.Lock()
			pi.isRunning = false
			pi.mutex.Unlock()
			return
		case now := <-ticker.C:
			pi.Advance(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Advance feeds elapsed wall time into the accumulator and runs as many
// fixed steps as fit, up to the sub-step limit. It returns the steps run.
func (pi *Integration) Advance(elapsed float64) int {
	pi.mutex.Lock()
	pi.accumulator += elapsed
	limit := pi.step * float64(pi.maxSubSteps)
	if pi.accumulator > limit {
		log.Debug("Physics falling behind, dropping time", "behind", pi.accumulator-limit)
		pi.accumulator = limit
	}
	n := 0
	for pi.accumulator >= pi.step {
		pi.accumulator -= pi.step
		n++
	}
	pi.steps += uint64(n)
	total := pi.steps
	pi.mutex.Unlock()

	for i := 0; i < n; i++ {
		pi.target.Tick(pi.step)
	}

	if n > 0 && total%600 < uint64(n) {
		log.Debug("Physics heartbeat", "steps", total)
	}
	return n
}

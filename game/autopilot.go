package game

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Autopilot drives the vehicle at the ball on its own. It only reads
// snapshots and submits intents, the same way a player would.
type Autopilot struct {
	manager   *Manager
	mutex     sync.Mutex
	interval  time.Duration
	isRunning bool
	quit      chan struct{}

	lastThrottle ThrottleInput
	lastSteer    SteerInput
	aimTolerance float64
}

// NewAutopilot creates an autopilot that re-evaluates every interval
func NewAutopilot(manager *Manager, interval time.Duration) *Autopilot {
	return &Autopilot{
		manager:      manager,
		interval:     interval,
		aimTolerance: 0.1,
	}
}

// Start begins the control loop
func (a *Autopilot) Start() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.isRunning {
		return
	}
	a.isRunning = true
	a.quit = make(chan struct{})

	go a.run(a.quit)
	log.Info("Autopilot started", "interval", a.interval)
}

// Stop halts the control loop and releases the controls
func (a *Autopilot) Stop() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if !a.isRunning {
		return
	}
	close(a.quit)
	a.isRunning = false

	a.manager.Submit(Intent{Kind: IntentThrottle, Throttle: ThrottleNone})
	a.manager.Submit(Intent{Kind: IntentSteer, Steer: SteerNone})
	log.Info("Autopilot stopped")
}

func (a *Autopilot) run(quit chan struct{}) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			a.update()
		}
	}
}

func (a *Autopilot) update() {
	throttle, steer := a.decide(a.manager.GetState())

	a.mutex.Lock()
	defer a.mutex.Unlock()
	if !a.isRunning {
		return
	}
	if throttle != a.lastThrottle {
		a.manager.Submit(Intent{Kind: IntentThrottle, Throttle: throttle})
		a.lastThrottle = throttle
	}
	if steer != a.lastSteer {
		a.manager.Submit(Intent{Kind: IntentSteer, Steer: steer})
		a.lastSteer = steer
	}
}

// decide picks the held inputs for a snapshot: face the ball, then drive at it
// while a hit can still count
func (a *Autopilot) decide(snap Snapshot) (ThrottleInput, SteerInput) {
	if snap.Session.Status != StatusReady {
		return ThrottleNone, SteerNone
	}

	dx := snap.Ball.Position.X - snap.Vehicle.Position.X
	dz := snap.Ball.Position.Z - snap.Vehicle.Position.Z
	if dx == 0 && dz == 0 {
		return ThrottleNone, SteerNone
	}

	diff := AngleDelta(snap.Vehicle.Yaw, math.Atan2(dx, dz))
	steer := SteerNone
	switch {
	case diff > a.aimTolerance:
		steer = SteerLeft
	case diff < -a.aimTolerance:
		steer = SteerRight
	}

	if math.Abs(diff) > math.Pi/2 {
		// turn in place before charging
		return ThrottleNone, steer
	}
	return ThrottleForward, steer
}

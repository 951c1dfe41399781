package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StuckDetector watches for a vehicle that is under throttle but not going anywhere.
// It samples position at a fixed interval of sim time.
type StuckDetector struct {
	cfg StuckConfig

	tracking       bool
	lastSampleTime float64
	lastSample     mgl64.Vec3
	lowSince       float64
	low            bool
	stuck          bool
	displacement   float64
}

// NewStuckDetector creates a detector with the given thresholds
func NewStuckDetector(cfg StuckConfig) *StuckDetector {
	return &StuckDetector{cfg: cfg}
}

// Update feeds one tick of state and reports whether the vehicle is stuck
func (d *StuckDetector) Update(now float64, pos mgl64.Vec3, throttle float64) bool {
	if math.Abs(throttle) <= d.cfg.ActivationThrottle {
		d.Reset()
		return false
	}

	if !d.tracking {
		d.tracking = true
		d.lastSample = pos
		d.lastSampleTime = now
		return d.stuck
	}

	if now-d.lastSampleTime < d.cfg.SampleInterval {
		return d.stuck
	}

	d.displacement = planarDistance(pos, d.lastSample)
	switch {
	case d.displacement < d.cfg.StuckDistance:
		if !d.low {
			d.low = true
			d.lowSince = d.lastSampleTime
		}
		if now-d.lowSince > d.cfg.Timeout && math.Abs(throttle) > d.cfg.TriggerThrottle {
			d.stuck = true
		}
	case d.displacement > d.cfg.RecoveryDistance:
		d.stuck = false
		d.low = false
	default:
		d.low = false
	}

	d.lastSample = pos
	d.lastSampleTime = now
	return d.stuck
}

// Stuck reports the current flag
func (d *StuckDetector) Stuck() bool {
	return d.stuck
}

// Displacement is the distance covered over the last sample interval
func (d *StuckDetector) Displacement() float64 {
	return d.displacement
}

// Reset forgets all samples and clears the flag
func (d *StuckDetector) Reset() {
	d.tracking = false
	d.low = false
	d.stuck = false
	d.displacement = 0
}

func planarDistance(a, b mgl64.Vec3) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return math.Sqrt(dx*dx + dz*dz)
}

package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Transition is one status change
type Transition struct {
	From Status
	To   Status
}

// Session is the round state machine. It has no timers of its own: Tick is
// called once per step with the current sim time and ball signals.
type Session struct {
	cfg SessionConfig

	status      Status
	statusSince float64
	now         float64
	hitCount    int
	power       int
	angle       float64

	celebrationDone bool
}

// NewSession creates a session in the Ready state
func NewSession(cfg SessionConfig) *Session {
	return &Session{
		cfg:    cfg,
		status: StatusReady,
		power:  cfg.DefaultPower,
		angle:  cfg.DefaultAngle,
	}
}

// Status returns the current status
func (s *Session) Status() Status {
	return s.status
}

// HitCount returns the number of counted hits this round
func (s *Session) HitCount() int {
	return s.hitCount
}

// Aim returns the current swing controls as a shot
func (s *Session) Aim() ShotIntent {
	return ShotIntent{Power: s.power, AngleDegrees: s.angle}
}

// AdjustPower nudges swing power by steps of the configured size
func (s *Session) AdjustPower(steps int) {
	s.power = clampInt(s.power+steps*s.cfg.PowerStep, 0, 100)
}

// AdjustAngle nudges swing angle by steps of the configured size
func (s *Session) AdjustAngle(steps int) {
	a := s.angle + float64(steps)*s.cfg.AngleStep
	if a < -180 {
		a = -180
	}
	if a > 180 {
		a = 180
	}
	s.angle = a
}

// SetAim replaces power and angle, clamping both
func (s *Session) SetAim(shot ShotIntent) {
	shot = shot.Clamped()
	s.power = shot.Power
	s.angle = shot.AngleDegrees
}

// Swing starts a player swing. Only allowed in Ready.
func (s *Session) Swing() (Transition, bool) {
	if s.status != StatusReady {
		return Transition{}, false
	}
	return s.set(StatusSwinging), true
}

// RegisterHit counts a vehicle hit and starts the ball's flight. Only allowed in Ready.
func (s *Session) RegisterHit() (Transition, bool) {
	if s.status != StatusReady {
		return Transition{}, false
	}
	s.hitCount++
	return s.set(StatusSwinging), true
}

// Hole ends the round in celebration. Only allowed while the ball is moving.
func (s *Session) Hole() (Transition, bool) {
	if s.status != StatusMoving {
		return Transition{}, false
	}
	return s.set(StatusCelebration), true
}

// Advance sets the sim time used to stamp transitions made between ticks
func (s *Session) Advance(now float64) {
	s.now = now
}

// Tick advances to now and applies the ball-driven transitions.
// ballNearHole is only consulted when the ball comes to rest.
func (s *Session) Tick(now float64, ballMoving, ballNearHole bool) []Transition {
	s.now = now
	var out []Transition

	switch s.status {
	case StatusSwinging:
		if ballMoving {
			out = append(out, s.set(StatusMoving))
		} else if now-s.statusSince >= s.cfg.SettleDelay {
			out = append(out, s.set(StatusReady))
		}
	case StatusMoving:
		if !ballMoving {
			if ballNearHole {
				out = append(out, s.set(StatusCelebration))
			} else {
				out = append(out, s.set(StatusReady))
			}
		}
	case StatusCelebration:
		if now-s.statusSince >= s.cfg.CelebrationDuration {
			s.hitCount = 0
			s.celebrationDone = true
			out = append(out, s.set(StatusReady))
		}
	}
	return out
}

// CelebrationFinished reports, once, that a celebration just ended and the
// ball should go back to the tee
func (s *Session) CelebrationFinished() bool {
	done := s.celebrationDone
	s.celebrationDone = false
	return done
}

// Reset returns to Ready with a fresh count and default aim
func (s *Session) Reset() (Transition, bool) {
	s.hitCount = 0
	s.power = s.cfg.DefaultPower
	s.angle = s.cfg.DefaultAngle
	s.celebrationDone = false
	if s.status == StatusReady {
		return Transition{}, false
	}
	return s.set(StatusReady), true
}

func (s *Session) set(to Status) Transition {
	t := Transition{From: s.status, To: to}
	s.status = to
	s.statusSince = s.now
	log.Info("Session status changed", "from", t.From, "to", t.To, "hits", s.hitCount)
	return t
}

// State returns the published view
func (s *Session) State() SessionState {
	return SessionState{
		Status:     s.status,
		HitCount:   s.hitCount,
		ScoreLabel: ScoreLabel(s.hitCount),
		Power:      s.power,
		Angle:      s.angle,
	}
}

// ScoreLabel names a hit count in golf terms
func ScoreLabel(hits int) string {
	switch {
	case hits <= 0:
		return ""
	case hits == 1:
		return "Hole in One"
	case hits == 2:
		return "Birdie"
	case hits == 3:
		return "Par"
	case hits == 4:
		return "Bogey"
	case hits == 5:
		return "Double Bogey"
	case hits == 6:
		return "Triple Bogey"
	default:
		return fmt.Sprintf("+%d", hits-3)
	}
}

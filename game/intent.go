package game

import "fmt"

// IntentKind names an input the core understands
type IntentKind string

const (
	IntentThrottle      IntentKind = "throttle"
	IntentSteer         IntentKind = "steer"
	IntentSwing         IntentKind = "swing"
	IntentAdjustPower   IntentKind = "adjustPower"
	IntentAdjustAngle   IntentKind = "adjustAngle"
	IntentResetPosition IntentKind = "resetPosition"
	IntentResetBall     IntentKind = "resetBall"
	IntentZoom          IntentKind = "zoom"
	IntentPan           IntentKind = "pan"
	IntentResetCamera   IntentKind = "resetCamera"
)

// Intent is one input from the player. Throttle and steer are level-triggered:
// the value holds until the next intent of the same kind. The rest fire once.
type Intent struct {
	Kind     IntentKind    `json:"kind"`
	Throttle ThrottleInput `json:"throttle,omitempty"`
	Steer    SteerInput    `json:"steer,omitempty"`
	// Shot is used by swing when UseAim is false
	Shot   ShotIntent `json:"shot,omitempty"`
	UseAim bool       `json:"useAim,omitempty"`
	Steps  int        `json:"steps,omitempty"`
	Zoom   float64    `json:"zoom,omitempty"`
	PanX   float64    `json:"panX,omitempty"`
	PanY   float64    `json:"panY,omitempty"`
}

// ParseThrottle maps a wire value to a throttle input
func ParseThrottle(s string) (ThrottleInput, error) {
	switch s {
	case "forward":
		return ThrottleForward, nil
	case "reverse":
		return ThrottleReverse, nil
	case "", "none":
		return ThrottleNone, nil
	}
	return ThrottleNone, fmt.Errorf("unknown throttle %q", s)
}

// ParseSteer maps a wire value to a steering input
func ParseSteer(s string) (SteerInput, error) {
	switch s {
	case "left":
		return SteerLeft, nil
	case "right":
		return SteerRight, nil
	case "", "none":
		return SteerNone, nil
	}
	return SteerNone, fmt.Errorf("unknown steering %q", s)
}

package routes

import (
	"fmt"

	"github.com/mark3labs/drive-golf/game"
)

func statusText(s game.Status) string {
	switch s {
	case game.StatusReady:
		return "Ready"
	case game.StatusSwinging:
		return "Swinging"
	case game.StatusMoving:
		return "Ball in motion"
	case game.StatusCelebration:
		return "In the hole!"
	}
	return string(s)
}

func hitsText(s game.SessionState) string {
	return fmt.Sprintf("Hits: %d", s.HitCount)
}

func scoreText(s game.SessionState) string {
	if s.ScoreLabel == "" {
		return "-"
	}
	return s.ScoreLabel
}

func lieText(b game.BallState) string {
	lie := string(b.Lie)
	if lie == "" {
		lie = "tee"
	}
	return "Lie: " + lie
}

func aimText(s game.SessionState) string {
	return fmt.Sprintf("Power %d%% / Angle %.0f°", s.Power, s.Angle)
}

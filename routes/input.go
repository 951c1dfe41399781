package routes

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/drive-golf/game"
	"github.com/mark3labs/drive-golf/middleware"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// InputSignals struct for handling DataStar signals
type InputSignals struct {
	Intent   string   `json:"intent"`
	Throttle string   `json:"throttle"`
	Steer    string   `json:"steer"`
	Power    *int     `json:"power"`
	Angle    *float64 `json:"angle"`
	Steps    int      `json:"steps"`
	Zoom     float64  `json:"zoom"`
	PanX     float64  `json:"panX"`
	PanY     float64  `json:"panY"`
}

// ToIntent maps the signals onto a game intent
func (s InputSignals) ToIntent() (game.Intent, error) {
	in := game.Intent{Kind: game.IntentKind(s.Intent)}

	switch in.Kind {
	case game.IntentThrottle:
		t, err := game.ParseThrottle(s.Throttle)
		if err != nil {
			return game.Intent{}, err
		}
		in.Throttle = t
	case game.IntentSteer:
		st, err := game.ParseSteer(s.Steer)
		if err != nil {
			return game.Intent{}, err
		}
		in.Steer = st
	case game.IntentSwing:
		if s.Power == nil && s.Angle == nil {
			in.UseAim = true
			break
		}
		if s.Power == nil || s.Angle == nil {
			return game.Intent{}, fmt.Errorf("swing needs both power and angle")
		}
		in.Shot = game.ShotIntent{Power: *s.Power, AngleDegrees: *s.Angle}
	case game.IntentAdjustPower, game.IntentAdjustAngle:
		if s.Steps == 0 {
			return game.Intent{}, fmt.Errorf("%s needs non-zero steps", in.Kind)
		}
		in.Steps = s.Steps
	case game.IntentZoom:
		in.Zoom = s.Zoom
	case game.IntentPan:
		in.PanX, in.PanY = s.PanX, s.PanY
	case game.IntentResetPosition, game.IntentResetBall, game.IntentResetCamera:
	default:
		return game.Intent{}, fmt.Errorf("unknown intent %q", s.Intent)
	}
	return in, nil
}

func setupInputRoutes(router *router.Router[*core.RequestEvent], gameManager *game.Manager, loop middleware.RunState) error {
	// POST route for player input
	router.POST("/input", func(e *core.RequestEvent) error {
		signals := &InputSignals{}
		if err := datastar.ReadSignals(e.Request, signals); err != nil {
			log.Warn("Error reading signals", "error", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		intent, err := signals.ToIntent()
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		gameManager.Submit(intent)
		log.Debug("Queued intent", "kind", intent.Kind)

		return e.JSON(http.StatusOK, map[string]bool{"success": true})
	}).BindFunc(middleware.RequireRunning(loop))

	return nil
}

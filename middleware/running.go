package middleware

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// RunState reports whether the simulation loop is live
type RunState interface {
	IsRunning() bool
}

// RequireRunning rejects requests while the simulation loop is stopped,
// so input is never queued for a loop that will not drain it
func RequireRunning(state RunState) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if state == nil || !state.IsRunning() {
			return e.JSON(http.StatusServiceUnavailable, map[string]string{"error": "simulation is not running"})
		}
		return e.Next()
	}
}

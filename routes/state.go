package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/drive-golf/game"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"
)

const pollInterval = 100 * time.Millisecond

func setupStateRoutes(ctx context.Context, router *router.Router[*core.RequestEvent], gameManager *game.Manager) error {
	// GET route for gamestate endpoint
	router.GET("/gamestate", func(e *core.RequestEvent) error {
		sse := datastar.NewSSE(e.Response, e.Request)
		reqCtx := e.Request.Context()

		if err := sendState(sse, gameManager.GetState()); err != nil {
			return err
		}

		watcher, err := gameManager.WatchState(reqCtx)
		if err != nil {
			log.Warn("KV watch unavailable, falling back to polling", "error", err)
			return pollState(ctx, reqCtx, sse, gameManager)
		}
		defer watcher.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-reqCtx.Done():
				return nil
			case entry, ok := <-watcher.Updates():
				if !ok {
					return nil
				}
				// nil marks the end of the initial values
				if entry == nil {
					continue
				}
				var snap game.Snapshot
				if err := json.Unmarshal(entry.Value(), &snap); err != nil {
					log.Error("Error unmarshaling game state", "error", err)
					continue
				}
				if err := sendState(sse, snap); err != nil {
					log.Debug("Client went away", "error", err)
					return nil
				}
			}
		}
	})

	// GET route for a one-shot HUD render
	router.GET("/hud", func(e *core.RequestEvent) error {
		return HUD(gameManager.GetState()).Render(e.Request.Context(), e.Response)
	})

	return nil
}

func pollState(ctx, reqCtx context.Context, sse *datastar.ServerSentEventGenerator, gameManager *game.Manager) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var lastTick uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reqCtx.Done():
			return nil
		case <-ticker.C:
			snap := gameManager.GetState()
			if snap.Tick == lastTick {
				continue
			}
			lastTick = snap.Tick
			if err := sendState(sse, snap); err != nil {
				return nil
			}
		}
	}
}

// sendState pushes the snapshot as a signal and re-renders the HUD fragment
func sendState(sse *datastar.ServerSentEventGenerator, snap game.Snapshot) error {
	stateJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error marshaling game state: %v", err)
	}

	if err := sse.MergeSignals([]byte(fmt.Sprintf(`{"gameState": %q}`, string(stateJSON)))); err != nil {
		return fmt.Errorf("error sending game state: %v", err)
	}
	if err := sse.MergeFragmentTempl(HUD(snap)); err != nil {
		return fmt.Errorf("error sending HUD: %v", err)
	}
	return nil
}

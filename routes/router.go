package routes

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/drive-golf/game"
	"github.com/mark3labs/drive-golf/middleware"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
)

// SetupRoutes initializes all routes with the game manager and the loop driving it
func SetupRoutes(ctx context.Context, router *router.Router[*core.RequestEvent], gameManager *game.Manager, loop middleware.RunState) error {

	err := errors.Join(
		setupInputRoutes(router, gameManager, loop),
		setupStateRoutes(ctx, router, gameManager),
	)
	if err != nil {
		return fmt.Errorf("Error: %v", err)
	}

	return nil
}

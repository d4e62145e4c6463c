package main

import (
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/engine"
	"github.com/tracknav/tracknav/pkg/logger"
	"github.com/tracknav/tracknav/pkg/routestore"
)

var (
	routeDir = flag.String("route_dir", "./data/routes", "directory for persisted route records")
	routeId  = flag.String("route_id", "", "id of the stored route to replay")
	interval = flag.Duration("interval", 1*time.Second, "delay between simulated position fixes")
)

// replays a stored route's geometry through the engine as simulated GPS fixes,
// logging every navigation event. Useful for exercising guidance without a
// receiver on the bench.
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if *routeId == "" {
		logger.Fatal("route_id is required")
	}

	store := routestore.New(*routeDir, logger)

	navigationEngine := engine.NewEngine(engine.DefaultConfig(), store, logger)
	if err := navigationEngine.Initialize(); err != nil {
		logger.Fatal("initialize engine", zap.Error(err))
	}
	navigationEngine.SetSimulationMode(true)

	navigationEngine.OnNavigationUpdate(func(update datastructure.NavigationUpdate) {
		logger.Info("navigation update",
			zap.String("type", update.Type.String()),
			zap.String("state", update.Status.State.String()),
			zap.Int("progress", update.Status.Progress),
			zap.Float64("distance_remaining", update.Status.DistanceRemaining),
			zap.Int("time_remaining", update.Status.TimeRemaining),
		)
	})

	if err := navigationEngine.StartNavigationById(*routeId); err != nil {
		logger.Fatal("start navigation", zap.Error(err))
	}

	route, err := store.Load(*routeId)
	if err != nil {
		logger.Fatal("load route", zap.Error(err))
	}

	for _, coord := range route.GetGeometry() {
		navigationEngine.UpdatePosition(
			datastructure.NewPosition(coord.GetLat(), coord.GetLon(), time.Now()))

		status := navigationEngine.GetNavigationStatus()
		if status.State == pkg.ARRIVED {
			break
		}
		time.Sleep(*interval)
	}

	logger.Info("simulation finished",
		zap.String("final_state", navigationEngine.GetNavigationStatus().State.String()))
	navigationEngine.Dispose()
}

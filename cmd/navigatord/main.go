package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"github.com/tracknav/tracknav/pkg/engine"
	"github.com/tracknav/tracknav/pkg/http"
	"github.com/tracknav/tracknav/pkg/http/usecases"
	"github.com/tracknav/tracknav/pkg/logger"
	"github.com/tracknav/tracknav/pkg/routestore"
	"github.com/tracknav/tracknav/pkg/util"
)

var (
	routeDir                = flag.String("route_dir", "./data/routes", "directory for persisted route records")
	useRateLimit            = flag.Bool("rate_limit", false, "enable per-ip rate limiting on the REST API")
	offRoadDistance         = flag.Float64("off_road_distance", 100.0, "off-road threshold in meters")
	waypointReachedDistance = flag.Float64("waypoint_reached_distance", 25.0, "waypoint reached threshold in meters")
	turnScreenDistance      = flag.Float64("turn_screen_distance", 200.0, "turn screen threshold in meters")
	averageSpeedKmh         = flag.Float64("average_speed_kmh", 50.0, "assumed average speed for ETA in km/h")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		// config file is optional, the defaults and flags cover everything
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	store := routestore.New(*routeDir, logger)

	config := engine.NewConfig(*offRoadDistance, *waypointReachedDistance,
		*turnScreenDistance, *averageSpeedKmh)
	navigationEngine := engine.NewEngine(config, store, logger)
	if err := navigationEngine.Initialize(); err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	navigationService := usecases.NewNavigationService(logger, navigationEngine)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, navigationService, store)

	signal := http.GracefulShutdown()

	logger.Info("Tracknav Navigation Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	navigationEngine.Dispose()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

package engine

// Config. navigation thresholds. All distances in meters.
type Config struct {
	offRoadDistance         float64
	waypointReachedDistance float64
	turnScreenDistance      float64
	averageSpeedKmh         float64
}

const (
	defaultOffRoadDistanceMeter         = 100.0
	defaultWaypointReachedDistanceMeter = 25.0
	defaultTurnScreenDistanceMeter      = 200.0
	defaultAverageSpeedKmh              = 50.0
)

func NewConfig(offRoadDistance, waypointReachedDistance, turnScreenDistance, averageSpeedKmh float64) Config {
	return Config{
		offRoadDistance:         offRoadDistance,
		waypointReachedDistance: waypointReachedDistance,
		turnScreenDistance:      turnScreenDistance,
		averageSpeedKmh:         averageSpeedKmh,
	}
}

func DefaultConfig() Config {
	return NewConfig(defaultOffRoadDistanceMeter, defaultWaypointReachedDistanceMeter,
		defaultTurnScreenDistanceMeter, defaultAverageSpeedKmh)
}

func (c Config) OffRoadDistance() float64 {
	return c.offRoadDistance
}

func (c Config) WaypointReachedDistance() float64 {
	return c.waypointReachedDistance
}

func (c Config) TurnScreenDistance() float64 {
	return c.turnScreenDistance
}

func (c Config) AverageSpeedKmh() float64 {
	return c.averageSpeedKmh
}

// AverageSpeedMs. assumed average speed in meters/second, used for ETA
func (c Config) AverageSpeedMs() float64 {
	return c.averageSpeedKmh / 3.6
}

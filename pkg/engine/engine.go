package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/geo"
	"github.com/tracknav/tracknav/pkg/guidance"
	"github.com/tracknav/tracknav/pkg/spatialindex"
	"github.com/tracknav/tracknav/pkg/util"
)

const (
	// a real receiver with no fix reports (0,0); in simulation mode such fixes
	// must not clobber a valid simulated position
	noFixEpsilonDegree = 0.001

	segmentIndexPaddingMeter = 200.0
)

/*
Engine. the navigation state machine and position pipeline.

The engine is single-threaded and reactive: callers serialize StartNavigation,
StopNavigation and UpdatePosition; the drive cadence is owned entirely by the
external position source. Events are delivered to observers synchronously,
in registration order, inside the call that produced them.
*/
type Engine struct {
	log         *zap.Logger
	config      Config
	store       RouteStore
	synthesizer *guidance.WaypointSynthesizer

	initialized    bool
	simulationMode bool

	state              pkg.NavigationState
	route              *datastructure.Route
	segments           *spatialindex.SegmentIndex
	currentWaypointIdx int
	lastPosition       *datastructure.Position
	distanceToNextTurn float64
	distanceRemaining  float64
	turnAnnounced      bool
	offRoadBearing     float64
	offRoadDistance    float64

	updateObservers  *observerList[datastructure.NavigationUpdate]
	displayObservers *observerList[struct{}]
}

// NewEngine. store may be nil when the engine is driven with route objects only.
func NewEngine(config Config, store RouteStore, log *zap.Logger) *Engine {
	return &Engine{
		log:              log,
		config:           config,
		store:            store,
		synthesizer:      guidance.NewWaypointSynthesizer(log),
		state:            pkg.IDLE,
		updateObservers:  newObserverList[datastructure.NavigationUpdate](),
		displayObservers: newObserverList[struct{}](),
	}
}

// Initialize. prepares the backing route storage. Idempotent.
func (e *Engine) Initialize() error {
	if e.initialized {
		return nil
	}
	if e.store != nil {
		if err := e.store.Initialize(); err != nil {
			return err
		}
	}
	e.initialized = true
	return nil
}

/*
StartNavigation. accept a route object and enter NAVIGATING.

If the route's explicit waypoints are missing or fewer than 2 and usable
geometry exists, waypoints are synthesized from the geometry and totalDistance
is recomputed from it for consistency. The engine normalizes its own copy; the
caller's route is never touched. A failed start leaves the engine in IDLE.
*/
func (e *Engine) StartNavigation(route *datastructure.Route) error {
	if !e.initialized {
		return util.WrapErrorf(nil, util.ErrServiceNotInitialized, "startNavigation: engine not initialized")
	}
	if e.state == pkg.NAVIGATING || e.state == pkg.OFF_ROAD {
		return util.WrapErrorf(nil, util.ErrNavigationActive,
			"startNavigation: already navigating route %s", e.route.GetId())
	}

	normalized, err := e.normalizeRoute(route)
	if err != nil {
		return err
	}

	e.route = normalized
	e.segments = nil
	if len(normalized.GetGeometry()) >= 2 {
		e.segments = spatialindex.NewSegmentIndex(normalized.GetGeometry(), segmentIndexPaddingMeter)
	}
	e.currentWaypointIdx = 0
	e.turnAnnounced = false
	e.distanceToNextTurn = 0
	e.distanceRemaining = normalized.GetTotalDistance()
	e.state = pkg.NAVIGATING

	if e.lastPosition != nil && !e.simulationMode {
		e.evaluateOffRoad(e.lastPosition, false)
	}

	e.log.Info("navigation started",
		zap.String("route_id", normalized.GetId()),
		zap.String("destination", normalized.GetDestination()),
		zap.Int("waypoints", len(normalized.GetWaypoints())),
		zap.Float64("total_distance", normalized.GetTotalDistance()))

	e.notifyUpdate(pkg.UPDATE_STATUS)
	return nil
}

// StartNavigationById. load the route from the external store, then start it.
func (e *Engine) StartNavigationById(routeId string) error {
	if !e.initialized {
		return util.WrapErrorf(nil, util.ErrServiceNotInitialized, "startNavigation: engine not initialized")
	}
	if e.state == pkg.NAVIGATING || e.state == pkg.OFF_ROAD {
		return util.WrapErrorf(nil, util.ErrNavigationActive,
			"startNavigation: already navigating route %s", e.route.GetId())
	}
	if e.store == nil {
		return util.WrapErrorf(nil, util.ErrServiceNotInitialized,
			"startNavigation: no route store configured, cannot load route %s", routeId)
	}

	route, err := e.store.Load(routeId)
	if err != nil {
		return err
	}
	return e.StartNavigation(route)
}

/*
StopNavigation. always succeeds; a no-op when already IDLE. Observers see one
status event with state CANCELLED, then the engine settles to IDLE without a
further event.
*/
func (e *Engine) StopNavigation() {
	if e.state == pkg.IDLE {
		return
	}

	routeId := ""
	if e.route != nil {
		routeId = e.route.GetId()
	}

	e.route = nil
	e.segments = nil
	e.currentWaypointIdx = 0
	e.distanceToNextTurn = 0
	e.distanceRemaining = 0
	e.turnAnnounced = false

	e.state = pkg.CANCELLED
	e.notifyUpdate(pkg.UPDATE_STATUS)
	e.state = pkg.IDLE

	e.log.Info("navigation stopped", zap.String("route_id", routeId))
}

/*
UpdatePosition. the single mutating entry point besides start/stop; called on
every fix from the external position source.
*/
func (e *Engine) UpdatePosition(position *datastructure.Position) {
	if position == nil {
		return
	}
	if e.simulationMode &&
		math.Abs(position.Lat()) < noFixEpsilonDegree &&
		math.Abs(position.Lon()) < noFixEpsilonDegree {
		// no-fix reading, silently dropped
		return
	}

	e.lastPosition = position

	if e.state != pkg.NAVIGATING && e.state != pkg.OFF_ROAD {
		return
	}

	prevIdx := e.currentWaypointIdx
	prevMode := e.displayMode()

	if !e.simulationMode {
		if e.evaluateOffRoad(position, true) {
			return
		}
	}

	if e.advanceWaypoints(position) {
		// arrived, notified inside the loop
		return
	}

	e.recomputeDistances(position)

	if e.distanceToNextTurn <= e.config.TurnScreenDistance() {
		if !e.turnAnnounced {
			e.turnAnnounced = true
			e.notifyUpdate(pkg.UPDATE_TURN_APPROACHING)
		}
	} else {
		e.turnAnnounced = false
	}

	e.notifyUpdate(pkg.UPDATE_STATUS)

	if e.currentWaypointIdx != prevIdx || e.displayMode() != prevMode {
		e.notifyDisplay()
	}
}

/*
evaluateOffRoad. the off-road rule keys on the straight-line distance from the
position to the route's start point. Returns true when the position is
off-road, in which case the caller must not advance waypoints.

distanceToRoute reported in the status prefers the nearest geometry segment
when geometry exists, since that is what a lost user wants to steer back to.
*/
func (e *Engine) evaluateOffRoad(position *datastructure.Position, notify bool) bool {
	start := e.route.GetStartPoint()
	distToStart := geo.CalculateHaversineDistance(position.Lat(), position.Lon(),
		start.GetLat(), start.GetLon())

	if distToStart > e.config.OffRoadDistance() {
		wasOffRoad := e.state == pkg.OFF_ROAD
		e.state = pkg.OFF_ROAD
		e.offRoadBearing = geo.BearingTo(position.Lat(), position.Lon(),
			start.GetLat(), start.GetLon())
		if e.segments != nil {
			e.offRoadDistance = e.segments.DistanceToNearestSegment(
				position.Lat(), position.Lon(), 2*e.config.OffRoadDistance())
		} else {
			e.offRoadDistance = distToStart
		}

		if notify {
			if !wasOffRoad {
				e.log.Info("position left the route",
					zap.Float64("distance_to_route", util.RoundFloat(e.offRoadDistance, 1)))
				e.notifyUpdate(pkg.UPDATE_OFF_ROAD)
				e.notifyDisplay()
			} else {
				e.notifyUpdate(pkg.UPDATE_STATUS)
			}
		}
		return true
	}

	if e.state == pkg.OFF_ROAD {
		// back within the threshold; the display notification fires from the
		// caller once the on-road metrics are recomputed
		e.state = pkg.NAVIGATING
		e.log.Info("position rejoined the route")
	}
	return false
}

/*
advanceWaypoints. consume every waypoint within reach of the position. Returns
true when the final waypoint was consumed and the engine transitioned to
ARRIVED.

The loop is bounded by the route's waypoint count so malformed or duplicated
waypoint data cannot spin it forever. Consuming the DEPART waypoint at index 0
is silent: the user reaching the point they started from is not an event.
*/
func (e *Engine) advanceWaypoints(position *datastructure.Position) bool {
	waypoints := e.route.GetWaypoints()

	for steps := 0; e.currentWaypointIdx < len(waypoints) && steps < len(waypoints); steps++ {
		wp := waypoints[e.currentWaypointIdx]
		d := geo.CalculateHaversineDistance(position.Lat(), position.Lon(),
			wp.GetLat(), wp.GetLon())
		if d > e.config.WaypointReachedDistance() {
			break
		}

		reachedIdx := e.currentWaypointIdx
		e.currentWaypointIdx++
		e.turnAnnounced = false

		if e.currentWaypointIdx >= len(waypoints) {
			e.state = pkg.ARRIVED
			e.distanceToNextTurn = 0
			e.distanceRemaining = 0
			e.log.Info("arrived at destination", zap.String("route_id", e.route.GetId()))
			e.notifyUpdate(pkg.UPDATE_WAYPOINT_REACHED)
			e.notifyUpdate(pkg.UPDATE_ARRIVED)
			e.notifyDisplay()
			return true
		}

		if reachedIdx > 0 {
			e.notifyUpdate(pkg.UPDATE_WAYPOINT_REACHED)
		}
	}
	return false
}

func (e *Engine) recomputeDistances(position *datastructure.Position) {
	waypoints := e.route.GetWaypoints()
	next := waypoints[e.currentWaypointIdx]

	e.distanceToNextTurn = geo.CalculateHaversineDistance(position.Lat(), position.Lon(),
		next.GetLat(), next.GetLon())

	remaining := e.distanceToNextTurn
	for _, wp := range waypoints[e.currentWaypointIdx+1:] {
		remaining += wp.GetDistance()
	}
	e.distanceRemaining = remaining
}

// GetNavigationStatus. pure read of the derived status; never mutates.
func (e *Engine) GetNavigationStatus() datastructure.NavigationStatus {
	status := datastructure.NavigationStatus{
		State:                e.state,
		DisplayMode:          e.displayMode(),
		CurrentWaypointIndex: e.currentWaypointIdx,
		DistanceToNextTurn:   e.distanceToNextTurn,
		DistanceRemaining:    e.distanceRemaining,
		TimeRemaining:        e.timeRemaining(),
		Progress:             e.progress(),
	}

	if e.route != nil {
		status.Route = datastructure.NewRouteInfo(e.route)
		waypoints := e.route.GetWaypoints()
		if e.currentWaypointIdx < len(waypoints) {
			status.NextTurn = datastructure.NewTurnInfo(waypoints[e.currentWaypointIdx])
		}
	}

	if e.state == pkg.OFF_ROAD {
		bearing := e.offRoadBearing
		dist := e.offRoadDistance
		status.BearingToRoute = &bearing
		status.DistanceToRoute = &dist
	}

	return status
}

// IsNavigating. true for NAVIGATING, OFF_ROAD and ARRIVED: the display stays on
// the arrival screen until the caller explicitly stops navigation.
func (e *Engine) IsNavigating() bool {
	return e.state == pkg.NAVIGATING || e.state == pkg.OFF_ROAD || e.state == pkg.ARRIVED
}

// SetSimulationMode. enables the no-fix filter and suppresses off-road
// detection while simulated positions drive the engine.
func (e *Engine) SetSimulationMode(enabled bool) {
	e.simulationMode = enabled
}

func (e *Engine) OnNavigationUpdate(observer func(datastructure.NavigationUpdate)) Handle {
	return e.updateObservers.subscribe(observer)
}

func (e *Engine) UnsubscribeNavigationUpdate(id Handle) {
	e.updateObservers.unsubscribe(id)
}

// OnDisplayUpdate. fired only when a redraw is actually warranted (waypoint
// index or display mode changed), not on every status tick.
func (e *Engine) OnDisplayUpdate(observer func()) Handle {
	return e.displayObservers.subscribe(func(struct{}) { observer() })
}

func (e *Engine) UnsubscribeDisplayUpdate(id Handle) {
	e.displayObservers.unsubscribe(id)
}

// Dispose. stops navigation and clears all observers. Idempotent.
func (e *Engine) Dispose() {
	e.StopNavigation()
	e.updateObservers.clear()
	e.displayObservers.clear()
}

func (e *Engine) normalizeRoute(route *datastructure.Route) (*datastructure.Route, error) {
	normalized := route.Copy()

	if len(normalized.GetWaypoints()) >= 2 {
		return normalized, nil
	}

	geometry := normalized.GetGeometry()
	if len(geometry) < 2 {
		return nil, util.WrapErrorf(nil, util.ErrInvalidRoute,
			"route %s has %d waypoints and %d geometry points",
			route.GetId(), len(route.GetWaypoints()), len(geometry))
	}

	waypoints, totalDistance, err := e.synthesizer.Synthesize(geometry, normalized.GetDestination())
	if err != nil {
		return nil, err
	}

	normalized.SetWaypoints(waypoints)
	normalized.SetTotalDistance(totalDistance)
	normalized.SetEstimatedTime(math.Round(totalDistance / e.config.AverageSpeedMs()))
	return normalized, nil
}

func (e *Engine) displayMode() pkg.DisplayMode {
	switch e.state {
	case pkg.OFF_ROAD:
		return pkg.DISPLAY_OFF_ROAD
	case pkg.ARRIVED:
		return pkg.DISPLAY_ARRIVAL
	case pkg.NAVIGATING:
		if e.distanceToNextTurn > 0 && e.distanceToNextTurn <= e.config.TurnScreenDistance() {
			return pkg.DISPLAY_TURN
		}
		return pkg.DISPLAY_MAP
	default:
		return pkg.DISPLAY_MAP
	}
}

func (e *Engine) timeRemaining() int {
	if e.distanceRemaining == 0 {
		return 0
	}
	return int(math.Round(e.distanceRemaining / e.config.AverageSpeedMs()))
}

func (e *Engine) progress() int {
	if e.route == nil || e.route.GetTotalDistance() == 0 {
		return 0
	}
	total := e.route.GetTotalDistance()
	p := int(math.Round(100 * (total - e.distanceRemaining) / total))
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	return p
}

func (e *Engine) notifyUpdate(updateType pkg.UpdateType) {
	update := datastructure.NewNavigationUpdate(updateType, e.GetNavigationStatus(), time.Now())
	e.updateObservers.notify(update, e.log)
}

func (e *Engine) notifyDisplay() {
	e.displayObservers.notify(struct{}{}, e.log)
}

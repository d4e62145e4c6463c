package guidance

import (
	"math"

	"go.uber.org/zap"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/geo"
	"github.com/tracknav/tracknav/pkg/util"
)

const (
	// look-back/look-ahead distance for the incoming/outgoing bearing of a scan point
	segmentDistanceMeter = 30.0

	scanStepMeter = 10.0

	// minimum bearing-change magnitude that counts as a reportable turn
	turnThresholdDegree = 25.0

	// two emitted waypoints are never closer than this along the path
	minWaypointSpacingMeter = 50.0
)

/*
WaypointSynthesizer. derives DEPART -> intermediate turns -> ARRIVE waypoints
from a bare polyline. Used when a route carries geometry but no (or too few)
explicit maneuver waypoints.
*/
type WaypointSynthesizer struct {
	log *zap.Logger
}

func NewWaypointSynthesizer(log *zap.Logger) *WaypointSynthesizer {
	return &WaypointSynthesizer{log: log}
}

/*
Synthesize. scan the polyline's cumulative distance in fixed steps, compare the
bearing segmentDistanceMeter behind each scan point against the bearing
segmentDistanceMeter ahead of it, and emit a waypoint whenever the signed delta
crosses turnThresholdDegree.

The sum of all emitted waypoint distances equals the polyline's total cumulative
distance up to floating-point error.

Returns the waypoints and the polyline's total distance in meters.
*/
func (ws *WaypointSynthesizer) Synthesize(geometry []geo.Coordinate, destination string) ([]datastructure.Waypoint, float64, error) {
	if len(geometry) < 2 {
		return nil, 0, util.WrapErrorf(nil, util.ErrInvalidRoute,
			"cannot synthesize waypoints from %d geometry points", len(geometry))
	}

	cumulative := cumulativeDistances(geometry)
	totalDistance := cumulative[len(cumulative)-1]

	depart := geometry[0]
	waypoints := []datastructure.Waypoint{
		datastructure.NewWaypoint(depart.GetLat(), depart.GetLon(),
			GetInstruction(pkg.DEPART, ""), pkg.DEPART, 0, 0),
	}

	prevEmittedDistance := 0.0
	for scanDistance := 2 * segmentDistanceMeter; scanDistance <= totalDistance-segmentDistanceMeter; scanDistance += scanStepMeter {
		current := vertexAtDistance(cumulative, scanDistance)
		behind := vertexAtDistance(cumulative, scanDistance-segmentDistanceMeter)
		ahead := vertexAtDistance(cumulative, scanDistance+segmentDistanceMeter)
		if behind == current || current == ahead {
			continue
		}

		incoming := geo.BearingTo(geometry[behind].GetLat(), geometry[behind].GetLon(),
			geometry[current].GetLat(), geometry[current].GetLon())
		outgoing := geo.BearingTo(geometry[current].GetLat(), geometry[current].GetLon(),
			geometry[ahead].GetLat(), geometry[ahead].GetLon())
		turnAngle := util.NormalizeTurnAngle(outgoing - incoming)

		if math.Abs(turnAngle) >= turnThresholdDegree &&
			scanDistance-prevEmittedDistance >= minWaypointSpacingMeter {
			maneuver := classifyTurn(turnAngle)
			point := geometry[current]
			waypoints = append(waypoints, datastructure.NewWaypoint(
				point.GetLat(), point.GetLon(), GetInstruction(maneuver, ""),
				maneuver, scanDistance-prevEmittedDistance, len(waypoints)))
			prevEmittedDistance = scanDistance

			if ws.log != nil {
				ws.log.Debug("synthesized turn waypoint",
					zap.Float64("scan_distance", scanDistance),
					zap.Float64("turn_angle", util.RoundFloat(turnAngle, 2)),
					zap.String("maneuver", maneuver.String()))
			}
		}
	}

	arrive := geometry[len(geometry)-1]
	waypoints = append(waypoints, datastructure.NewWaypoint(
		arrive.GetLat(), arrive.GetLon(), GetInstruction(pkg.ARRIVE, destination),
		pkg.ARRIVE, totalDistance-prevEmittedDistance, len(waypoints)))

	return waypoints, totalDistance, nil
}

// cumulativeDistances. along-path distance in meters at every polyline vertex
func cumulativeDistances(geometry []geo.Coordinate) []float64 {
	cumulative := make([]float64, len(geometry))
	for i := 1; i < len(geometry); i++ {
		prev, cur := geometry[i-1], geometry[i]
		cumulative[i] = cumulative[i-1] +
			geo.CalculateHaversineDistance(prev.GetLat(), prev.GetLon(), cur.GetLat(), cur.GetLon())
	}
	return cumulative
}

// vertexAtDistance. index of the last vertex at or before distance d along the
// path. With duplicate points the later duplicate wins, which keeps the
// behind/current/ahead segments non-degenerate.
func vertexAtDistance(cumulative []float64, d float64) int {
	idx := 0
	for i := range cumulative {
		if cumulative[i] <= d {
			idx = i
		} else {
			break
		}
	}
	return idx
}

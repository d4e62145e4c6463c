package datastructure

import (
	"time"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/geo"
)

type Waypoint struct {
	coord       geo.Coordinate
	instruction string
	maneuver    pkg.ManeuverType
	distance    float64 // meters from the previous waypoint
	index       int
}

func NewWaypoint(lat, lon float64, instruction string, maneuver pkg.ManeuverType,
	distance float64, index int) Waypoint {
	return Waypoint{
		coord:       geo.NewCoordinate(lat, lon),
		instruction: instruction,
		maneuver:    maneuver,
		distance:    distance,
		index:       index,
	}
}

func (w Waypoint) GetCoordinate() geo.Coordinate {
	return w.coord
}

func (w Waypoint) GetLat() float64 {
	return w.coord.GetLat()
}

func (w Waypoint) GetLon() float64 {
	return w.coord.GetLon()
}

func (w Waypoint) GetInstruction() string {
	return w.instruction
}

func (w Waypoint) GetManeuver() pkg.ManeuverType {
	return w.maneuver
}

func (w Waypoint) GetDistance() float64 {
	return w.distance
}

func (w Waypoint) GetIndex() int {
	return w.index
}

type Route struct {
	id            string
	destination   string
	createdAt     time.Time
	startPoint    geo.Coordinate
	endPoint      geo.Coordinate
	waypoints     []Waypoint
	geometry      []geo.Coordinate
	totalDistance float64 // meters
	estimatedTime float64 // seconds
}

func NewRoute(id, destination string, createdAt time.Time, startPoint, endPoint geo.Coordinate,
	waypoints []Waypoint, geometry []geo.Coordinate, totalDistance, estimatedTime float64) *Route {
	return &Route{
		id:            id,
		destination:   destination,
		createdAt:     createdAt,
		startPoint:    startPoint,
		endPoint:      endPoint,
		waypoints:     waypoints,
		geometry:      geometry,
		totalDistance: totalDistance,
		estimatedTime: estimatedTime,
	}
}

func (r *Route) GetId() string {
	return r.id
}

func (r *Route) GetDestination() string {
	return r.destination
}

func (r *Route) GetCreatedAt() time.Time {
	return r.createdAt
}

func (r *Route) GetStartPoint() geo.Coordinate {
	return r.startPoint
}

func (r *Route) GetEndPoint() geo.Coordinate {
	return r.endPoint
}

func (r *Route) GetWaypoints() []Waypoint {
	return r.waypoints
}

func (r *Route) GetGeometry() []geo.Coordinate {
	return r.geometry
}

func (r *Route) GetTotalDistance() float64 {
	return r.totalDistance
}

func (r *Route) GetEstimatedTime() float64 {
	return r.estimatedTime
}

func (r *Route) SetWaypoints(waypoints []Waypoint) {
	r.waypoints = waypoints
}

func (r *Route) SetTotalDistance(totalDistance float64) {
	r.totalDistance = totalDistance
}

func (r *Route) SetEstimatedTime(estimatedTime float64) {
	r.estimatedTime = estimatedTime
}

// Copy. deep copy of the route. the engine normalizes its own copy at
// startNavigation so the caller's route is never mutated.
func (r *Route) Copy() *Route {
	waypoints := make([]Waypoint, len(r.waypoints))
	copy(waypoints, r.waypoints)
	geometry := make([]geo.Coordinate, len(r.geometry))
	copy(geometry, r.geometry)

	return NewRoute(r.id, r.destination, r.createdAt, r.startPoint, r.endPoint,
		waypoints, geometry, r.totalDistance, r.estimatedTime)
}

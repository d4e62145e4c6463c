package datastructure

import (
	"time"

	"github.com/tracknav/tracknav/pkg"
)

// RouteInfo. wire-friendly summary of the active route inside a status snapshot.
type RouteInfo struct {
	Id            string  `json:"id"`
	Destination   string  `json:"destination"`
	TotalDistance float64 `json:"total_distance"`
	EstimatedTime float64 `json:"estimated_time"`
}

func NewRouteInfo(route *Route) *RouteInfo {
	return &RouteInfo{
		Id:            route.GetId(),
		Destination:   route.GetDestination(),
		TotalDistance: route.GetTotalDistance(),
		EstimatedTime: route.GetEstimatedTime(),
	}
}

// TurnInfo. wire-friendly view of the next waypoint.
type TurnInfo struct {
	Lat         float64          `json:"lat"`
	Lon         float64          `json:"lon"`
	Instruction string           `json:"instruction"`
	Maneuver    pkg.ManeuverType `json:"maneuver"`
	Distance    float64          `json:"distance"`
	Index       int              `json:"index"`
}

func NewTurnInfo(w Waypoint) *TurnInfo {
	return &TurnInfo{
		Lat:         w.GetLat(),
		Lon:         w.GetLon(),
		Instruction: w.GetInstruction(),
		Maneuver:    w.GetManeuver(),
		Distance:    w.GetDistance(),
		Index:       w.GetIndex(),
	}
}

/*
NavigationStatus. derived snapshot of the engine, recomputed on demand and never
stored. Optional fields are populated only in the states where they mean
something: route-dependent fields while a route is active, off-road fields only
in OFF_ROAD.
*/
type NavigationStatus struct {
	State                pkg.NavigationState `json:"state"`
	DisplayMode          pkg.DisplayMode     `json:"display_mode"`
	CurrentWaypointIndex int                 `json:"current_waypoint_index"`
	DistanceToNextTurn   float64             `json:"distance_to_next_turn"`
	DistanceRemaining    float64             `json:"distance_remaining"`
	TimeRemaining        int                 `json:"time_remaining"` // seconds
	Progress             int                 `json:"progress"`       // 0-100

	Route           *RouteInfo `json:"route,omitempty"`
	NextTurn        *TurnInfo  `json:"next_turn,omitempty"`
	BearingToRoute  *float64   `json:"bearing_to_route,omitempty"`
	DistanceToRoute *float64   `json:"distance_to_route,omitempty"`
}

// NavigationUpdate. event fanned out to observers, Status is always a complete
// self-consistent snapshot regardless of Type.
type NavigationUpdate struct {
	Type      pkg.UpdateType   `json:"type"`
	Status    NavigationStatus `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewNavigationUpdate(updateType pkg.UpdateType, status NavigationStatus, ts time.Time) NavigationUpdate {
	return NavigationUpdate{
		Type:      updateType,
		Status:    status,
		Timestamp: ts,
	}
}

package controllers

import (
	"time"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/geo"
)

type positionRequest struct {
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lon       float64 `json:"lon" validate:"min=-180,max=180"`
	Altitude  float64 `json:"altitude"`
	Speed     float64 `json:"speed" validate:"min=0"`
	Bearing   float64 `json:"bearing" validate:"min=0,max=360"`
	Timestamp int64   `json:"timestamp"` // unix millis, 0 means "now"
}

func (pr positionRequest) ToPosition() *datastructure.Position {
	ts := time.Now()
	if pr.Timestamp != 0 {
		ts = time.UnixMilli(pr.Timestamp)
	}
	return datastructure.NewFullPosition(pr.Lat, pr.Lon, pr.Altitude, pr.Speed, pr.Bearing, ts)
}

type startNavigationRequest struct {
	RouteId string `json:"route_id" validate:"required"`
}

type simulationModeRequest struct {
	Enabled bool `json:"enabled"`
}

type waypointDto struct {
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lon         float64 `json:"lon" validate:"min=-180,max=180"`
	Instruction string  `json:"instruction"`
	Maneuver    string  `json:"maneuver"`
	Distance    float64 `json:"distance" validate:"min=0"`
}

type createRouteRequest struct {
	Destination string        `json:"destination" validate:"required"`
	Geometry    string        `json:"geometry"` // encoded polyline
	Waypoints   []waypointDto `json:"waypoints" validate:"dive"`
}

// ToRoute. builds the route object; geometry is decoded from the encoded
// polyline and start/end points are derived from it (or from the waypoints
// when no geometry was given).
func (cr createRouteRequest) ToRoute() (*datastructure.Route, error) {
	var geometry []geo.Coordinate
	if cr.Geometry != "" {
		coords, err := geo.CoordsFromPolyline(cr.Geometry)
		if err != nil {
			return nil, err
		}
		geometry = coords
	}

	waypoints := make([]datastructure.Waypoint, len(cr.Waypoints))
	totalDistance := 0.0
	for i, wp := range cr.Waypoints {
		waypoints[i] = datastructure.NewWaypoint(wp.Lat, wp.Lon, wp.Instruction,
			pkg.GetManeuverType(wp.Maneuver), wp.Distance, i)
		totalDistance += wp.Distance
	}

	var startPoint, endPoint geo.Coordinate
	switch {
	case len(geometry) > 0:
		startPoint = geometry[0]
		endPoint = geometry[len(geometry)-1]
	case len(waypoints) > 0:
		startPoint = waypoints[0].GetCoordinate()
		endPoint = waypoints[len(waypoints)-1].GetCoordinate()
	}

	return datastructure.NewRoute("", cr.Destination, time.Now(), startPoint, endPoint,
		waypoints, geometry, totalDistance, 0), nil
}

type createRouteResponse struct {
	RouteId string `json:"route_id"`
}

type routeResponse struct {
	Id            string        `json:"id"`
	Destination   string        `json:"destination"`
	CreatedAt     time.Time     `json:"created_at"`
	StartPoint    geo.Coordinate `json:"start_point"`
	EndPoint      geo.Coordinate `json:"end_point"`
	Waypoints     []waypointDto `json:"waypoints"`
	Geometry      string        `json:"geometry"`
	TotalDistance float64       `json:"total_distance"`
	EstimatedTime float64       `json:"estimated_time"`
}

func NewRouteResponse(route *datastructure.Route) routeResponse {
	waypoints := make([]waypointDto, len(route.GetWaypoints()))
	for i, wp := range route.GetWaypoints() {
		waypoints[i] = waypointDto{
			Lat:         wp.GetLat(),
			Lon:         wp.GetLon(),
			Instruction: wp.GetInstruction(),
			Maneuver:    wp.GetManeuver().String(),
			Distance:    wp.GetDistance(),
		}
	}

	return routeResponse{
		Id:            route.GetId(),
		Destination:   route.GetDestination(),
		CreatedAt:     route.GetCreatedAt(),
		StartPoint:    route.GetStartPoint(),
		EndPoint:      route.GetEndPoint(),
		Waypoints:     waypoints,
		Geometry:      geo.PolylineFromCoords(route.GetGeometry()),
		TotalDistance: route.GetTotalDistance(),
		EstimatedTime: route.GetEstimatedTime(),
	}
}

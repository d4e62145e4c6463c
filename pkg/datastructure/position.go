package datastructure

import (
	"time"

	"github.com/tracknav/tracknav/pkg/geo"
)

// Position. one already-parsed fix from the external position source
// (real GPS or a simulated tick).
type Position struct {
	lat      float64
	lon      float64
	altitude float64
	speed    float64 // meters/second, 0 when the source does not report it
	bearing  float64
	time     time.Time
}

func NewPosition(lat, lon float64, t time.Time) *Position {
	return &Position{
		lat:  lat,
		lon:  lon,
		time: t,
	}
}

func NewFullPosition(lat, lon, altitude, speed, bearing float64, t time.Time) *Position {
	return &Position{
		lat:      lat,
		lon:      lon,
		altitude: altitude,
		speed:    speed,
		bearing:  bearing,
		time:     t,
	}
}

func (p *Position) Lat() float64 {
	return p.lat
}

func (p *Position) Lon() float64 {
	return p.lon
}

func (p *Position) Altitude() float64 {
	return p.altitude
}

func (p *Position) Speed() float64 {
	return p.speed
}

func (p *Position) Bearing() float64 {
	return p.bearing
}

func (p *Position) Time() time.Time {
	return p.time
}

func (p *Position) ToCoordinate() geo.Coordinate {
	return geo.NewCoordinate(p.lat, p.lon)
}

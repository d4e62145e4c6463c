package geo

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/tracknav/tracknav/pkg/util"
)

/*
DistanceToSegment. shortest distance in meters from point to the line segment (a, b),
not the infinite line through it.

Uses a local flat-Earth projection centered on point: longitude scaled by
111320*cos(lat) m/degree, latitude by 111320 m/degree. The projection parameter is
clamped to [0,1], so endpoints win when the perpendicular foot falls outside the
segment. Valid for segment lengths up to a few kilometers.
*/
func DistanceToSegment(point, a, b Coordinate) float64 {
	if a.Lat == b.Lat && a.Lon == b.Lon {
		// degenerate segment, avoid dividing by zero
		return CalculateHaversineDistance(point.GetLat(), point.GetLon(), a.GetLat(), a.GetLon())
	}

	lonScale := metersPerDegree * math.Cos(util.DegreeToRadians(point.GetLat()))

	px := (point.GetLon() - a.GetLon()) * lonScale
	py := (point.GetLat() - a.GetLat()) * metersPerDegree
	bx := (b.GetLon() - a.GetLon()) * lonScale
	by := (b.GetLat() - a.GetLat()) * metersPerDegree

	t := (px*bx + py*by) / (bx*bx + by*by)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	dx := px - t*bx
	dy := py - t*by
	return math.Sqrt(dx*dx + dy*dy)
}

// ProjectPointToSegment returns the point on segment (a, b) closest to snap,
// computed on the sphere via s2.
func ProjectPointToSegment(a, b, snap Coordinate) Coordinate {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.GetLat(), a.GetLon()))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.GetLat(), b.GetLon()))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.GetLat(), snap.GetLon()))
	projection := s2.Project(snapS2, aS2, bS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

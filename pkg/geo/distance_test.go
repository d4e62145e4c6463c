package geo

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name                       string
		lat1, lon1, lat2, lon2     float64
		want                       float64
		tolerance                  float64
	}{
		{
			name: "same point",
			lat1: -7.7713847, lon1: 110.3755896,
			lat2: -7.7713847, lon2: 110.3755896,
			want:      0,
			tolerance: 0.001,
		},
		{
			name: "one degree of longitude at the equator",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 1,
			want:      111195,
			tolerance: 100,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			want:      111195,
			tolerance: 100,
		},
		{
			name: "yogyakarta to jakarta",
			lat1: -7.797068, lon1: 110.370529,
			lat2: -6.200000, lon2: 106.816666,
			want:      430000,
			tolerance: 5000,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("got %v, want %v (tolerance %v)", got, tt.want, tt.tolerance)
			}

			back := CalculateHaversineDistance(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(got-back) > 1e-6 {
				t.Errorf("distance is not symmetric: %v vs %v", got, back)
			}
		})
	}
}

// cross-check the haversine implementation against the s2 spherical geometry
// library on a batch of city pairs.
func TestCalculateHaversineDistanceAgainstS2(t *testing.T) {
	points := [][2]float64{
		{-7.797068, 110.370529},
		{-6.200000, 106.816666},
		{35.652832, 139.839478},
		{52.370216, 4.895168},
		{-33.865143, 151.209900},
	}

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			got := CalculateHaversineDistance(points[i][0], points[i][1],
				points[j][0], points[j][1])

			p1 := s2.PointFromLatLng(s2.LatLngFromDegrees(points[i][0], points[i][1]))
			p2 := s2.PointFromLatLng(s2.LatLngFromDegrees(points[j][0], points[j][1]))
			want := p1.Distance(p2).Radians() * 6371000.0

			if relErr := math.Abs(got-want) / want; relErr > 0.005 {
				t.Errorf("pair %d-%d: got %v, s2 says %v (rel err %v)", i, j, got, want, relErr)
			}
		}
	}
}

func TestBearingTo(t *testing.T) {
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{name: "due north", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 0, tolerance: 0.01},
		{name: "due east", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 90, tolerance: 0.01},
		{name: "due south", lat1: 1, lon1: 0, lat2: 0, lon2: 0, want: 180, tolerance: 0.01},
		{name: "due west", lat1: 0, lon1: 1, lat2: 0, lon2: 0, want: 270, tolerance: 0.01},
		{name: "north east", lat1: 0, lon1: 0, lat2: 1, lon2: 1, want: 45, tolerance: 0.5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := BearingTo(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("bearing %v out of [0, 360)", got)
			}
		})
	}
}

func TestGetDestinationPointRoundTrip(t *testing.T) {
	startLat, startLon := -7.797068, 110.370529

	for _, bearing := range []float64{0, 45, 90, 135, 180, 270} {
		for _, dist := range []float64{10, 500, 1000, 25000} {
			lat, lon := GetDestinationPoint(startLat, startLon, bearing, dist)
			back := CalculateHaversineDistance(startLat, startLon, lat, lon)
			if relErr := math.Abs(back-dist) / dist; relErr > 0.01 {
				t.Errorf("bearing %v dist %v: round trip distance %v", bearing, dist, back)
			}
		}
	}
}

func TestDistanceToSegment(t *testing.T) {
	testCases := []struct {
		name      string
		point     Coordinate
		a, b      Coordinate
		want      float64
		tolerance float64
	}{
		{
			name:  "point on segment",
			point: NewCoordinate(0, 0.005),
			a:     NewCoordinate(0, 0),
			b:     NewCoordinate(0, 0.01),
			want:  0, tolerance: 0.5,
		},
		{
			name:  "perpendicular offset",
			point: NewCoordinate(0.0001, 0.005),
			a:     NewCoordinate(0, 0),
			b:     NewCoordinate(0, 0.01),
			want:  11.13, tolerance: 0.2,
		},
		{
			name:  "beyond endpoint clamps to b",
			point: NewCoordinate(0, 0.02),
			a:     NewCoordinate(0, 0),
			b:     NewCoordinate(0, 0.01),
			want:  1113.2, tolerance: 5,
		},
		{
			name:  "degenerate segment",
			point: NewCoordinate(0.001, 0),
			a:     NewCoordinate(0, 0),
			b:     NewCoordinate(0, 0),
			want:  111.19, tolerance: 0.5,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.point, tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("got %v, want %v (tolerance %v)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestProjectPointToSegment(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 0.01)
	snap := NewCoordinate(0.0001, 0.005)

	projected := ProjectPointToSegment(a, b, snap)

	if math.Abs(projected.GetLat()) > 1e-6 {
		t.Errorf("projected latitude %v, want ~0", projected.GetLat())
	}
	if math.Abs(projected.GetLon()-0.005) > 1e-4 {
		t.Errorf("projected longitude %v, want ~0.005", projected.GetLon())
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-7.797068, 110.370529),
		NewCoordinate(-7.795000, 110.372000),
		NewCoordinate(-7.790000, 110.375000),
	}

	encoded := PolylineFromCoords(coords)
	decoded, err := CoordsFromPolyline(encoded)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(decoded) != len(coords) {
		t.Fatalf("decoded %d coords, want %d", len(decoded), len(coords))
	}
	for i := range coords {
		// polyline encoding quantizes to 1e-5 degrees
		if math.Abs(decoded[i].GetLat()-coords[i].GetLat()) > 1e-5 ||
			math.Abs(decoded[i].GetLon()-coords[i].GetLon()) > 1e-5 {
			t.Errorf("coord %d: got %v, want %v", i, decoded[i], coords[i])
		}
	}
}

package guidance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/geo"
)

// lShapedRoute. dense polyline east along the equator then north, one sharp
// left corner. ~11 m vertex spacing so the bearing scan has segments to work
// with.
func lShapedRoute() []geo.Coordinate {
	geometry := make([]geo.Coordinate, 0, 41)
	for lon := 0.0; lon <= 0.00201; lon += 0.0001 {
		geometry = append(geometry, geo.NewCoordinate(0, lon))
	}
	for lat := 0.0001; lat <= 0.00201; lat += 0.0001 {
		geometry = append(geometry, geo.NewCoordinate(lat, 0.002))
	}
	return geometry
}

func TestSynthesizeLShapedRoute(t *testing.T) {
	synthesizer := NewWaypointSynthesizer(nil)

	waypoints, totalDistance, err := synthesizer.Synthesize(lShapedRoute(), "Office")
	require.NoError(t, err)

	// ~222 m east + ~222 m north
	require.InDelta(t, 445.0, totalDistance, 5.0)

	require.GreaterOrEqual(t, len(waypoints), 3)
	require.Equal(t, pkg.DEPART, waypoints[0].GetManeuver())
	require.Equal(t, pkg.ARRIVE, waypoints[len(waypoints)-1].GetManeuver())
	require.Equal(t, "Arrive at Office", waypoints[len(waypoints)-1].GetInstruction())

	// exactly one turn waypoint near the corner. the scan emits at the first
	// threshold crossing, before the full 90 degrees has accumulated, so the
	// reported maneuver is the slight variant.
	turns := waypoints[1 : len(waypoints)-1]
	require.Len(t, turns, 1)
	require.Equal(t, pkg.SLIGHT_LEFT, turns[0].GetManeuver())
	cornerDist := geo.CalculateHaversineDistance(turns[0].GetLat(), turns[0].GetLon(), 0, 0.002)
	require.Less(t, cornerDist, 35.0, "turn waypoint should sit near the corner")

	// waypoint indices are their positions
	for i, wp := range waypoints {
		require.Equal(t, i, wp.GetIndex())
	}

	// the distance fields partition the full path length
	sum := 0.0
	for _, wp := range waypoints {
		sum += wp.GetDistance()
	}
	require.InDelta(t, totalDistance, sum, 1e-6)
}

func TestSynthesizeStraightRoute(t *testing.T) {
	synthesizer := NewWaypointSynthesizer(nil)

	geometry := make([]geo.Coordinate, 0, 21)
	for lon := 0.0; lon <= 0.00201; lon += 0.0001 {
		geometry = append(geometry, geo.NewCoordinate(0, lon))
	}

	waypoints, totalDistance, err := synthesizer.Synthesize(geometry, "")
	require.NoError(t, err)

	// no turns on a straight path, only DEPART and ARRIVE
	require.Len(t, waypoints, 2)
	require.Equal(t, pkg.DEPART, waypoints[0].GetManeuver())
	require.Equal(t, pkg.ARRIVE, waypoints[1].GetManeuver())
	require.Equal(t, "Arrive", waypoints[1].GetInstruction())
	require.InDelta(t, totalDistance, waypoints[1].GetDistance(), 1e-6)
}

func TestSynthesizeTooFewPoints(t *testing.T) {
	synthesizer := NewWaypointSynthesizer(nil)

	_, _, err := synthesizer.Synthesize([]geo.Coordinate{geo.NewCoordinate(0, 0)}, "")
	require.Error(t, err)

	_, _, err = synthesizer.Synthesize(nil, "")
	require.Error(t, err)
}

func TestClassifyTurn(t *testing.T) {
	testCases := []struct {
		name  string
		angle float64
		want  pkg.ManeuverType
	}{
		{name: "dead straight", angle: 0, want: pkg.STRAIGHT},
		{name: "slight drift", angle: 10, want: pkg.STRAIGHT},
		{name: "slight right", angle: 30, want: pkg.SLIGHT_RIGHT},
		{name: "slight left", angle: -30, want: pkg.SLIGHT_LEFT},
		{name: "right", angle: 90, want: pkg.RIGHT},
		{name: "left", angle: -90, want: pkg.LEFT},
		{name: "sharp right", angle: 150, want: pkg.SHARP_RIGHT},
		{name: "sharp left", angle: -150, want: pkg.SHARP_LEFT},
		{name: "boundary 20 is slight", angle: 20, want: pkg.SLIGHT_RIGHT},
		{name: "boundary 50 is normal", angle: 50, want: pkg.RIGHT},
		{name: "boundary 110 is sharp", angle: 110, want: pkg.SHARP_RIGHT},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTurn(tt.angle); got != tt.want {
				t.Errorf("classifyTurn(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestGetInstruction(t *testing.T) {
	if got := GetInstruction(pkg.RIGHT, ""); got != "Turn right" {
		t.Errorf("got %q", got)
	}
	if got := GetInstruction(pkg.ARRIVE, "Home"); got != "Arrive at Home" {
		t.Errorf("got %q", got)
	}
	if got := GetInstruction(pkg.ROUNDABOUT_EXIT_3, ""); got != "At the roundabout, take exit 3" {
		t.Errorf("got %q", got)
	}
	if got := GetInstruction(pkg.UTURN, ""); got == "" {
		t.Error("uturn instruction should not be empty")
	}
}

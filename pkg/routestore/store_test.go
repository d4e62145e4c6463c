package routestore

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/geo"
	"github.com/tracknav/tracknav/pkg/util"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(t.TempDir(), zap.NewNop())
	require.NoError(t, store.Initialize())
	return store
}

func sampleRoute(id string, createdAt time.Time) *datastructure.Route {
	geometry := []geo.Coordinate{
		geo.NewCoordinate(-7.797068, 110.370529),
		geo.NewCoordinate(-7.795000, 110.372000),
		geo.NewCoordinate(-7.790000, 110.375000),
	}
	waypoints := []datastructure.Waypoint{
		datastructure.NewWaypoint(-7.797068, 110.370529, "Depart", pkg.DEPART, 0, 0),
		datastructure.NewWaypoint(-7.795000, 110.372000, "Turn right", pkg.RIGHT, 280, 1),
		datastructure.NewWaypoint(-7.790000, 110.375000, "Arrive at Office", pkg.ARRIVE, 650, 2),
	}
	return datastructure.NewRoute(id, "Office", createdAt,
		geometry[0], geometry[2], waypoints, geometry, 930, 67)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	id, err := store.Save(sampleRoute("office_run", createdAt))
	require.NoError(t, err)
	require.Equal(t, "office_run", id)

	loaded, err := store.Load(id)
	require.NoError(t, err)

	require.Equal(t, "office_run", loaded.GetId())
	require.Equal(t, "Office", loaded.GetDestination())
	require.True(t, loaded.GetCreatedAt().Equal(createdAt),
		"createdAt %v did not survive the round trip", loaded.GetCreatedAt())
	require.Equal(t, 930.0, loaded.GetTotalDistance())
	require.Equal(t, 67.0, loaded.GetEstimatedTime())

	require.Len(t, loaded.GetWaypoints(), 3)
	turn := loaded.GetWaypoints()[1]
	require.Equal(t, pkg.RIGHT, turn.GetManeuver())
	require.Equal(t, "Turn right", turn.GetInstruction())
	require.Equal(t, 280.0, turn.GetDistance())
	require.Equal(t, 1, turn.GetIndex())

	// geometry goes through polyline encoding, quantized to 1e-5 degrees
	require.Len(t, loaded.GetGeometry(), 3)
	for i, coord := range loaded.GetGeometry() {
		require.InDelta(t, sampleRoute("", createdAt).GetGeometry()[i].GetLat(), coord.GetLat(), 1e-5)
		require.InDelta(t, sampleRoute("", createdAt).GetGeometry()[i].GetLon(), coord.GetLon(), 1e-5)
	}
}

func TestSaveGeneratesId(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Save(sampleRoute("", time.Now()))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "route_"), "generated id %q", id)

	_, err = store.Load(id)
	require.NoError(t, err)
}

func TestLoadMissingRoute(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("nope")
	require.Equal(t, util.ErrRouteNotFound, util.ErrorCode(err))
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Save(sampleRoute("doomed", time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))

	_, err = store.Load(id)
	require.Equal(t, util.ErrRouteNotFound, util.ErrorCode(err))

	err = store.Delete(id)
	require.Equal(t, util.ErrRouteNotFound, util.ErrorCode(err))
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := store.Save(sampleRoute("oldest", base))
	require.NoError(t, err)
	_, err = store.Save(sampleRoute("newest", base.Add(48*time.Hour)))
	require.NoError(t, err)
	_, err = store.Save(sampleRoute("middle", base.Add(24*time.Hour)))
	require.NoError(t, err)

	summaries, err := store.List()
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	require.Equal(t, "newest", summaries[0].Id)
	require.Equal(t, "middle", summaries[1].Id)
	require.Equal(t, "oldest", summaries[2].Id)
	require.Equal(t, "Office", summaries[0].Destination)
}

func TestListEmptyStore(t *testing.T) {
	store := newTestStore(t)

	summaries, err := store.List()
	require.NoError(t, err)
	require.Empty(t, summaries)
}

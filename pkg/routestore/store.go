package routestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/tracknav/tracknav/pkg"
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/geo"
	"github.com/tracknav/tracknav/pkg/util"
)

const routeFileExt = ".route.bz2"

/*
Store. file-backed route persistence, one bzip2-compressed JSON record per
route. Geometry is stored as a google encoded polyline string to keep records
small on appliance flash.
*/
type Store struct {
	dir string
	log *zap.Logger
}

func New(dir string, log *zap.Logger) *Store {
	return &Store{
		dir: dir,
		log: log,
	}
}

// Initialize. creates the storage directory. Idempotent.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return util.WrapErrorf(err, util.ErrSaveFailed, "initialize route store at %s", s.dir)
	}
	return nil
}

type waypointRecord struct {
	Lat         float64          `json:"lat"`
	Lon         float64          `json:"lon"`
	Instruction string           `json:"instruction"`
	Maneuver    pkg.ManeuverType `json:"maneuver"`
	Distance    float64          `json:"distance"`
	Index       int              `json:"index"`
}

type routeRecord struct {
	Id            string          `json:"id"`
	Destination   string          `json:"destination"`
	CreatedAt     time.Time       `json:"created_at"`
	StartPoint    geo.Coordinate  `json:"start_point"`
	EndPoint      geo.Coordinate  `json:"end_point"`
	Waypoints     []waypointRecord `json:"waypoints"`
	Geometry      string          `json:"geometry"` // encoded polyline
	TotalDistance float64         `json:"total_distance"`
	EstimatedTime float64         `json:"estimated_time"`
}

// RouteSummary. one entry of List, newest first.
type RouteSummary struct {
	Id          string    `json:"id"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"created_at"`
}

// Save. persist the route and return its id. A route without an id gets a
// generated one.
func (s *Store) Save(route *datastructure.Route) (string, error) {
	id := route.GetId()
	if id == "" {
		id = fmt.Sprintf("route_%d", time.Now().UnixNano())
	}

	record := toRecord(id, route)

	f, err := os.Create(s.path(id))
	if err != nil {
		return "", util.WrapErrorf(err, util.ErrSaveFailed, "save route %s", id)
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return "", util.WrapErrorf(err, util.ErrSaveFailed, "save route %s", id)
	}

	if err := json.NewEncoder(bz).Encode(record); err != nil {
		bz.Close()
		return "", util.WrapErrorf(err, util.ErrSaveFailed, "save route %s", id)
	}
	if err := bz.Close(); err != nil {
		return "", util.WrapErrorf(err, util.ErrSaveFailed, "save route %s", id)
	}

	s.log.Info("route saved", zap.String("route_id", id),
		zap.String("destination", route.GetDestination()))
	return id, nil
}

func (s *Store) Load(routeId string) (*datastructure.Route, error) {
	f, err := os.Open(s.path(routeId))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.WrapErrorf(err, util.ErrRouteNotFound, "load route %s", routeId)
		}
		return nil, util.WrapErrorf(err, util.ErrLoadFailed, "load route %s", routeId)
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrLoadFailed, "load route %s", routeId)
	}

	var record routeRecord
	if err := json.NewDecoder(bz).Decode(&record); err != nil {
		return nil, util.WrapErrorf(err, util.ErrLoadFailed, "load route %s", routeId)
	}

	return fromRecord(&record)
}

func (s *Store) Delete(routeId string) error {
	err := os.Remove(s.path(routeId))
	if err != nil {
		if os.IsNotExist(err) {
			return util.WrapErrorf(err, util.ErrRouteNotFound, "delete route %s", routeId)
		}
		return util.WrapErrorf(err, util.ErrSaveFailed, "delete route %s", routeId)
	}
	s.log.Info("route deleted", zap.String("route_id", routeId))
	return nil
}

// List. summaries of every stored route, ordered newest-first.
func (s *Store) List() ([]RouteSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrLoadFailed, "list routes in %s", s.dir)
	}

	summaries := make([]RouteSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), routeFileExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), routeFileExt)
		route, err := s.Load(id)
		if err != nil {
			s.log.Warn("skipping unreadable route record",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		summaries = append(summaries, RouteSummary{
			Id:          route.GetId(),
			Destination: route.GetDestination(),
			CreatedAt:   route.GetCreatedAt(),
		})
	}

	slices.SortFunc(summaries, func(a, b RouteSummary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return summaries, nil
}

func (s *Store) path(routeId string) string {
	return filepath.Join(s.dir, routeId+routeFileExt)
}

func toRecord(id string, route *datastructure.Route) *routeRecord {
	waypoints := make([]waypointRecord, len(route.GetWaypoints()))
	for i, wp := range route.GetWaypoints() {
		waypoints[i] = waypointRecord{
			Lat:         wp.GetLat(),
			Lon:         wp.GetLon(),
			Instruction: wp.GetInstruction(),
			Maneuver:    wp.GetManeuver(),
			Distance:    wp.GetDistance(),
			Index:       wp.GetIndex(),
		}
	}

	return &routeRecord{
		Id:            id,
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

func fromRecord(record *routeRecord) (*datastructure.Route, error) {
	waypoints := make([]datastructure.Waypoint, len(record.Waypoints))
	for i, wr := range record.Waypoints {
		waypoints[i] = datastructure.NewWaypoint(wr.Lat, wr.Lon, wr.Instruction,
			wr.Maneuver, wr.Distance, wr.Index)
	}

	var geometry []geo.Coordinate
	if record.Geometry != "" {
		coords, err := geo.CoordsFromPolyline(record.Geometry)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrLoadFailed,
				"decode geometry of route %s", record.Id)
		}
		geometry = coords
	}

	return datastructure.NewRoute(record.Id, record.Destination, record.CreatedAt,
		record.StartPoint, record.EndPoint, waypoints, geometry,
		record.TotalDistance, record.EstimatedTime), nil
}

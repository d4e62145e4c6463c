package engine

import "github.com/tracknav/tracknav/pkg/datastructure"

// RouteStore. external route persistence. The engine only loads; saving,
// deleting and listing belong to the API layer.
type RouteStore interface {
	Initialize() error
	Load(routeId string) (*datastructure.Route, error)
}

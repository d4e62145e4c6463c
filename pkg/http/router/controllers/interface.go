package controllers

import (
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/engine"
	"github.com/tracknav/tracknav/pkg/routestore"
)

type NavigationService interface {
	StartNavigation(route *datastructure.Route) error
	StartNavigationById(routeId string) error
	StopNavigation()
	UpdatePosition(position *datastructure.Position)
	GetNavigationStatus() datastructure.NavigationStatus
	IsNavigating() bool
	SetSimulationMode(enabled bool)
	OnNavigationUpdate(observer func(datastructure.NavigationUpdate)) engine.Handle
}

type RouteStoreService interface {
	Save(route *datastructure.Route) (string, error)
	Load(routeId string) (*datastructure.Route, error)
	Delete(routeId string) error
	List() ([]routestore.RouteSummary, error)
}

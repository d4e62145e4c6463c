package usecases

import (
	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/engine"
)

// NavigationEngine. the subset of the engine the HTTP layer drives.
type NavigationEngine interface {
	StartNavigation(route *datastructure.Route) error
	StartNavigationById(routeId string) error
	StopNavigation()
	UpdatePosition(position *datastructure.Position)
	GetNavigationStatus() datastructure.NavigationStatus
	IsNavigating() bool
	SetSimulationMode(enabled bool)
	OnNavigationUpdate(observer func(datastructure.NavigationUpdate)) engine.Handle
}

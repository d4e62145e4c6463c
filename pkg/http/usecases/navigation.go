package usecases

import (
	"sync"

	"go.uber.org/zap"

	"github.com/tracknav/tracknav/pkg/datastructure"
	"github.com/tracknav/tracknav/pkg/engine"
)

/*
NavigationService. serializes concurrent HTTP/websocket callers into the
engine, which performs no internal locking by design: it expects exactly one
logical event at a time.
*/
type NavigationService struct {
	mu     sync.Mutex
	log    *zap.Logger
	engine NavigationEngine
}

func NewNavigationService(log *zap.Logger, engine NavigationEngine) *NavigationService {
	return &NavigationService{
		log:    log,
		engine: engine,
	}
}

func (ns *NavigationService) StartNavigation(route *datastructure.Route) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.engine.StartNavigation(route)
}

func (ns *NavigationService) StartNavigationById(routeId string) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.engine.StartNavigationById(routeId)
}

func (ns *NavigationService) StopNavigation() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.engine.StopNavigation()
}

func (ns *NavigationService) UpdatePosition(position *datastructure.Position) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.engine.UpdatePosition(position)
}

func (ns *NavigationService) GetNavigationStatus() datastructure.NavigationStatus {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.engine.GetNavigationStatus()
}

func (ns *NavigationService) IsNavigating() bool {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.engine.IsNavigating()
}

func (ns *NavigationService) SetSimulationMode(enabled bool) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.engine.SetSimulationMode(enabled)
}

// OnNavigationUpdate. observers run synchronously inside the engine call that
// produced the event and must not call back into this service.
func (ns *NavigationService) OnNavigationUpdate(observer func(datastructure.NavigationUpdate)) engine.Handle {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.engine.OnNavigationUpdate(observer)
}

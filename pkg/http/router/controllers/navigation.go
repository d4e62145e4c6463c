package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	helper "github.com/tracknav/tracknav/pkg/http/router/routerhelper"
)

type navigationAPI struct {
	navigationService NavigationService
	routeStoreService RouteStoreService
	log               *zap.Logger
}

func New(navigationService NavigationService, routeStoreService RouteStoreService,
	log *zap.Logger) *navigationAPI {
	return &navigationAPI{
		navigationService: navigationService,
		routeStoreService: routeStoreService,
		log:               log,
	}
}

func (api *navigationAPI) Routes(group *helper.RouteGroup) {
	group.POST("/navigation/start", api.startNavigation)
	group.POST("/navigation/stop", api.stopNavigation)
	group.POST("/navigation/position", api.updatePosition)
	group.POST("/navigation/simulation", api.setSimulationMode)
	group.GET("/navigation/status", api.navigationStatus)

	group.POST("/routes", api.createRoute)
	group.GET("/routes", api.listRoutes)
	group.GET("/routes/:id", api.getRoute)
	group.DELETE("/routes/:id", api.deleteRoute)
}

func (api *navigationAPI) validateRequest(w http.ResponseWriter, r *http.Request,
	request interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

// startNavigation. starts guidance along a stored route. The engine
// synthesizes turn waypoints when the stored route carries only geometry.
func (api *navigationAPI) startNavigation(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request startNavigationRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	if err := api.navigationService.StartNavigationById(request.RouteId); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": api.navigationService.GetNavigationStatus()}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) stopNavigation(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.navigationService.StopNavigation()

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": api.navigationService.GetNavigationStatus()}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) updatePosition(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request positionRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	api.navigationService.UpdatePosition(request.ToPosition())

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": api.navigationService.GetNavigationStatus()}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) setSimulationMode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request simulationModeRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	api.navigationService.SetSimulationMode(request.Enabled)

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": map[string]bool{"simulation": request.Enabled}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) navigationStatus(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": api.navigationService.GetNavigationStatus()}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) createRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request createRouteRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	route, err := request.ToRoute()
	if err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("invalid geometry polyline: %w", err))
		return
	}
	if len(route.GetGeometry()) < 2 && len(route.GetWaypoints()) < 2 {
		api.BadRequestResponse(w, r,
			errors.New("route needs at least 2 geometry points or 2 waypoints"))
		return
	}

	id, err := api.routeStoreService.Save(route)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusCreated,
		envelope{"data": createRouteResponse{RouteId: id}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) listRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	summaries, err := api.routeStoreService.List()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": summaries}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) getRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id := p.ByName("id")
	if id == "" {
		api.BadRequestResponse(w, r, errors.New("route id is required"))
		return
	}

	route, err := api.routeStoreService.Load(id)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewRouteResponse(route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *navigationAPI) deleteRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id := p.ByName("id")
	if id == "" {
		api.BadRequestResponse(w, r, errors.New("route id is required"))
		return
	}

	if err := api.routeStoreService.Delete(id); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": map[string]string{"deleted": id}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

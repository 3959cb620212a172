package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-location/internal/cascade"
	"storefront-location/internal/search"
	"storefront-location/internal/session"
	"storefront-location/internal/types"
)

// CreateSelectionRequest optionally seeds a new selection with known ids
type CreateSelectionRequest struct {
	CountryID int `json:"countryId" example:"1"`
	StateID   int `json:"stateId" example:"10"`
	CityID    int `json:"cityId" example:"100"`
}

// SetOptionRequest selects an option of one tier. An id of 0 clears the tier.
type SetOptionRequest struct {
	ID int `json:"id" example:"1"`
}

// SelectionResponse is the state of a selection session
type SelectionResponse struct {
	ID       string                `json:"id"`
	Snapshot cascade.Snapshot      `json:"snapshot"`
	Payload  types.LocationPayload `json:"payload"`
	Emitted  int                   `json:"emitted"` // Number of change notifications so far
}

// handleCreateSelection godoc
// @Summary Start a selection
// @Description Start a country, state and city selection. Seeded ids are kept if the loaded lists contain them.
// @Tags selections
// @Accept json
// @Produce json
// @Param request body CreateSelectionRequest false "Seed selection"
// @Success 201 {object} SelectionResponse
// @Failure 400 {object} ErrorResponse
// @Router /selections [post]
func (app *App) handleCreateSelection(c *gin.Context) {
	var req CreateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	seed := cascade.Selection{CountryID: req.CountryID, StateID: req.StateID, CityID: req.CityID}
	s, err := app.sessions.Create(c.Request.Context(), seed)
	if err != nil {
		app.fail(c, err, "failed to create selection")
		return
	}

	app.settle(c.Request.Context(), s)
	c.JSON(http.StatusCreated, newSelectionResponse(s))
}

// handleGetSelection godoc
// @Summary Get a selection
// @Description Retrieve the current snapshot and backend payload of a selection
// @Tags selections
// @Produce json
// @Param id path string true "Selection id"
// @Success 200 {object} SelectionResponse
// @Failure 404 {object} ErrorResponse
// @Router /selections/{id} [get]
func (app *App) handleGetSelection(c *gin.Context) {
	s, err := app.sessions.Get(c.Param("id"))
	if err != nil {
		app.fail(c, err, "failed to get selection")
		return
	}

	c.JSON(http.StatusOK, newSelectionResponse(s))
}

// handleSetSelection godoc
// @Summary Change one tier of a selection
// @Description Select a country, state or city by id. Changing a tier clears every tier below it.
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection id"
// @Param tier path string true "Tier" Enums(country, state, city)
// @Param request body SetOptionRequest true "Option id, 0 clears the tier"
// @Success 200 {object} SelectionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /selections/{id}/{tier} [put]
func (app *App) handleSetSelection(c *gin.Context) {
	s, err := app.sessions.Get(c.Param("id"))
	if err != nil {
		app.fail(c, err, "failed to get selection")
		return
	}

	var req SetOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	controller := s.Controller()
	var set func(int) (cascade.Selection, error)
	switch tier := c.Param("tier"); tier {
	case cascade.CountryTier.Name:
		set = controller.SetCountry
	case cascade.StateTier.Name:
		set = controller.SetState
	case cascade.CityTier.Name:
		set = controller.SetCity
	default:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("unknown tier %q", tier)})
		return
	}

	if _, err := set(req.ID); err != nil {
		app.fail(c, err, "failed to update selection", "session", s.ID)
		return
	}

	app.settle(c.Request.Context(), s)
	c.JSON(http.StatusOK, newSelectionResponse(s))
}

// handleListSelectionOptions godoc
// @Summary List the loaded options of a tier
// @Description Retrieve the option list a selection currently offers for one tier, optionally filtered
// @Tags selections
// @Produce json
// @Param id path string true "Selection id"
// @Param tier path string true "Tier" Enums(country, state, city)
// @Param q query string false "Search term"
// @Param fields query string false "Comma separated fields to search"
// @Success 200 {array} object
// @Failure 404 {object} ErrorResponse
// @Router /selections/{id}/options/{tier} [get]
func (app *App) handleListSelectionOptions(c *gin.Context) {
	s, err := app.sessions.Get(c.Param("id"))
	if err != nil {
		app.fail(c, err, "failed to get selection")
		return
	}

	var query OptionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	fields := search.ParseNames(query.Fields)

	controller := s.Controller()
	switch tier := c.Param("tier"); tier {
	case cascade.CountryTier.Name:
		c.JSON(http.StatusOK, nonNil(cascade.CountryTier.Search(controller.Countries(), query.Q, fields...)))
	case cascade.StateTier.Name:
		c.JSON(http.StatusOK, nonNil(cascade.StateTier.Search(controller.States(), query.Q, fields...)))
	case cascade.CityTier.Name:
		c.JSON(http.StatusOK, nonNil(cascade.CityTier.Search(controller.Cities(), query.Q, fields...)))
	default:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("unknown tier %q", tier)})
	}
}

// handleDeleteSelection godoc
// @Summary Discard a selection
// @Tags selections
// @Param id path string true "Selection id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /selections/{id} [delete]
func (app *App) handleDeleteSelection(c *gin.Context) {
	if err := app.sessions.Delete(c.Param("id")); err != nil {
		app.fail(c, err, "failed to delete selection")
		return
	}
	c.Status(http.StatusNoContent)
}

// settle waits for the session's fetches, bounded by the settle timeout. A
// timeout is not an error: the response then reports the tiers still loading.
func (app *App) settle(ctx context.Context, s *session.Session) {
	ctx, cancel := context.WithTimeout(ctx, app.cfg.App.SettleTimeout)
	defer cancel()

	if err := s.Controller().Wait(ctx); err != nil {
		app.logger.Debug("selection still loading", "session", s.ID, "error", err)
	}
}

func newSelectionResponse(s *session.Session) SelectionResponse {
	snap := s.Controller().Snapshot()
	_, emitted := s.LastEmitted()
	return SelectionResponse{
		ID:       s.ID,
		Snapshot: snap,
		Payload:  snap.Payload(),
		Emitted:  emitted,
	}
}

func nonNil[T any](options []T) []T {
	if options == nil {
		return []T{}
	}
	return options
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-location/internal/cascade"
	"storefront-location/internal/search"
	_ "storefront-location/internal/types" // imported for swagger type definitions
)

// OptionsQuery narrows an option list
type OptionsQuery struct {
	Q      string `form:"q"`      // Case-insensitive search term
	Fields string `form:"fields"` // Comma separated fields to search, e.g. "name,iso2"
}

// handleListCountries godoc
// @Summary List countries
// @Description Retrieve every country, optionally filtered by a search term over name, iso2 and iso3
// @Tags locations
// @Produce json
// @Param q query string false "Search term" example(ind)
// @Param fields query string false "Comma separated fields to search" example(name,iso2)
// @Success 200 {array} types.Country
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /locations/countries [get]
func (app *App) handleListCountries(c *gin.Context) {
	var query OptionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	countries, err := app.directory.FetchCountries(c.Request.Context())
	if err != nil {
		app.fail(c, err, "failed to list countries")
		return
	}

	c.JSON(http.StatusOK, cascade.CountryTier.Search(countries, query.Q, search.ParseNames(query.Fields)...))
}

// handleListStates godoc
// @Summary List states of a country
// @Description Retrieve the states or provinces of a country by its ISO2 code
// @Tags locations
// @Produce json
// @Param country path string true "Country ISO2 code" example(IN)
// @Param q query string false "Search term"
// @Param fields query string false "Comma separated fields to search" example(name,iso2)
// @Success 200 {array} types.State
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /locations/countries/{country}/states [get]
func (app *App) handleListStates(c *gin.Context) {
	var query OptionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	country := c.Param("country")
	states, err := app.directory.FetchStates(c.Request.Context(), country)
	if err != nil {
		app.fail(c, err, "failed to list states", "country", country)
		return
	}

	c.JSON(http.StatusOK, cascade.StateTier.Search(states, query.Q, search.ParseNames(query.Fields)...))
}

// handleListCities godoc
// @Summary List cities of a state
// @Description Retrieve the cities of a state by country and state ISO2 codes
// @Tags locations
// @Produce json
// @Param country path string true "Country ISO2 code" example(IN)
// @Param state path string true "State ISO2 code" example(DL)
// @Param q query string false "Search term"
// @Success 200 {array} types.City
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /locations/countries/{country}/states/{state}/cities [get]
func (app *App) handleListCities(c *gin.Context) {
	var query OptionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	country, state := c.Param("country"), c.Param("state")
	cities, err := app.directory.FetchCities(c.Request.Context(), country, state)
	if err != nil {
		app.fail(c, err, "failed to list cities", "country", country, "state", state)
		return
	}

	c.JSON(http.StatusOK, cascade.CityTier.Search(cities, query.Q, search.ParseNames(query.Fields)...))
}

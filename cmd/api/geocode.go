package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GeocodeInput defines the query parameters for forward geocoding
type GeocodeInput struct {
	Address string `form:"address" binding:"required"` // Free-text address
	Country string `form:"country"`                    // Optional ISO2 code restricting the search
}

// ReverseGeocodeInput defines the query parameters for reverse geocoding
type ReverseGeocodeInput struct {
	Latitude  *float64 `form:"latitude" binding:"required"`  // Latitude in decimal degrees
	Longitude *float64 `form:"longitude" binding:"required"` // Longitude in decimal degrees
}

// handleGeocode godoc
// @Summary Geocode an address
// @Description Resolve a free-text address to coordinates, optionally restricted to one country
// @Tags geocode
// @Produce json
// @Param address query string true "Free-text address" example(New Delhi, Delhi, India)
// @Param country query string false "ISO2 country filter" example(in)
// @Success 200 {object} types.Coordinates
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /geocode [get]
func (app *App) handleGeocode(c *gin.Context) {
	var input GeocodeInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	coords, err := app.geocoder.GeocodeAddress(c.Request.Context(), input.Address, input.Country)
	if err != nil {
		app.fail(c, err, "failed to geocode address", "address", input.Address)
		return
	}

	c.JSON(http.StatusOK, coords)
}

// handleReverseGeocode godoc
// @Summary Describe a coordinate
// @Description Resolve a latitude and longitude to city, state and country for a current-location display
// @Tags geocode
// @Produce json
// @Param latitude query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(28.6139)
// @Param longitude query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(77.2090)
// @Success 200 {object} types.LocationInfo
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /geocode/reverse [get]
func (app *App) handleReverseGeocode(c *gin.Context) {
	var input ReverseGeocodeInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	info, err := app.geocoder.ReverseGeocode(c.Request.Context(), *input.Latitude, *input.Longitude)
	if err != nil {
		app.fail(c, err, "failed to reverse geocode",
			"latitude", *input.Latitude,
			"longitude", *input.Longitude,
		)
		return
	}

	c.JSON(http.StatusOK, info)
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse reports liveness and the size of the selection state
type PingResponse struct {
	Message  string `json:"message" example:"pong"`
	Sessions int    `json:"sessions" example:"3"`        // Live selection sessions
	Catalog  bool   `json:"catalog" example:"true"`      // Option lists are persisted
	Geocoder string `json:"geocoder" example:"geoapify"` // Configured geocoding provider
}

// handlePing godoc
// @Summary Ping health check
// @Description Check if the API is running and how many selections are live
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:  "pong",
		Sessions: app.sessions.Len(),
		Catalog:  app.catalog != nil,
		Geocoder: app.cfg.Providers.Geocoder,
	})
}

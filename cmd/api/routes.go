package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Option lists
	locations := app.router.Group("/locations")
	locations.GET("/countries", app.handleListCountries)
	locations.GET("/countries/:country/states", app.handleListStates)
	locations.GET("/countries/:country/states/:state/cities", app.handleListCities)

	// Geocoding
	app.router.GET("/geocode", app.handleGeocode)
	app.router.GET("/geocode/reverse", app.handleReverseGeocode)

	// Selection sessions
	selections := app.router.Group("/selections")
	selections.POST("", app.handleCreateSelection)
	selections.GET("/:id", app.handleGetSelection)
	selections.PUT("/:id/:tier", app.handleSetSelection)
	selections.GET("/:id/options/:tier", app.handleListSelectionOptions)
	selections.DELETE("/:id", app.handleDeleteSelection)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}

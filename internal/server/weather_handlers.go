package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/service"
)

// GetLatestWeather always answers 200: either a real snapshot or a
// message-only body when the user has no coordinates and nothing is cached.
func GetLatestWeather(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		snap, err := service.LatestWeather(c.Request.Context(), app.WeatherRepo(), app.Weather(), app.Logger(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch weather")
			return
		}
		if snap.Weather != nil {
			app.Metrics().WeatherFetch("ok")
		} else {
			app.Metrics().WeatherFetch("no_data")
		}
		c.JSON(http.StatusOK, snap)
	}
}

package routes

import (
	"fleet_console/internal/controllers"
	"fleet_console/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole("driver"))
	{
		driver.GET("/journey", controllers.GetJourney)
		driver.POST("/journey/start", controllers.StartJourney)
		driver.POST("/journey/stop", controllers.StopJourney)
		driver.GET("/shifts", controllers.ListMyShifts)
	}
}

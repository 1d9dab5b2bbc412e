package routes

import (
	"fleet_console/internal/controllers"
	"fleet_console/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/drivers", controllers.CreateDriver)
		admin.GET("/drivers", controllers.ListDrivers)
		admin.GET("/drivers/:id", controllers.GetDriver)
		admin.PUT("/drivers/:id", controllers.UpdateDriver)
		admin.PATCH("/drivers/:id/status", controllers.SetDriverStatus)
		admin.DELETE("/drivers/:id", controllers.DeleteDriver)

		admin.POST("/routes", controllers.CreateRoute)
		admin.GET("/routes", controllers.ListRoutes)
		admin.GET("/routes/:id", controllers.GetRoute)
		admin.PUT("/routes/:id", controllers.UpdateRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)

		admin.POST("/shifts", controllers.AssignShift)
		admin.GET("/shifts", controllers.ListShifts)
		admin.PUT("/shifts/:id", controllers.EditShift)
		admin.PATCH("/shifts/:id/status", controllers.UpdateShiftStatus)
		admin.DELETE("/shifts/:id", controllers.DeleteShift)
	}
}

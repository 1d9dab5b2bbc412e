package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(ginlog.SetLogger())
	r.Use(gin.Recovery())

	AuthRoutes(r)
	AdminRoutes(r)
	DriverRoutes(r)

	return r
}

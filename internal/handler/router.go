package handler

import (
	"qzone/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterDeps is everything NewRouter wires together
type RouterDeps struct {
	Auth    *AuthHandler
	Sectors *SectorHandler
	System  *SystemHandler
	Metrics *middleware.Metrics
	Log     *logrus.Logger
}

// NewRouter builds the gin engine with every route and middleware
func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(d.Log), d.Metrics.Middleware(), middleware.CORS())

	d.Auth.RegisterAuthRoutes(router)

	api := router.Group("/api")
	api.GET("/health", d.System.Health)
	api.GET("/debug/users", d.Auth.DebugUsers)
	d.Sectors.RegisterSectorRoutes(api)

	router.GET("/", d.System.Landing)
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	router.NoRoute(d.System.Static)

	return router
}

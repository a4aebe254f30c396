package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/tracker-gateway/internal/api/http"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/graph"
	trackerhttp "github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/http"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Store          *repository.Store
	Schema         gql.Schema
	Metrics        *graph.Metrics
	Playground     bool
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Metrics)
	healthHandler.RegisterRoutes(r)

	api := r.Group("")
	api.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))

	trackerhttp.New(dep.Schema, dep.Playground).Register(api)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

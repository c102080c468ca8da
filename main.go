package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bicyclespokesperson/MapsTD-sub000/config"
	"github.com/bicyclespokesperson/MapsTD-sub000/elevation"
	"github.com/bicyclespokesperson/MapsTD-sub000/handlers"
	"github.com/bicyclespokesperson/MapsTD-sub000/metrics"
	"github.com/bicyclespokesperson/MapsTD-sub000/osm"
	"github.com/bicyclespokesperson/MapsTD-sub000/services"
	"github.com/bicyclespokesperson/MapsTD-sub000/store"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	cfg := config.Load()

	mapStore, err := store.NewMapStore(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to open map store: %v", err)
	}
	defer mapStore.Close()
	log.Printf("Map store ready at %s", cfg.StorePath)

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		log.Printf("Elevation cache enabled via redis at %s", cfg.RedisAddr)
	} else {
		log.Println("No REDIS_ADDR set, elevation caching disabled")
	}

	mapService := services.NewMapService(
		cfg,
		osm.NewClient(cfg.OverpassURL),
		elevation.NewClient(cfg.ElevationURL, cache),
		mapStore,
	)
	h := handlers.New(mapService, cfg)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsConfig))

	r.POST("/api/maps", h.CreateMap)
	r.GET("/api/maps/:id/roads", h.GetRoads)
	r.POST("/api/maps/:id/path", h.FindPath)
	r.POST("/api/maps/:id/boundary-entries", h.BoundaryEntries)
	r.POST("/api/maps/:id/demolition/simulate", h.SimulateDemolition)
	r.POST("/api/maps/:id/demolition", h.Demolish)
	r.POST("/api/maps/:id/point-on-road", h.PointOnRoad)
	r.POST("/api/maps/:id/elevation", h.Elevation)
	r.POST("/api/maps/:id/line-of-sight", h.LineOfSight)
	r.POST("/api/maps/:id/visibility", h.Visibility)

	r.POST("/api/maps/:id/save", h.SaveMap)
	r.GET("/api/saved", h.ListSaved)
	r.GET("/api/saved/:id", h.GetSaved)
	r.POST("/api/saved/:id/load", h.LoadSaved)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	log.Printf("MapsTD server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

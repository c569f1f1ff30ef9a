package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"playground_pos_backend/internal/config"
	"playground_pos_backend/internal/database"
	"playground_pos_backend/internal/router"
	"playground_pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	utils.InitJWT(cfg.JWT.Secret)

	database.InitDB(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SchemaPath,
	)
	utils.LogInfo("Database initialized", map[string]interface{}{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	engine := gin.New()
	engine.Use(utils.GinLogger())
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CorsAllowedOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	attendanceService := router.Setup(engine, database.GetDB())

	// Auto close attendance entries that were never clocked out, shortly
	// before midnight local time.
	scheduler := gocron.NewScheduler(time.Local)
	scheduler.Every(1).Day().At("23:55").Do(func() {
		closed, err := attendanceService.CloseOpenEntries()
		if err != nil {
			utils.LogError(err, "Nightly attendance auto close failed")
			return
		}
		if closed > 0 {
			utils.LogInfo("Closed open attendance entries", map[string]interface{}{"count": closed})
		}
	})
	scheduler.StartAsync()

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	utils.LogInfo("Server starting", map[string]interface{}{"addr": addr})
	if err := engine.Run(addr); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dacapperclub/pickboard/config"
	"github.com/dacapperclub/pickboard/controllers"
	"github.com/dacapperclub/pickboard/middleware"
	"github.com/dacapperclub/pickboard/store"
	"github.com/dacapperclub/pickboard/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, st store.PickStore) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.Ginzap())
	r.Use(utils.RecoveryWithZap())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.HeaderIngestToken, middleware.HeaderModToken},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// One limiter per route class; each class is an independent counter
	// space, and limiters run before any token check.
	readLimit := middleware.NewLimiter(time.Minute, cfg.ReadLimitPerMinute, "")
	ingestLimit := middleware.NewLimiter(time.Minute, cfg.IngestLimitPerMinute,
		"Too many incoming picks. Please slow down.")
	moderationLimit := middleware.NewLimiter(time.Minute, cfg.ModerationLimitPerMinute, "")

	mods := middleware.NewModeratorSet(cfg.ModTokens)
	pickController := controllers.NewPickController(st, mods)
	adminController := controllers.NewAdminController(st)

	r.GET("/health", readLimit.Handle(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true, "status": "healthy"})
	})

	r.GET("/picks", readLimit.Handle(), pickController.ListPicks)
	r.POST("/picks", ingestLimit.Handle(), middleware.IngestAuth(cfg.IngestToken), pickController.CreatePick)

	admin := r.Group("/admin", moderationLimit.Handle(), middleware.ModeratorRequired(mods))
	admin.POST("/hide", adminController.Hide)
	admin.POST("/unhide", adminController.Unhide)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Fail(ctx, http.StatusNotFound, "route not found")
	})

	return r
}

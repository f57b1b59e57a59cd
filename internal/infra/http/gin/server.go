package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"farmstay/internal/infra/config"
	"farmstay/internal/infra/obs"
)

type FarmHTTP interface {
	Catalog(c *gin.Context)
	Get(c *gin.Context)
	HostList(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	CheckStay(c *gin.Context)
	SetDays(c *gin.Context)
}

type ImageHTTP interface {
	List(c *gin.Context)
	Upload(c *gin.Context)
	Remove(c *gin.Context)
	SetPrimary(c *gin.Context)
}

type Handlers struct {
	Farm           FarmHTTP
	Availability   AvailabilityHTTP
	Image          ImageHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Farm != nil {
		api.GET("/farms", h.Farm.Catalog)
		api.GET("/farms/:id", h.Farm.Get)
	}
	if h.Availability != nil {
		api.GET("/farms/:id/calendar", h.Availability.Calendar)
		api.GET("/farms/:id/availability", h.Availability.CheckStay)
	}
	if h.Image != nil {
		api.GET("/farms/:id/images", h.Image.List)
	}

	hostGroup := api.Group("/host/farms")
	if h.Farm != nil {
		hostGroup.GET("", h.Farm.HostList)
		hostGroup.POST("", h.Farm.Create)
		hostGroup.PUT("/:id", h.Farm.Update)
	}
	if h.Availability != nil {
		hostGroup.POST("/:id/availability", h.Availability.SetDays)
	}
	if h.Image != nil {
		hostGroup.POST("/:id/images", h.Image.Upload)
		hostGroup.DELETE("/:id/images/:imageID", h.Image.Remove)
		hostGroup.POST("/:id/images/:imageID/primary", h.Image.SetPrimary)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}

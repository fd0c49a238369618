package router

import (
	"net/http"

	"github.com/finwall/backend/internal/config"
	v1 "github.com/finwall/backend/internal/controllers/v1"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is overridden with ldflags for release builds.
var version = "0.0.0"

// Config sets up the router with all middlewares.
func Config(cfg config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// We do not process client IPs, so there is no reason to trust any proxy
	r.ForwardedByClientIP = false
	_ = r.SetTrustedProxies([]string{})

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "This HTTP method is not allowed for the endpoint you called"})
	})

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	return r
}

// AttachRoutes attaches all API routes to the router group that is passed in.
// Separating this from Config allows tests to attach the routes to a plain engine.
func AttachRoutes(cfg config.Config, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/healthz", GetHealth)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Server.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1Group := group.Group("/v1")
	v1.RegisterRootRoutes(v1Group)

	v1.RegisterBudgetRoutes(v1Group.Group("/budgets"))
	v1.RegisterCategoryRoutes(v1Group.Group("/categories"))
	v1.RegisterExportRoutes(v1Group.Group("/export"))
	v1.RegisterMatchRuleRoutes(v1Group.Group("/match-rules"))
	v1.RegisterReceiptRoutes(v1Group.Group("/receipts"))
	v1.RegisterRecurringRoutes(v1Group.Group("/recurring"))
	v1.RegisterScheduleRoutes(v1Group.Group("/schedules"))
	v1.RegisterTransactionRoutes(v1Group.Group("/transactions"))
	v1.RegisterWalletRoutes(v1Group.Group("/wallets"))
}

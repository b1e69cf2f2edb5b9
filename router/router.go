package router

import (
	"log"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agro/pkg/middleware"
)

type Options struct {
	APIKey        string
	RequireAPIKey bool
	CORSOrigins   []string
}

func New(
	e *echo.Echo,
	opts Options,
	producerCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Export(echo.Context) error
	},
	dashCtrl interface {
		TotalProperties(echo.Context) error
		TotalHectares(echo.Context) error
		ByState(echo.Context) error
		ByCrop(echo.Context) error
		LandUse(echo.Context) error
		Summary(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	// "/producers/" and "/producers" are the same route
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			log.Printf("[http] %s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	if len(opts.CORSOrigins) > 0 {
		e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins:  opts.CORSOrigins,
			AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.APIKeyHeader},
			ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
		}))
	}

	e.GET("/health", healthCtrl.Health)

	auth := middleware.APIKey(opts.RequireAPIKey, opts.APIKey)

	p := e.Group("/producers", auth)
	p.POST("", producerCtrl.Create)
	p.GET("", producerCtrl.List)
	p.GET("/export", producerCtrl.Export)
	p.GET("/:id", producerCtrl.Get)
	p.PUT("/:id", producerCtrl.Update)
	p.DELETE("/:id", producerCtrl.Delete)

	d := e.Group("/dashboard", auth)
	d.GET("/total_properties", dashCtrl.TotalProperties)
	d.GET("/total_hectares", dashCtrl.TotalHectares)
	d.GET("/by_state", dashCtrl.ByState)
	d.GET("/by_crop", dashCtrl.ByCrop)
	d.GET("/land_use", dashCtrl.LandUse)
	d.GET("/summary", dashCtrl.Summary)
	return e
}

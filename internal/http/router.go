package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"feedsync/internal/handler"
)

type Handlers struct {
	Feeds      *handler.FeedHandler
	Articles   *handler.ArticleHandler
	Categories *handler.CategoryHandler
	OPML       *handler.OPMLHandler
}

func NewRouter(h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	e.GET("/healthz", healthz)

	api := e.Group("/api")
	h.Feeds.RegisterRoutes(api)
	h.Articles.RegisterRoutes(api)
	h.Categories.RegisterRoutes(api)
	h.OPML.RegisterRoutes(api)

	return e
}

func healthz(c echo.Context) error {
	return c.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
}

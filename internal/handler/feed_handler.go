package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"feedsync/internal/model"
	"feedsync/internal/service"
)

type FeedHandler struct {
	feeds   service.FeedService
	refresh service.RefreshService
}

type createFeedRequest struct {
	URL        string  `json:"url"`
	CategoryID *string `json:"categoryId"`
	Title      string  `json:"title"`
}

type updateFeedRequest struct {
	Title           *string `json:"title"`
	CategoryID      *string `json:"categoryId"`
	ClearCategory   bool    `json:"clearCategory"`
	IsActive        *bool   `json:"isActive"`
	RefreshInterval *int    `json:"refreshInterval"`
}

type validateFeedRequest struct {
	URL string `json:"url"`
}

func NewFeedHandler(feeds service.FeedService, refresh service.RefreshService) *FeedHandler {
	return &FeedHandler{feeds: feeds, refresh: refresh}
}

func (h *FeedHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/feeds", h.Create)
	g.GET("/feeds", h.List)
	g.POST("/feeds/validate", h.Validate)
	g.POST("/feeds/refresh", h.RefreshAll)
	g.GET("/feeds/:id", h.Get)
	g.PATCH("/feeds/:id", h.Update)
	g.DELETE("/feeds/:id", h.Delete)
	g.POST("/feeds/:id/refresh", h.Refresh)
	g.POST("/feeds/:id/recount", h.Recount)
}

// Create subscribes to a feed, fetching it once for its initial articles.
func (h *FeedHandler) Create(c echo.Context) error {
	var req createFeedRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	feed, err := h.feeds.Add(c.Request().Context(), req.URL, req.CategoryID, req.Title)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, feed)
}

func (h *FeedHandler) List(c echo.Context) error {
	feeds, err := h.feeds.List(c.Request().Context(), optionalQuery(c, "categoryId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if feeds == nil {
		feeds = []model.Feed{}
	}
	return c.JSON(http.StatusOK, feeds)
}

func (h *FeedHandler) Get(c echo.Context) error {
	feed, err := h.feeds.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, feed)
}

// Validate checks whether a URL serves a parseable feed. Failures are
// reported in the body with status 200.
func (h *FeedHandler) Validate(c echo.Context) error {
	var req validateFeedRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	if strings.TrimSpace(req.URL) == "" {
		return badRequest(c)
	}
	return c.JSON(http.StatusOK, h.feeds.Validate(c.Request().Context(), req.URL))
}

func (h *FeedHandler) Update(c echo.Context) error {
	var req updateFeedRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	feed, err := h.feeds.Update(c.Request().Context(), c.Param("id"), service.FeedUpdate{
		Title:           req.Title,
		CategoryID:      req.CategoryID,
		ClearCategory:   req.ClearCategory,
		IsActive:        req.IsActive,
		RefreshInterval: req.RefreshInterval,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, feed)
}

// Delete unsubscribes from a feed and removes its articles.
func (h *FeedHandler) Delete(c echo.Context) error {
	if err := h.feeds.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FeedHandler) Refresh(c echo.Context) error {
	result, err := h.refresh.RefreshFeed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *FeedHandler) RefreshAll(c echo.Context) error {
	batch, err := h.refresh.RefreshAll(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, batch)
}

func (h *FeedHandler) Recount(c echo.Context) error {
	feed, err := h.feeds.RecalculateCounts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, feed)
}

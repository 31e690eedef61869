package handler

import (
	"html"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"feedsync/internal/model"
	"feedsync/internal/service"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	excerptLength   = 240
)

type ArticleHandler struct {
	service   service.ArticleService
	sanitizer *bluemonday.Policy
}

func NewArticleHandler(service service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service, sanitizer: bluemonday.StrictPolicy()}
}

func (h *ArticleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/articles", h.List)
	g.POST("/articles/mark-read", h.MarkAllAsRead)
	g.GET("/articles/:id", h.Get)
	g.PATCH("/articles/:id/read", h.UpdateReadStatus)
	g.PATCH("/articles/:id/star", h.UpdateStarredStatus)
}

type articleResponse struct {
	model.Article
	Excerpt string `json:"excerpt"`
}

type articleListResponse struct {
	Articles []articleResponse `json:"articles"`
	HasMore  bool              `json:"hasMore"`
}

type updateReadRequest struct {
	Read bool `json:"read"`
}

type updateStarredRequest struct {
	Starred bool `json:"starred"`
}

type markAllReadRequest struct {
	FeedID *string `json:"feedId,omitempty"`
}

// List returns a page of articles, newest first.
func (h *ArticleHandler) List(c echo.Context) error {
	unreadOnly, err := boolQuery(c, "unreadOnly")
	if err != nil {
		return badRequest(c)
	}
	starredOnly, err := boolQuery(c, "starredOnly")
	if err != nil {
		return badRequest(c)
	}
	limit, err := intQuery(c, "limit", defaultPageSize)
	if err != nil || limit < 1 {
		return badRequest(c)
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil || offset < 0 {
		return badRequest(c)
	}

	articles, err := h.service.List(c.Request().Context(), service.ArticleListParams{
		FeedID:      optionalQuery(c, "feedId"),
		CategoryID:  optionalQuery(c, "categoryId"),
		UnreadOnly:  unreadOnly,
		StarredOnly: starredOnly,
		Limit:       limit + 1,
		Offset:      offset,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	hasMore := len(articles) > limit
	if hasMore {
		articles = articles[:limit]
	}
	response := articleListResponse{Articles: make([]articleResponse, 0, len(articles)), HasMore: hasMore}
	for _, article := range articles {
		response.Articles = append(response.Articles, h.toArticleResponse(article))
	}
	return c.JSON(http.StatusOK, response)
}

func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, h.toArticleResponse(article))
}

func (h *ArticleHandler) UpdateReadStatus(c echo.Context) error {
	var req updateReadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	article, err := h.service.MarkAsRead(c.Request().Context(), c.Param("id"), req.Read)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, h.toArticleResponse(article))
}

func (h *ArticleHandler) UpdateStarredStatus(c echo.Context) error {
	var req updateStarredRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	article, err := h.service.MarkAsStarred(c.Request().Context(), c.Param("id"), req.Starred)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, h.toArticleResponse(article))
}

// MarkAllAsRead marks every article read, or only one feed's when feedId is given.
func (h *ArticleHandler) MarkAllAsRead(c echo.Context) error {
	var req markAllReadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	count, err := h.service.MarkAllAsRead(c.Request().Context(), req.FeedID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

func (h *ArticleHandler) toArticleResponse(article model.Article) articleResponse {
	source := article.Content
	if article.Summary != nil && *article.Summary != "" {
		source = *article.Summary
	}
	return articleResponse{Article: article, Excerpt: h.excerpt(source)}
}

// excerpt strips markup and truncates to excerptLength runes.
func (h *ArticleHandler) excerpt(content string) string {
	text := html.UnescapeString(h.sanitizer.Sanitize(content))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptLength])) + "…"
}

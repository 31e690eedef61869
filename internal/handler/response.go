package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"feedsync/internal/fetcher"
	"feedsync/internal/logger"
	"feedsync/internal/service"
)

type errorResponse struct {
	Error      string            `json:"error"`
	ErrorType  fetcher.ErrorType `json:"errorType,omitempty"`
	StatusCode int               `json:"statusCode,omitempty"`
}

type countResponse struct {
	Count int `json:"count"`
}

func writeServiceError(c echo.Context, err error) error {
	var fetchErr *fetcher.FetchError
	hasFetchErr := errors.As(err, &fetchErr)

	switch {
	case errors.Is(err, service.ErrInvalid):
		resp := errorResponse{Error: "invalid request"}
		if hasFetchErr {
			resp.ErrorType = fetchErr.Type
		}
		return c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "conflict"})
	case errors.Is(err, service.ErrFeedFetch):
		resp := errorResponse{Error: "feed fetch failed"}
		if hasFetchErr {
			resp.ErrorType = fetchErr.Type
			resp.StatusCode = fetchErr.StatusCode
		}
		return c.JSON(http.StatusBadGateway, resp)
	default:
		logger.Error("http request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
}

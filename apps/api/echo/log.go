package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/studentlogs/core/studentlog"
)

type logApi struct {
	svc studentlog.Service
}

func registerLogAPI(g *echo.Group, svc studentlog.Service) {
	api := logApi{svc: svc}

	lg := g.Group("/logs")
	lg.GET("", api.query)
	lg.POST("", api.create)
}

// Handlers

func (api *logApi) query(ctx echo.Context) error {
	var filter studentlog.QueryFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return withMessage(err, "Error fetching logs")
	}

	logs, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return withMessage(err, "Error fetching logs")
	}
	return ctx.JSON(http.StatusOK, logs)
}

func (api *logApi) create(ctx echo.Context) error {
	var data studentlog.NewLog
	if err := ctx.Bind(&data); err != nil {
		return withMessage(err, "Error creating log")
	}

	lg, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return withMessage(err, "Error creating log")
	}
	return ctx.JSON(http.StatusCreated, lg)
}

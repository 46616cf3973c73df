package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/studentlogs/core/course"
)

type courseApi struct {
	svc course.Service
}

func registerCourseAPI(g *echo.Group, svc course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return withMessage(err, "Error fetching courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return withMessage(err, "Error creating course")
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return withMessage(err, "Error creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

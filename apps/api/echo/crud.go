package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

// crudApi serves the CRUD endpoints of one resource stored in a core.Repository.
type crudApi[T any, Q any] struct {
	name string
	repo core.Repository[T, Q]

	// cleanFilter normalizes a bound query filter
	cleanFilter func(*Q)
	// validate cleans & validates a record about to be saved
	validate func(*T) error
	setID    func(*T, string)
	// paginate is optional; it is only applied to requests carrying page or size params
	paginate func(Q, []T) []T
}

func registerCrudAPI[T any, Q any](g *echo.Group, path string, api *crudApi[T, Q]) {
	rg := g.Group(path)
	rg.GET("", api.query)
	rg.POST("", api.create)

	// detail endpoints
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

func (api *crudApi[T, Q]) query(ctx echo.Context) error {
	var filter Q
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	api.cleanFilter(&filter)

	objs, err := api.repo.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrapf(err, "querying %s", api.name)
	}
	if api.paginate != nil && isPaginated(ctx) {
		objs = api.paginate(filter, objs)
	}
	return ctx.JSON(http.StatusOK, objs)
}

func (api *crudApi[T, Q]) create(ctx echo.Context) error {
	var obj T
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &obj); err != nil {
		return errors.Wrapf(err, "binding %s", api.name)
	}
	if err := api.validate(&obj); err != nil {
		return err
	}

	obj, err := api.repo.Create(ctx.Request().Context(), obj)
	if err != nil {
		return errors.Wrapf(err, "creating %s", api.name)
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *crudApi[T, Q]) retrieve(ctx echo.Context) error {
	obj, err := api.repo.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrapf(err, "getting %s", api.name)
	}
	return ctx.JSON(http.StatusOK, obj)
}

// update replaces the whole record; the id in the body (if any) is ignored.
func (api *crudApi[T, Q]) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")
	if _, err := api.repo.GetByID(reqCtx, id); err != nil {
		return errors.Wrapf(err, "getting %s", api.name)
	}

	var obj T
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &obj); err != nil {
		return errors.Wrapf(err, "binding %s", api.name)
	}
	api.setID(&obj, id)
	if err := api.validate(&obj); err != nil {
		return err
	}

	obj, err := api.repo.Update(reqCtx, obj)
	if err != nil {
		return errors.Wrapf(err, "updating %s", api.name)
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *crudApi[T, Q]) destroy(ctx echo.Context) error {
	obj, err := api.repo.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrapf(err, "deleting %s", api.name)
	}
	return ctx.JSON(http.StatusOK, obj)
}

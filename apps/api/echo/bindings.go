package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

var (
	pageParam = "page"
	sizeParam = "size"

	errInvalidQuery = core.NewValidationError(errors.New("invalid query parameters"))
)

// bindQuery binds the query string to filter (fields tagged `query`).
func bindQuery(ctx echo.Context, filter interface{}) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, filter); err != nil {
		return errInvalidQuery
	}
	return nil
}

// isPaginated reports whether the request asks for a page of results.
func isPaginated(ctx echo.Context) bool {
	data := ctx.QueryParams()
	_, hasPage := data[pageParam]
	_, hasSize := data[sizeParam]
	return hasPage || hasSize
}

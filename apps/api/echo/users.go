package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core/admin"
	"github.com/trezcool/masomo-admin/core/user"
)

// userApi serves /usuarios. Reads return users; writes take & return admins.
type userApi struct {
	repo       user.Repository
	validate   *validator.Validate
	translator ut.Translator
}

func registerUserAPI(g *echo.Group, opts *Options) {
	api := userApi{
		repo:       opts.Users,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	ug := g.Group("/usuarios")
	ug.GET("", api.query)
	ug.POST("", api.create)

	// detail endpoints
	ug.GET("/:id", api.retrieve)
	ug.PUT("/:id", api.update)
	ug.DELETE("/:id", api.destroy)
}

func (api *userApi) query(ctx echo.Context) error {
	var filter user.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	filter.Clean()

	accs, err := api.repo.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(accs))
	for _, acc := range accs {
		users = append(users, acc.User)
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) create(ctx echo.Context) error {
	var data admin.Admin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Admin")
	}
	if err := data.ValidateNew(api.validate, api.translator); err != nil {
		return err
	}

	acc := data.Account()
	acc.ID = ""
	if err := acc.SetPassword(data.Senha); err != nil {
		return errors.Wrap(err, "setting password")
	}
	acc, err := api.repo.Create(ctx.Request().Context(), acc)
	if err != nil {
		return errors.Wrap(err, "creating admin")
	}
	return ctx.JSON(http.StatusCreated, admin.FromAccount(acc))
}

func (api *userApi) retrieve(ctx echo.Context) error {
	acc, err := api.repo.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting user")
	}
	return ctx.JSON(http.StatusOK, acc.User)
}

// update replaces an admin's profile. The password is only changed when one is sent.
func (api *userApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")
	if _, err := api.repo.GetByID(reqCtx, id); err != nil {
		return errors.Wrap(err, "getting user")
	}

	var data admin.Admin
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to Admin")
	}
	data.ID = id
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	acc := data.Account()
	if data.Senha != "" {
		if err := acc.SetPassword(data.Senha); err != nil {
			return errors.Wrap(err, "setting password")
		}
	}
	acc, err := api.repo.Update(reqCtx, acc)
	if err != nil {
		return errors.Wrap(err, "updating admin")
	}
	return ctx.JSON(http.StatusOK, admin.FromAccount(acc))
}

func (api *userApi) destroy(ctx echo.Context) error {
	acc, err := api.repo.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.JSON(http.StatusOK, acc.User)
}

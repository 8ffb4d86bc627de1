package echoapi

import (
	"net/http"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/user"
	"github.com/trezcool/masomo-admin/services/auth"
)

const contextClaimsKey = "claims"

type authApi struct {
	repo       user.Repository
	appName    string
	secretKey  []byte
	tokenTTL   time.Duration
	validate   *validator.Validate
	translator ut.Translator
}

func registerAuthAPI(g *echo.Group, opts *Options) {
	api := authApi{
		repo:       opts.Users,
		appName:    opts.AppName,
		secretKey:  opts.SecretKey,
		tokenTTL:   opts.TokenTTL,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	// TODO: rate limit `/login`
	g.POST("/login", api.login)
}

func (api *authApi) authenticate(ctx echo.Context, uname, pwd string) (*auth.Claims, error) {
	acc, err := api.repo.GetByUsername(ctx.Request().Context(), core.CleanString(uname, true /* lower */))
	if err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding user by username")
	}
	if err = acc.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	if !acc.Status {
		return nil, errAccountDeactivated
	}
	return auth.NewClaims(api.appName, acc.User, api.tokenTTL), nil
}

func (api *authApi) login(ctx echo.Context) error {
	var data auth.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := core.TranslateErrors(api.validate.Struct(data), api.translator); err != nil {
		return err
	}

	claims, err := api.authenticate(ctx, data.Username, data.Password)
	if err != nil {
		return err
	}
	token, err := auth.GenerateToken(claims, api.secretKey)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, auth.LoginResponse{Token: token})
}

// jwtMiddleware authenticates requests with a "Bearer <jwt>" Authorization header.
func jwtMiddleware(secretKey []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				return errMissingToken
			}
			claims, err := auth.ParseToken(token, secretKey)
			if err != nil {
				return errInvalidToken
			}
			ctx.Set(contextClaimsKey, claims)
			return next(ctx)
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func getContextClaims(ctx echo.Context) (auth.Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*auth.Claims); ok {
		return *claims, nil
	}
	return auth.Claims{}, errUnauthorized
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/user"
)

// tokens are renewed this long before they expire
const renewMargin = 30 * time.Second

// TokenSource provides the bearer token sent with every API request.
// An empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a token obtained out of band (config or `admin login`).
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// SignedToken mints its own tokens for a user with the API's shared secret.
// Only meant for development against the sandbox API.
type SignedToken struct {
	issuer string
	secret []byte
	ttl    time.Duration
	usr    user.User

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewSignedToken(conf *core.Config, usr user.User) *SignedToken {
	return &SignedToken{
		issuer: conf.AppName,
		secret: []byte(conf.API.SecretKey),
		ttl:    conf.API.JWTExpirationDelta,
		usr:    usr,
	}
}

func (st *SignedToken) Token(context.Context) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.token != "" && time.Now().Add(renewMargin).Before(st.expiresAt) {
		return st.token, nil
	}
	claims := NewClaims(st.issuer, st.usr, st.ttl)
	token, err := GenerateToken(claims, st.secret)
	if err != nil {
		return "", err
	}
	st.token, st.expiresAt = token, time.Unix(claims.ExpiresAt, 0)
	return token, nil
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token at POST /login.
func Login(ctx context.Context, transport core.Transport, username, password string) (string, error) {
	data, err := json.Marshal(LoginRequest{Username: core.CleanString(username, true /* lower */), Password: password})
	if err != nil {
		return "", errors.Wrap(err, "marshalling LoginRequest")
	}
	req := core.Request{
		Endpoint: "/login",
		Config:   &core.RequestConfig{Method: http.MethodPost, Data: data},
	}

	var resp LoginResponse
	if err := transport.Fetch(ctx, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", core.NewRequestError(core.KindParse, "login response carries no token", nil)
	}
	return resp.Token, nil
}

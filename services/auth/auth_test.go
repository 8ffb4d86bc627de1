package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/user"
	"github.com/trezcool/masomo-admin/tests"
)

func TestGenerateAndParseToken(t *testing.T) {
	usr := user.User{ID: "u1", Username: "root", Tipo: user.TipoAdministrador}
	secret := []byte("secret")

	token, err := GenerateToken(NewClaims("Masomo Admin", usr, time.Minute), secret)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "root", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.IsStudent)
	assert.Equal(t, []string{user.TipoAdministrador}, claims.Roles)

	_, err = ParseToken(token, []byte("other secret"))
	assert.Equal(t, ErrInvalidToken, err)

	expired, err := GenerateToken(NewClaims("Masomo Admin", usr, -time.Minute), secret)
	require.NoError(t, err)
	_, err = ParseToken(expired, secret)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestSignedToken_cachesToken(t *testing.T) {
	conf := core.NewTestConfig()
	st := NewSignedToken(conf, user.User{ID: "u1", Username: "root"})

	t1, err := st.Token(context.Background())
	require.NoError(t, err)
	t2, err := st.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, t1, t2)

	claims, err := ParseToken(t1, []byte(conf.API.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("abc").Token(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestLogin(t *testing.T) {
	ft := testutil.NewFakeTransport()
	ctx := context.Background()

	ft.Respond(t, http.MethodPost, "/login", LoginResponse{Token: "tok"})
	token, err := Login(ctx, ft, " Root ", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.JSONEq(t, `{"username":"root","password":"pwd"}`, string(ft.LastRequest(t).Body()))

	ft.Respond(t, http.MethodPost, "/login", LoginResponse{})
	_, err = Login(ctx, ft, "root", "pwd")
	assert.Error(t, err)

	ft.Fail(http.MethodPost, "/login", core.NewRejectedError(http.StatusBadRequest, "authentication failed"))
	_, err = Login(ctx, ft, "root", "bad")
	assert.EqualError(t, err, "authentication failed")
}

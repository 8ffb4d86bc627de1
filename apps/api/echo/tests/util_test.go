package tests

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trezcool/masomo-admin/apps/api/echo"
	"github.com/trezcool/masomo-admin/core/user"
	"github.com/trezcool/masomo-admin/core/validation"
	"github.com/trezcool/masomo-admin/services/auth"
	"github.com/trezcool/masomo-admin/services/logger"
	"github.com/trezcool/masomo-admin/storage/inmem"
	"github.com/trezcool/masomo-admin/storage/seed"
	"github.com/trezcool/masomo-admin/tests"
)

const (
	appName  = "Masomo Admin"
	adminPwd = "S3cr3t!pass"
)

var (
	secretKey = []byte("secret")

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

type testApp struct {
	echoapi.Server
	repos seed.Repositories
	root  user.Account
}

// setup starts a sandbox backed by fresh in-memory repositories, with one active admin (root).
func setup(t *testing.T) *testApp {
	validate, translator := validation.New()
	repos := seed.Repositories{
		Users:       inmemdb.NewUserRepository(),
		Students:    inmemdb.NewStudentRepository(),
		Courses:     inmemdb.NewCourseRepository(),
		Permissions: inmemdb.NewPermissionRepository(),
	}

	app := &testApp{
		Server: echoapi.NewServer(&echoapi.Options{
			Debug:          true,
			DisableReqLogs: true,
			AppName:        appName,
			SecretKey:      secretKey,
			TokenTTL:       10 * time.Minute,
			Logger:         logsvc.NewStdLogger(&bytes.Buffer{}, "", true),
			Validate:       validate,
			Translator:     translator,
			Users:          repos.Users,
			Students:       repos.Students,
			Courses:        repos.Courses,
			Permissions:    repos.Permissions,
		}),
		repos: repos,
	}
	app.root = createAccount(t, repos.Users, "root", user.TipoAdministrador, adminPwd, user.Active)
	return app
}

func createAccount(t *testing.T, repo user.Repository, uname, tipo, pwd string, status user.Status) user.Account {
	acc := user.Account{User: user.User{Username: uname, Nome: "User " + uname, Tipo: tipo, Status: status}}
	if pwd != "" {
		if err := acc.SetPassword(pwd); err != nil {
			t.Fatalf("createAccount(): %v", err)
		}
	}
	acc, err := repo.Create(context.Background(), acc)
	if err != nil {
		t.Fatalf("createAccount(): %v", err)
	}
	return acc
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, usr user.User) string {
	token, err := auth.GenerateToken(auth.NewClaims(appName, usr, time.Minute), secretKey)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v (body %s)", rec.Code, wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := testutil.JSONBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("JSONBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

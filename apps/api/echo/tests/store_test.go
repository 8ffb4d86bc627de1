package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/admin"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/user"
	"github.com/trezcool/masomo-admin/services/auth"
	"github.com/trezcool/masomo-admin/services/transport"
	"github.com/trezcool/masomo-admin/store"
	"github.com/trezcool/masomo-admin/tests"
)

// newStore returns a store talking to app over real HTTP, logged in as root.
func newStore(t *testing.T, app *testApp, policy store.EditPolicy) *store.Store {
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	anon := transport.New(transport.Options{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second})
	token, err := auth.Login(ctx, anon, "root", adminPwd)
	require.NoError(t, err)

	return store.New(store.Options{
		Transport: transport.New(transport.Options{
			BaseURL: srv.URL + "/api",
			Timeout: 5 * time.Second,
			Tokens:  auth.StaticToken(token),
		}),
		Logger:     &testutil.RecordingLogger{},
		EditPolicy: policy,
	})
}

func TestStore_againstSandbox_courses(t *testing.T) {
	app := setup(t)
	s := newStore(t, app, store.EditReplace)
	ctx := context.Background()

	fis, err := s.AddCourse(ctx, course.Curso{Nome: "Física", Modalidade: course.ModalidadeEAD})
	require.NoError(t, err)
	assert.NotEmpty(t, fis.ID)
	_, err = s.AddCourse(ctx, course.Curso{Nome: "Química"})
	require.NoError(t, err)
	assert.Len(t, s.Courses(), 2)

	found, err := s.SearchCourses(ctx, " física ")
	require.NoError(t, err)
	assert.Equal(t, []course.Curso{fis}, found)
	assert.Equal(t, found, s.Courses())

	page, err := s.SearchCourses(ctx, "", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Química", page[0].Nome)

	require.NoError(t, s.GetCourses(ctx))
	require.Len(t, s.Courses(), 2)

	fis.CargaHoraria = 90
	edited, err := s.EditCourse(ctx, fis.ID, fis)
	require.NoError(t, err)
	assert.Equal(t, 90, edited.CargaHoraria)
	assert.Len(t, s.Courses(), 2)
	got, ok := s.FindCourse(fis.ID)
	require.True(t, ok)
	assert.Equal(t, edited, got)

	deleted, err := s.DeleteCourse(ctx, fis.ID)
	require.NoError(t, err)
	assert.Equal(t, fis.ID, deleted.ID)
	assert.Len(t, s.Courses(), 1)

	_, err = s.DeleteCourse(ctx, fis.ID)
	require.Error(t, err)
	assert.Equal(t, "not found", err.Error())
	assert.True(t, core.IsNotFound(err))
	assert.Len(t, s.Courses(), 1)
}

func TestStore_againstSandbox_validationRejected(t *testing.T) {
	app := setup(t)
	s := newStore(t, app, store.EditAppend)
	ctx := context.Background()

	_, err := s.AddStudent(ctx, student.Aluno{Nome: "Ana", CPF: "123", Matricula: "M1"})
	require.Error(t, err)
	assert.Equal(t, "cpf: invalid CPF", err.Error())

	var reqErr *core.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, core.KindRejected, reqErr.Kind)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.Empty(t, s.Students())
}

func TestStore_againstSandbox_students(t *testing.T) {
	app := setup(t)
	s := newStore(t, app, store.EditAppend)
	ctx := context.Background()

	ana, err := s.AddStudent(ctx, student.Aluno{Nome: "Ana", CPF: "529.982.247-25", Matricula: "m12345"})
	require.NoError(t, err)
	assert.Equal(t, "M12345", ana.Matricula)

	found, err := s.SearchStudents(ctx, "", "", "M12345")
	require.NoError(t, err)
	assert.Equal(t, []student.Aluno{ana}, found)

	ana.Nome = "Ana Maria"
	_, err = s.EditStudent(ctx, ana.ID, ana)
	require.NoError(t, err)
	// append-on-edit: the previous version is still cached
	assert.Len(t, s.Students(), 2)

	_, err = s.DeleteStudent(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Students())
}

func TestStore_againstSandbox_usersAndAdmins(t *testing.T) {
	app := setup(t)
	s := newStore(t, app, store.EditAppend)
	ctx := context.Background()

	bob, err := s.AddAdmin(ctx, admin.Admin{Nome: "Bob", Username: "bobby", Senha: "An0ther!pwd", Status: user.Active})
	require.NoError(t, err)
	assert.Equal(t, user.TipoAdministrador, bob.Tipo)

	require.NoError(t, s.GetUsers(ctx))
	assert.Len(t, s.Users(), 2)

	actives, err := s.SearchUsers(ctx, "bob", "", "true")
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, bob.ID, actives[0].ID)
	assert.Equal(t, user.EditAdminRoute, actives[0].EditRoute())

	bob.Telefone = "+5511999990000"
	edited, err := s.EditAdmin(ctx, bob.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, "+5511999990000", edited.Telefone)
	assert.Len(t, s.Admins(), 2)

	_, err = s.DeleteAdmin(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Admins())

	require.NoError(t, s.GetUsers(ctx))
	require.Len(t, s.Users(), 1)
	_, err = s.DeleteUser(ctx, app.root.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Users())
}

func TestStore_againstSandbox_permissions(t *testing.T) {
	app := setup(t)
	s := newStore(t, app, store.EditReplace)
	ctx := context.Background()

	p, err := s.AddPermission(ctx, permission.Permissao{Descricao: "Ler notas", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", p.Role)

	// list & delete go through the slash-less endpoint
	require.NoError(t, s.GetPermissions(ctx))
	assert.Equal(t, []permission.Permissao{p}, s.Permissions())

	found, err := s.SearchPermissions(ctx, "notas")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	p.Descricao = "Ler e editar notas"
	_, err = s.EditPermission(ctx, p.ID, p)
	require.NoError(t, err)
	assert.Equal(t, []permission.Permissao{p}, s.Permissions())

	_, err = s.DeletePermission(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Permissions())
}

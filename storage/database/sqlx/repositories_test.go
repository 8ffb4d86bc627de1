package sqlxrepos

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/user"
	"github.com/trezcool/masomo-admin/storage/database"
)

// prepareDB connects to TEST_DATABASE_URL, migrates it and empties every table.
func prepareDB(t *testing.T) *sqlx.DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.OpenURL(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	_, err = db.ExecContext(ctx, "TRUNCATE account, aluno, curso, permissao")
	require.NoError(t, err)
	return db
}

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.ilike("nome", "50%_off")
	w.ilike("username", "")
	w.eq("status", true, true)
	w.eq("tipo", "", false)
	assert.Equal(t, " WHERE nome ILIKE ? AND status = ?", w.String())
	assert.Equal(t, []interface{}{`%50\%\_off%`, true}, w.args)
}

func TestCourseRepository(t *testing.T) {
	db := prepareDB(t)
	ctx := context.Background()
	repo := NewCourseRepository(db)

	fis, err := repo.Create(ctx, course.Curso{Nome: "Física", CargaHoraria: 60})
	require.NoError(t, err)
	_, err = repo.Create(ctx, course.Curso{Nome: "Biologia", Modalidade: course.ModalidadeEAD})
	require.NoError(t, err)

	found, err := repo.Query(ctx, course.QueryFilter{Nome: "fís"})
	require.NoError(t, err)
	assert.Equal(t, []course.Curso{fis}, found)

	fis.Descricao = "Mecânica"
	_, err = repo.Update(ctx, fis)
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, fis.ID)
	require.NoError(t, err)
	assert.Equal(t, fis, got)

	deleted, err := repo.Delete(ctx, fis.ID)
	require.NoError(t, err)
	assert.Equal(t, fis, deleted)
	_, err = repo.GetByID(ctx, fis.ID)
	assert.Equal(t, core.ErrNotFound, err)
}

func TestStudentRepository(t *testing.T) {
	db := prepareDB(t)
	ctx := context.Background()
	repo := NewStudentRepository(db)

	ana, err := repo.Create(ctx, student.Aluno{Nome: "Ana", CPF: "529.982.247-25", Matricula: "M12345"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, student.Aluno{Nome: "Bia", CPF: "529.982.247-25", Matricula: "M12345"})
	assert.Equal(t, errMatriculaExists, err)

	found, err := repo.Query(ctx, student.QueryFilter{CPF: "52998224725"})
	require.NoError(t, err)
	assert.Equal(t, []student.Aluno{ana}, found)

	found, err = repo.Query(ctx, student.QueryFilter{Matricula: "m12345"})
	require.NoError(t, err)
	assert.Equal(t, []student.Aluno{ana}, found)
}

func TestPermissionRepository(t *testing.T) {
	db := prepareDB(t)
	ctx := context.Background()
	repo := NewPermissionRepository(db)

	p, err := repo.Create(ctx, permission.Permissao{Descricao: "Ler notas", Role: "ADMIN"})
	require.NoError(t, err)

	found, err := repo.Query(ctx, permission.QueryFilter{Descricao: "notas"})
	require.NoError(t, err)
	assert.Equal(t, []permission.Permissao{p}, found)

	_, err = repo.Update(ctx, permission.Permissao{ID: "nope", Descricao: "x", Role: "Y"})
	assert.Equal(t, core.ErrNotFound, err)
}

func TestUserRepository(t *testing.T) {
	db := prepareDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	acc := user.Account{User: user.User{Username: "root", Nome: "Root", Tipo: user.TipoAdministrador, Status: user.Active}}
	require.NoError(t, acc.SetPassword("S3cr3t!pass"))
	root, err := repo.Create(ctx, acc)
	require.NoError(t, err)

	_, err = repo.Create(ctx, acc)
	assert.Equal(t, user.ErrUsernameExists, err)

	root.Nome = "Super Root"
	root.PasswordHash = nil
	_, err = repo.Update(ctx, root)
	require.NoError(t, err)

	got, err := repo.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "Super Root", got.Nome)
	assert.NoError(t, got.CheckPassword("S3cr3t!pass"))

	actives, err := repo.Query(ctx, user.QueryFilter{Status: "ATIVO"})
	require.NoError(t, err)
	assert.Len(t, actives, 1)
}

package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/user"
)

func TestCourseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()

	fis, err := repo.Create(ctx, course.Curso{Nome: "Física"})
	require.NoError(t, err)
	assert.NotEmpty(t, fis.ID)
	qui, err := repo.Create(ctx, course.Curso{Nome: "Química"})
	require.NoError(t, err)
	bio, err := repo.Create(ctx, course.Curso{Nome: "Biologia"})
	require.NoError(t, err)

	all, err := repo.Query(ctx, course.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []course.Curso{fis, qui, bio}, all)

	found, err := repo.Query(ctx, course.QueryFilter{Nome: "ICA"})
	require.NoError(t, err)
	assert.Equal(t, []course.Curso{fis, qui}, found)

	qui.CargaHoraria = 80
	_, err = repo.Update(ctx, qui)
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, qui.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, got.CargaHoraria)

	deleted, err := repo.Delete(ctx, fis.ID)
	require.NoError(t, err)
	assert.Equal(t, fis, deleted)

	// the index must follow the shifted rows
	got, err = repo.GetByID(ctx, bio.ID)
	require.NoError(t, err)
	assert.Equal(t, bio, got)

	_, err = repo.GetByID(ctx, fis.ID)
	assert.Equal(t, core.ErrNotFound, err)
	_, err = repo.Delete(ctx, fis.ID)
	assert.Equal(t, core.ErrNotFound, err)
	_, err = repo.Update(ctx, fis)
	assert.Equal(t, core.ErrNotFound, err)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	acc := user.Account{User: user.User{Username: "root", Nome: "Root", Tipo: user.TipoAdministrador, Status: user.Active}}
	require.NoError(t, acc.SetPassword("S3cr3t!pass"))
	root, err := repo.Create(ctx, acc)
	require.NoError(t, err)
	assert.False(t, root.CreatedAt.IsZero())

	_, err = repo.Create(ctx, acc)
	assert.Equal(t, user.ErrUsernameExists, err)

	other, err := repo.Create(ctx, user.Account{User: user.User{Username: "ana", Tipo: user.TipoAluno}})
	require.NoError(t, err)
	other.Username = "root"
	_, err = repo.Update(ctx, other)
	assert.Equal(t, user.ErrUsernameExists, err)

	// updating without a password keeps the stored one
	root.Nome = "Super Root"
	root.PasswordHash = nil
	_, err = repo.Update(ctx, root)
	require.NoError(t, err)

	got, err := repo.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "Super Root", got.Nome)
	assert.NoError(t, got.CheckPassword("S3cr3t!pass"))

	alunos, err := repo.Query(ctx, user.QueryFilter{Status: "INATIVO"})
	require.NoError(t, err)
	require.Len(t, alunos, 1)
	assert.Equal(t, "ana", alunos[0].Username)
}

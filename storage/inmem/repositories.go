package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/user"
)

func NewCourseRepository() course.Repository {
	return newTable(
		func(c course.Curso) string { return c.ID },
		func(c *course.Curso, id string) { c.ID = id },
		func(qf course.QueryFilter, c course.Curso) bool { return qf.Match(c) },
	)
}

func NewStudentRepository() student.Repository {
	return newTable(
		func(a student.Aluno) string { return a.ID },
		func(a *student.Aluno, id string) { a.ID = id },
		func(qf student.QueryFilter, a student.Aluno) bool { return qf.Match(a) },
	)
}

func NewPermissionRepository() permission.Repository {
	return newTable(
		func(p permission.Permissao) string { return p.ID },
		func(p *permission.Permissao, id string) { p.ID = id },
		func(qf permission.QueryFilter, p permission.Permissao) bool { return qf.Match(p) },
	)
}

type userRepository struct {
	*table[user.Account, user.QueryFilter]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository() user.Repository {
	return &userRepository{
		table: newTable(
			func(acc user.Account) string { return acc.ID },
			func(acc *user.Account, id string) { acc.ID = id },
			func(qf user.QueryFilter, acc user.Account) bool { return qf.Match(acc.User) },
		),
	}
}

func (repo *userRepository) GetByUsername(_ context.Context, username string) (user.Account, error) {
	return repo.find(func(acc user.Account) bool { return acc.Username == username })
}

func (repo *userRepository) Create(ctx context.Context, acc user.Account) (user.Account, error) {
	if _, err := repo.GetByUsername(ctx, acc.Username); err == nil {
		return user.Account{}, user.ErrUsernameExists
	}
	now := time.Now().UTC()
	acc.CreatedAt, acc.UpdatedAt = now, now
	return repo.table.Create(ctx, acc)
}

func (repo *userRepository) Update(ctx context.Context, acc user.Account) (user.Account, error) {
	if other, err := repo.GetByUsername(ctx, acc.Username); err == nil && other.ID != acc.ID {
		return user.Account{}, user.ErrUsernameExists
	}
	orig, err := repo.GetByID(ctx, acc.ID)
	if err != nil {
		return user.Account{}, err
	}
	acc.CreatedAt = orig.CreatedAt
	acc.UpdatedAt = time.Now().UTC()
	if len(acc.PasswordHash) == 0 {
		acc.PasswordHash = orig.PasswordHash
	}
	return repo.table.Update(ctx, acc)
}

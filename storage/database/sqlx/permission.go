package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core/permission"
)

const permissaoColumns = "id, descricao, role"

type permissionRepository struct {
	db *sqlx.DB
}

var _ permission.Repository = (*permissionRepository)(nil)

func NewPermissionRepository(db *sqlx.DB) permission.Repository {
	return &permissionRepository{db: db}
}

func (repo *permissionRepository) Query(ctx context.Context, qf permission.QueryFilter) ([]permission.Permissao, error) {
	var w where
	w.ilike("descricao", qf.Descricao)

	perms := make([]permission.Permissao, 0)
	if err := selectRows(ctx, repo.db, &perms, "SELECT "+permissaoColumns+" FROM permissao", &w, "created_at, id"); err != nil {
		return nil, errors.Wrap(err, "querying permissoes")
	}
	return perms, nil
}

func (repo *permissionRepository) GetByID(ctx context.Context, id string) (permission.Permissao, error) {
	var p permission.Permissao
	err := getRow(ctx, repo.db, &p, "SELECT "+permissaoColumns+" FROM permissao WHERE id = $1", id)
	return p, err
}

func (repo *permissionRepository) Create(ctx context.Context, p permission.Permissao) (permission.Permissao, error) {
	p.ID = newID()
	q := "INSERT INTO permissao (" + permissaoColumns + ") VALUES ($1, $2, $3)"
	if _, err := repo.db.ExecContext(ctx, q, p.ID, p.Descricao, p.Role); err != nil {
		return permission.Permissao{}, errors.Wrap(err, "inserting permissao")
	}
	return p, nil
}

func (repo *permissionRepository) Update(ctx context.Context, p permission.Permissao) (permission.Permissao, error) {
	res, err := repo.db.ExecContext(ctx, "UPDATE permissao SET descricao = $2, role = $3 WHERE id = $1", p.ID, p.Descricao, p.Role)
	if err != nil {
		return permission.Permissao{}, errors.Wrap(err, "updating permissao")
	}
	if err = checkAffected(res); err != nil {
		return permission.Permissao{}, err
	}
	return p, nil
}

func (repo *permissionRepository) Delete(ctx context.Context, id string) (permission.Permissao, error) {
	var p permission.Permissao
	err := getRow(ctx, repo.db, &p, "DELETE FROM permissao WHERE id = $1 RETURNING "+permissaoColumns, id)
	return p, err
}

package store

import (
	"context"
	"net/http"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/permission"
)

const (
	permissionsEndpoint = "/permissoes"
	// list & delete have always been issued without the leading slash;
	// the transport resolves both forms to the same path.
	permissionsRelEndpoint = "permissoes"
)

// Permissions returns a copy of the permissoes collection.
func (s *Store) Permissions() []permission.Permissao { return s.permissions.snapshot() }

func (s *Store) FindPermission(id string) (permission.Permissao, bool) { return s.permissions.find(id) }

// GetPermissions replaces the permissoes collection with the server's.
func (s *Store) GetPermissions(ctx context.Context) error {
	req := core.Request{
		Endpoint: permissionsRelEndpoint,
		Config:   &core.RequestConfig{Method: http.MethodGet},
	}
	_, err := read(ctx, s, "getPermissions", req, &s.permissions)
	return err
}

func (s *Store) SearchPermissions(ctx context.Context, descricao string) ([]permission.Permissao, error) {
	req := core.Request{Endpoint: withQuery(permissionsEndpoint, sparseQuery("descricao", descricao))}
	return read(ctx, s, "searchPermission", req, &s.permissions)
}

func (s *Store) AddPermission(ctx context.Context, p permission.Permissao) (permission.Permissao, error) {
	return create(ctx, s, "addPermission", permissionsEndpoint, &s.permissions, p)
}

func (s *Store) EditPermission(ctx context.Context, id string, p permission.Permissao) (permission.Permissao, error) {
	return edit(ctx, s, "editPermission", permissionsEndpoint, id, &s.permissions, p)
}

func (s *Store) DeletePermission(ctx context.Context, id string) (permission.Permissao, error) {
	return destroy(ctx, s, "deletePermission", permissionsRelEndpoint, id, &s.permissions)
}

package store

import (
	"context"

	"github.com/trezcool/masomo-admin/core/admin"
)

// Admins returns a copy of the admins collection.
// There is no list action for admins: the collection only holds what was added or edited here.
func (s *Store) Admins() []admin.Admin { return s.admins.snapshot() }

func (s *Store) FindAdmin(id string) (admin.Admin, bool) { return s.admins.find(id) }

func (s *Store) AddAdmin(ctx context.Context, a admin.Admin) (admin.Admin, error) {
	return create(ctx, s, "addAdmin", usersEndpoint, &s.admins, a)
}

func (s *Store) EditAdmin(ctx context.Context, id string, a admin.Admin) (admin.Admin, error) {
	return edit(ctx, s, "editAdmin", usersEndpoint, id, &s.admins, a)
}

func (s *Store) DeleteAdmin(ctx context.Context, id string) (admin.Admin, error) {
	return destroy(ctx, s, "deleteAdmin", usersEndpoint, id, &s.admins)
}

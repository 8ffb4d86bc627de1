package store

import (
	"context"
	"net/http"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/user"
)

// usersEndpoint is shared by users & admins.
const usersEndpoint = "/usuarios"

// Users returns a copy of the usuarios collection.
func (s *Store) Users() []user.User { return s.users.snapshot() }

func (s *Store) FindUser(id string) (user.User, bool) { return s.users.find(id) }

// GetUsers replaces the usuarios collection with the server's.
func (s *Store) GetUsers(ctx context.Context) error {
	req := core.Request{
		Endpoint: usersEndpoint,
		Config:   &core.RequestConfig{Method: http.MethodGet},
	}
	_, err := read(ctx, s, "getUsers", req, &s.users)
	return err
}

// SearchUsers searches usuarios. status may be any form user.ParseStatus accepts; it is sent as is.
func (s *Store) SearchUsers(ctx context.Context, username, nome, status string) ([]user.User, error) {
	q := sparseQuery(
		"username", username,
		"nome", nome,
		"status", status,
	)
	req := core.Request{Endpoint: withQuery(usersEndpoint, q)}
	return read(ctx, s, "searchUser", req, &s.users)
}

func (s *Store) DeleteUser(ctx context.Context, id string) (user.User, error) {
	return destroy(ctx, s, "deleteUser", usersEndpoint, id, &s.users)
}

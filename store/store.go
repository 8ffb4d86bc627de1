// Package store keeps local copies of the API's resource collections
// (admins, users, alunos, cursos & permissoes) in sync with the server.
//
// Every action builds a core.Request, hands it to the core.Transport and,
// only once the server has answered successfully, updates its own collection.
// Failures are logged and returned with their original message; the
// collection is then left exactly as it was.
package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/admin"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/user"
)

// EditPolicy decides what an edit does to the local collection.
type EditPolicy int

const (
	// EditAppend appends the edited entity, leaving the previous version in place.
	// This is what the web front-end has always done; list views re-fetch after editing.
	EditAppend EditPolicy = iota
	// EditReplace replaces the entries carrying the edited id (or appends if there are none).
	EditReplace
)

var errUnknownEditPolicy = errors.New("unknown edit policy")

// ParseEditPolicy parses "append" or "replace". An empty string means EditAppend.
func ParseEditPolicy(s string) (EditPolicy, error) {
	switch strings.ToLower(core.CleanString(s)) {
	case "", "append":
		return EditAppend, nil
	case "replace", "upsert":
		return EditReplace, nil
	}
	return EditAppend, errors.Wrapf(errUnknownEditPolicy, "%q", s)
}

func (p EditPolicy) String() string {
	if p == EditReplace {
		return "replace"
	}
	return "append"
}

type Options struct {
	Transport  core.Transport
	Logger     core.Logger
	EditPolicy EditPolicy
}

// Store is safe for concurrent use. Each collection has its own lock and
// is only ever written by the actions of its own resource.
type Store struct {
	transport  core.Transport
	logger     core.Logger
	editPolicy EditPolicy

	// de-duplicates identical in-flight reads
	reads singleflight.Group

	admins      collection[admin.Admin]
	users       collection[user.User]
	students    collection[student.Aluno]
	courses     collection[course.Curso]
	permissions collection[permission.Permissao]
}

func New(opts Options) *Store {
	return &Store{
		transport:  opts.Transport,
		logger:     opts.Logger,
		editPolicy: opts.EditPolicy,
	}
}

func (s *Store) EditPolicy() EditPolicy { return s.editPolicy }

// fetch runs req through the transport. On failure it logs and returns a
// *core.RequestError (with stack) whose message is the original one.
func (s *Store) fetch(ctx context.Context, action string, req core.Request, dest interface{}) error {
	if err := s.transport.Fetch(ctx, req, dest); err != nil {
		return s.fail(action, req, err)
	}
	return nil
}

func (s *Store) fail(action string, req core.Request, err error) error {
	reqErr := core.AsRequestError(err)
	s.logger.Error(reqErr.Message, map[string]interface{}{
		"action":   action,
		"method":   req.Method(),
		"endpoint": req.Endpoint,
		"kind":     reqErr.Kind.String(),
		"status":   reqErr.Status,
	}, errors.WithStack(reqErr))
	return errors.WithStack(reqErr)
}

// read GETs a list and replaces c with it. Identical concurrent reads share one request,
// which runs detached from any single caller's cancellation; each caller still waits on
// its own ctx and logs its own failure.
func read[T identifiable](ctx context.Context, s *Store, action string, req core.Request, c *collection[T]) ([]T, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.reads.DoChan(req.Method()+" "+req.Endpoint, func() (interface{}, error) {
		var items []T
		if err := s.transport.Fetch(shared, req, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, s.fail(action, req, ctx.Err())
	}
	if res.Err != nil {
		return nil, s.fail(action, req, res.Err)
	}

	items := res.Val.([]T)
	c.replace(items)

	result := make([]T, len(items))
	copy(result, items)
	return result, nil
}

// create POSTs entity and appends the server's version of it to c.
func create[T identifiable](ctx context.Context, s *Store, action, endpoint string, c *collection[T], entity T) (T, error) {
	var created T
	req, err := newWriteRequest(http.MethodPost, endpoint, entity)
	if err != nil {
		return created, s.fail(action, req, err)
	}
	if err := s.fetch(ctx, action, req, &created); err != nil {
		return created, err
	}
	c.append(created)
	return created, nil
}

// edit PUTs entity at endpoint/id and applies the store's EditPolicy to c.
func edit[T identifiable](ctx context.Context, s *Store, action, endpoint, id string, c *collection[T], entity T) (T, error) {
	var edited T
	req, err := newWriteRequest(http.MethodPut, endpoint+"/"+id, entity)
	if err != nil {
		return edited, s.fail(action, req, err)
	}
	if err := s.fetch(ctx, action, req, &edited); err != nil {
		return edited, err
	}
	if s.editPolicy == EditReplace {
		c.upsert(id, edited)
	} else {
		c.append(edited)
	}
	return edited, nil
}

// destroy DELETEs endpoint/id and drops every entry identified by id from c.
func destroy[T identifiable](ctx context.Context, s *Store, action, endpoint, id string, c *collection[T]) (T, error) {
	var deleted T
	req := core.Request{
		Endpoint: endpoint + "/" + id,
		Config:   &core.RequestConfig{Method: http.MethodDelete},
	}
	if err := s.fetch(ctx, action, req, &deleted); err != nil {
		return deleted, err
	}
	c.remove(id)
	return deleted, nil
}

func newWriteRequest(method, endpoint string, entity interface{}) (core.Request, error) {
	req := core.Request{
		Endpoint: endpoint,
		Config:   &core.RequestConfig{Method: method},
	}
	data, err := json.Marshal(entity)
	if err != nil {
		return req, core.NewRequestError(core.KindParse, err.Error(), err)
	}
	req.Config.Data = data
	return req, nil
}

// sparseQuery builds the query of a search from name/value pairs.
// Values are trimmed; empty ones are left out since omission means "no constraint".
func sparseQuery(pairs ...string) url.Values {
	q := make(url.Values)
	for i := 0; i+1 < len(pairs); i += 2 {
		if val := core.CleanString(pairs[i+1]); val != "" {
			q.Add(pairs[i], val)
		}
	}
	return q
}

func withQuery(endpoint string, q url.Values) string {
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

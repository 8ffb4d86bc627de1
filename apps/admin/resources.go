package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/pkg/errors"
	"github.com/wI2L/jsondiff"

	"github.com/trezcool/masomo-admin/core/admin"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/user"
)

// resourceOps binds the store actions of one resource. A nil action is not supported.
type resourceOps[T any] struct {
	list   func(context.Context) error
	items  func() []T
	search func(context.Context) ([]T, error)
	add    func(context.Context, T) (T, error)
	edit   func(context.Context, string, T) (T, error)
	del    func(context.Context, string) (T, error)

	// load & find give the cached version of a record about to be edited
	load func(context.Context) error
	find func(string) (T, bool)

	validateNew func(*T) error
	validate    func(*T) error
}

type resourceFlags struct {
	fs      *flag.FlagSet
	id      *string
	data    *string
	filters map[string]*string
	page    *int
	size    *int
}

func (cli *commandLine) newResourceFlags(resource, action string) *resourceFlags {
	fs := cli.newFlagSet(resource + " " + action)
	rf := &resourceFlags{
		fs:      fs,
		id:      fs.String("id", "", "The record's id (edit & delete)."),
		data:    fs.String("data", "", "The record as a JSON object (add & edit)."),
		filters: make(map[string]*string),
	}
	switch resource {
	case "cursos":
		rf.filters["nome"] = fs.String("nome", "", "Search by nome.")
		rf.page = fs.Int("page", course.DefaultPage, "Page number.")
		rf.size = fs.Int("size", course.DefaultSize, "Page size.")
	case "alunos":
		rf.filters["nome"] = fs.String("nome", "", "Search by nome.")
		rf.filters["cpf"] = fs.String("cpf", "", "Search by CPF.")
		rf.filters["matricula"] = fs.String("matricula", "", "Search by matricula.")
	case "usuarios":
		rf.filters["username"] = fs.String("username", "", "Search by username.")
		rf.filters["nome"] = fs.String("nome", "", "Search by nome.")
		rf.filters["status"] = fs.String("status", "", "Search by status (true|false).")
	case "permissoes":
		rf.filters["descricao"] = fs.String("descricao", "", "Search by descricao.")
	}
	return rf
}

func (rf *resourceFlags) filter(name string) string {
	if f, ok := rf.filters[name]; ok {
		return *f
	}
	return ""
}

func (cli *commandLine) resource(ctx context.Context, resource string, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	action := args[0]
	rf := cli.newResourceFlags(resource, action)
	if err := parseFlags(rf.fs, args[1:]); err != nil {
		return err
	}

	s := cli.store
	switch resource {
	case "cursos":
		return runAction(ctx, cli, action, rf, resourceOps[course.Curso]{
			list:  s.GetCourses,
			items: s.Courses,
			search: func(ctx context.Context) ([]course.Curso, error) {
				return s.SearchCourses(ctx, rf.filter("nome"), *rf.page, *rf.size)
			},
			add:         s.AddCourse,
			edit:        s.EditCourse,
			del:         s.DeleteCourse,
			load:        s.GetCourses,
			find:        s.FindCourse,
			validateNew: func(c *course.Curso) error { return c.Validate(cli.validate, cli.translator) },
			validate:    func(c *course.Curso) error { return c.Validate(cli.validate, cli.translator) },
		})
	case "alunos":
		return runAction(ctx, cli, action, rf, resourceOps[student.Aluno]{
			list:  s.GetStudents,
			items: s.Students,
			search: func(ctx context.Context) ([]student.Aluno, error) {
				return s.SearchStudents(ctx, rf.filter("nome"), rf.filter("cpf"), rf.filter("matricula"))
			},
			add:         s.AddStudent,
			edit:        s.EditStudent,
			del:         s.DeleteStudent,
			load:        s.GetStudents,
			find:        s.FindStudent,
			validateNew: func(a *student.Aluno) error { return a.Validate(cli.validate, cli.translator) },
			validate:    func(a *student.Aluno) error { return a.Validate(cli.validate, cli.translator) },
		})
	case "permissoes":
		return runAction(ctx, cli, action, rf, resourceOps[permission.Permissao]{
			list:  s.GetPermissions,
			items: s.Permissions,
			search: func(ctx context.Context) ([]permission.Permissao, error) {
				return s.SearchPermissions(ctx, rf.filter("descricao"))
			},
			add:         s.AddPermission,
			edit:        s.EditPermission,
			del:         s.DeletePermission,
			load:        s.GetPermissions,
			find:        s.FindPermission,
			validateNew: func(p *permission.Permissao) error { return p.Validate(cli.validate, cli.translator) },
			validate:    func(p *permission.Permissao) error { return p.Validate(cli.validate, cli.translator) },
		})
	case "usuarios":
		return runAction(ctx, cli, action, rf, resourceOps[user.User]{
			list:  s.GetUsers,
			items: s.Users,
			search: func(ctx context.Context) ([]user.User, error) {
				return s.SearchUsers(ctx, rf.filter("username"), rf.filter("nome"), rf.filter("status"))
			},
			del: s.DeleteUser,
		})
	case "admins":
		return runAction(ctx, cli, action, rf, resourceOps[admin.Admin]{
			add:  s.AddAdmin,
			edit: s.EditAdmin,
			del:  s.DeleteAdmin,
			load: s.GetUsers,
			find: func(id string) (admin.Admin, bool) {
				if adm, ok := s.FindAdmin(id); ok {
					return adm, true
				}
				usr, ok := s.FindUser(id)
				return admin.Admin{ID: usr.ID, Nome: usr.Nome, Username: usr.Username, Tipo: usr.Tipo, Status: usr.Status}, ok
			},
			validateNew: func(a *admin.Admin) error { return a.ValidateNew(cli.validate, cli.translator) },
			validate:    func(a *admin.Admin) error { return a.Validate(cli.validate, cli.translator) },
		})
	}
	return errHelp
}

func runAction[T any](ctx context.Context, cli *commandLine, action string, rf *resourceFlags, ops resourceOps[T]) error {
	switch action {
	case "list":
		if ops.list == nil {
			break
		}
		if err := ops.list(ctx); err != nil {
			return err
		}
		return cli.print(ops.items())

	case "search":
		if ops.search == nil {
			break
		}
		found, err := ops.search(ctx)
		if err != nil {
			return err
		}
		return cli.print(found)

	case "add":
		if ops.add == nil {
			break
		}
		var obj T
		if err := decodeData(rf, &obj); err != nil {
			return err
		}
		if err := ops.validateNew(&obj); err != nil {
			return err
		}
		created, err := ops.add(ctx, obj)
		if err != nil {
			return err
		}
		return cli.print(created)

	case "edit":
		if ops.edit == nil {
			break
		}
		if *rf.id == "" {
			rf.fs.Usage()
			return errHelp
		}
		var obj T
		if err := decodeData(rf, &obj); err != nil {
			return err
		}
		if err := ops.validate(&obj); err != nil {
			return err
		}

		var (
			before T
			found  bool
		)
		if ops.load != nil {
			if err := ops.load(ctx); err != nil {
				return err
			}
			before, found = ops.find(*rf.id)
		}
		edited, err := ops.edit(ctx, *rf.id, obj)
		if err != nil {
			return err
		}
		if err := cli.print(edited); err != nil {
			return err
		}
		if found {
			return cli.printDiff(before, edited)
		}
		return nil

	case "delete":
		if ops.del == nil {
			break
		}
		if *rf.id == "" {
			rf.fs.Usage()
			return errHelp
		}
		deleted, err := ops.del(ctx, *rf.id)
		if err != nil {
			return err
		}
		return cli.print(deleted)
	}

	cli.printUsage()
	return errHelp
}

func decodeData(rf *resourceFlags, dest interface{}) error {
	if *rf.data == "" {
		rf.fs.Usage()
		return errHelp
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(*rf.data)))
	dec.DisallowUnknownFields()
	return errors.Wrap(dec.Decode(dest), "invalid -data")
}

// printDiff prints the changes between the cached and the edited versions of a record.
func (cli *commandLine) printDiff(before, after interface{}) error {
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return errors.Wrap(err, "comparing versions")
	}
	if len(patch) == 0 {
		fmt.Fprintln(cli.out, "no changes")
		return nil
	}
	for _, op := range patch {
		if op.Type == jsondiff.OperationRemove {
			fmt.Fprintf(cli.out, "%s %s\n", op.Type, op.Path)
			continue
		}
		value, err := json.Marshal(op.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s %s %s\n", op.Type, op.Path, value)
	}
	return nil
}

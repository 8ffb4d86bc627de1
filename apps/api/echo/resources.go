package echoapi

import (
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
)

func newCourseAPI(opts *Options) *crudApi[course.Curso, course.QueryFilter] {
	return &crudApi[course.Curso, course.QueryFilter]{
		name:        "curso",
		repo:        opts.Courses,
		cleanFilter: func(qf *course.QueryFilter) { qf.Clean() },
		validate:    func(c *course.Curso) error { return c.Validate(opts.Validate, opts.Translator) },
		setID:       func(c *course.Curso, id string) { c.ID = id },
		paginate:    func(qf course.QueryFilter, cursos []course.Curso) []course.Curso { return qf.Paginate(cursos) },
	}
}

func newStudentAPI(opts *Options) *crudApi[student.Aluno, student.QueryFilter] {
	return &crudApi[student.Aluno, student.QueryFilter]{
		name:        "aluno",
		repo:        opts.Students,
		cleanFilter: func(qf *student.QueryFilter) { qf.Clean() },
		validate:    func(a *student.Aluno) error { return a.Validate(opts.Validate, opts.Translator) },
		setID:       func(a *student.Aluno, id string) { a.ID = id },
	}
}

func newPermissionAPI(opts *Options) *crudApi[permission.Permissao, permission.QueryFilter] {
	return &crudApi[permission.Permissao, permission.QueryFilter]{
		name:        "permissao",
		repo:        opts.Permissions,
		cleanFilter: func(qf *permission.QueryFilter) { qf.Clean() },
		validate:    func(p *permission.Permissao) error { return p.Validate(opts.Validate, opts.Translator) },
		setID:       func(p *permission.Permissao, id string) { p.ID = id },
	}
}

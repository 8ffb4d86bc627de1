package store

import (
	"context"
	"net/http"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/student"
)

const studentsEndpoint = "/alunos"

// Students returns a copy of the alunos collection.
func (s *Store) Students() []student.Aluno { return s.students.snapshot() }

func (s *Store) FindStudent(id string) (student.Aluno, bool) { return s.students.find(id) }

// GetStudents replaces the alunos collection with the server's.
func (s *Store) GetStudents(ctx context.Context) error {
	req := core.Request{
		Endpoint: studentsEndpoint,
		Config:   &core.RequestConfig{Method: http.MethodGet},
	}
	_, err := read(ctx, s, "getStudent", req, &s.students)
	return err
}

// SearchStudents searches alunos. Blank filters are not sent.
func (s *Store) SearchStudents(ctx context.Context, nome, cpf, matricula string) ([]student.Aluno, error) {
	q := sparseQuery(
		"nome", nome,
		"matricula", matricula,
		"cpf", cpf,
	)
	req := core.Request{Endpoint: withQuery(studentsEndpoint, q)}
	return read(ctx, s, "searchStudent", req, &s.students)
}

func (s *Store) AddStudent(ctx context.Context, a student.Aluno) (student.Aluno, error) {
	return create(ctx, s, "addStudents", studentsEndpoint, &s.students, a)
}

func (s *Store) EditStudent(ctx context.Context, id string, a student.Aluno) (student.Aluno, error) {
	return edit(ctx, s, "editStudent", studentsEndpoint, id, &s.students, a)
}

func (s *Store) DeleteStudent(ctx context.Context, id string) (student.Aluno, error) {
	return destroy(ctx, s, "deleteStudent", studentsEndpoint, id, &s.students)
}

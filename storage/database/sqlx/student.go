package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/student"
)

var errMatriculaExists = core.NewValidationError(nil, core.FieldError{Field: "matricula", Error: "matrícula already registered"})

type alunoRow struct {
	ID        string      `db:"id"`
	Nome      string      `db:"nome"`
	CPF       string      `db:"cpf"`
	Matricula string      `db:"matricula"`
	Email     null.String `db:"email"`
}

func newAlunoRow(a student.Aluno) alunoRow {
	return alunoRow{
		ID:        a.ID,
		Nome:      a.Nome,
		CPF:       a.CPF,
		Matricula: a.Matricula,
		Email:     null.NewString(a.Email, a.Email != ""),
	}
}

func (r alunoRow) aluno() student.Aluno {
	return student.Aluno{ID: r.ID, Nome: r.Nome, CPF: r.CPF, Matricula: r.Matricula, Email: r.Email.String}
}

const alunoColumns = "id, nome, cpf, matricula, email"

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) Query(ctx context.Context, qf student.QueryFilter) ([]student.Aluno, error) {
	var w where
	w.ilike("nome", qf.Nome)
	w.eq("regexp_replace(cpf, '\\D', '', 'g')", core.NormalizeCPF(qf.CPF), qf.CPF != "")
	w.eq("upper(matricula)", strings.ToUpper(qf.Matricula), qf.Matricula != "")

	var rows []alunoRow
	if err := selectRows(ctx, repo.db, &rows, "SELECT "+alunoColumns+" FROM aluno", &w, "created_at, id"); err != nil {
		return nil, errors.Wrap(err, "querying alunos")
	}
	alunos := make([]student.Aluno, 0, len(rows))
	for _, row := range rows {
		alunos = append(alunos, row.aluno())
	}
	return alunos, nil
}

func (repo *studentRepository) GetByID(ctx context.Context, id string) (student.Aluno, error) {
	var row alunoRow
	if err := getRow(ctx, repo.db, &row, "SELECT "+alunoColumns+" FROM aluno WHERE id = $1", id); err != nil {
		return student.Aluno{}, err
	}
	return row.aluno(), nil
}

func (repo *studentRepository) Create(ctx context.Context, a student.Aluno) (student.Aluno, error) {
	a.ID = newID()
	q := "INSERT INTO aluno (" + alunoColumns + ") VALUES (:id, :nome, :cpf, :matricula, :email)"
	if _, err := repo.db.NamedExecContext(ctx, q, newAlunoRow(a)); err != nil {
		if isUniqueViolation(err) {
			return student.Aluno{}, errMatriculaExists
		}
		return student.Aluno{}, errors.Wrap(err, "inserting aluno")
	}
	return a, nil
}

func (repo *studentRepository) Update(ctx context.Context, a student.Aluno) (student.Aluno, error) {
	q := "UPDATE aluno SET nome = :nome, cpf = :cpf, matricula = :matricula, email = :email WHERE id = :id"
	res, err := repo.db.NamedExecContext(ctx, q, newAlunoRow(a))
	if err != nil {
		if isUniqueViolation(err) {
			return student.Aluno{}, errMatriculaExists
		}
		return student.Aluno{}, errors.Wrap(err, "updating aluno")
	}
	if err = checkAffected(res); err != nil {
		return student.Aluno{}, err
	}
	return a, nil
}

func (repo *studentRepository) Delete(ctx context.Context, id string) (student.Aluno, error) {
	var row alunoRow
	q := "DELETE FROM aluno WHERE id = $1 RETURNING " + alunoColumns
	if err := getRow(ctx, repo.db, &row, q, id); err != nil {
		return student.Aluno{}, err
	}
	return row.aluno(), nil
}

package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core/course"
)

type cursoRow struct {
	ID           string      `db:"id"`
	Nome         string      `db:"nome"`
	Descricao    null.String `db:"descricao"`
	CargaHoraria null.Int    `db:"carga_horaria"`
	Modalidade   null.String `db:"modalidade"`
}

func newCursoRow(c course.Curso) cursoRow {
	return cursoRow{
		ID:           c.ID,
		Nome:         c.Nome,
		Descricao:    null.NewString(c.Descricao, c.Descricao != ""),
		CargaHoraria: null.NewInt(c.CargaHoraria, c.CargaHoraria != 0),
		Modalidade:   null.NewString(c.Modalidade, c.Modalidade != ""),
	}
}

func (r cursoRow) curso() course.Curso {
	return course.Curso{
		ID:           r.ID,
		Nome:         r.Nome,
		Descricao:    r.Descricao.String,
		CargaHoraria: r.CargaHoraria.Int,
		Modalidade:   r.Modalidade.String,
	}
}

const cursoColumns = "id, nome, descricao, carga_horaria, modalidade"

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) Query(ctx context.Context, qf course.QueryFilter) ([]course.Curso, error) {
	var w where
	w.ilike("nome", qf.Nome)

	var rows []cursoRow
	if err := selectRows(ctx, repo.db, &rows, "SELECT "+cursoColumns+" FROM curso", &w, "created_at, id"); err != nil {
		return nil, errors.Wrap(err, "querying cursos")
	}
	cursos := make([]course.Curso, 0, len(rows))
	for _, row := range rows {
		cursos = append(cursos, row.curso())
	}
	return cursos, nil
}

func (repo *courseRepository) GetByID(ctx context.Context, id string) (course.Curso, error) {
	var row cursoRow
	if err := getRow(ctx, repo.db, &row, "SELECT "+cursoColumns+" FROM curso WHERE id = $1", id); err != nil {
		return course.Curso{}, err
	}
	return row.curso(), nil
}

func (repo *courseRepository) Create(ctx context.Context, c course.Curso) (course.Curso, error) {
	c.ID = newID()
	q := "INSERT INTO curso (" + cursoColumns + ") VALUES (:id, :nome, :descricao, :carga_horaria, :modalidade)"
	if _, err := repo.db.NamedExecContext(ctx, q, newCursoRow(c)); err != nil {
		return course.Curso{}, errors.Wrap(err, "inserting curso")
	}
	return c, nil
}

func (repo *courseRepository) Update(ctx context.Context, c course.Curso) (course.Curso, error) {
	q := "UPDATE curso SET nome = :nome, descricao = :descricao, carga_horaria = :carga_horaria, modalidade = :modalidade WHERE id = :id"
	res, err := repo.db.NamedExecContext(ctx, q, newCursoRow(c))
	if err != nil {
		return course.Curso{}, errors.Wrap(err, "updating curso")
	}
	if err = checkAffected(res); err != nil {
		return course.Curso{}, err
	}
	return c, nil
}

func (repo *courseRepository) Delete(ctx context.Context, id string) (course.Curso, error) {
	var row cursoRow
	q := "DELETE FROM curso WHERE id = $1 RETURNING " + cursoColumns
	if err := getRow(ctx, repo.db, &row, q, id); err != nil {
		return course.Curso{}, err
	}
	return row.curso(), nil
}

package course

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
)

// Modalidades
const (
	ModalidadePresencial = "PRESENCIAL"
	ModalidadeEAD        = "EAD"
	ModalidadeHibrido    = "HIBRIDO"
)

// Pagination defaults of a course search.
const (
	DefaultPage = 0
	DefaultSize = 10
)

// Curso is a course offered by the school.
type Curso struct {
	ID           string `json:"id" yaml:"id,omitempty" toml:"id,omitempty"`
	Nome         string `json:"nome" yaml:"nome,omitempty" toml:"nome,omitempty" validate:"required,max=120"`
	Descricao    string `json:"descricao,omitempty" yaml:"descricao,omitempty" toml:"descricao,omitempty" validate:"max=500"`
	CargaHoraria int    `json:"cargaHoraria,omitempty" yaml:"cargaHoraria,omitempty" toml:"cargaHoraria,omitempty" validate:"gte=0,lte=10000"`
	Modalidade   string `json:"modalidade,omitempty" yaml:"modalidade,omitempty" toml:"modalidade,omitempty" validate:"omitempty,oneof=PRESENCIAL EAD HIBRIDO"`
}

func (c Curso) GetID() string { return c.ID }

// Validate cleans and validates a Curso before it is sent to the API.
func (c *Curso) Validate(validate *validator.Validate, translator ut.Translator) error {
	c.Nome = core.CleanString(c.Nome)
	c.Descricao = core.CleanString(c.Descricao)
	c.Modalidade = strings.ToUpper(core.CleanString(c.Modalidade))
	return core.TranslateErrors(validate.Struct(c), translator)
}

// QueryFilter holds the course search filter and its pagination.
type QueryFilter struct {
	Nome string `query:"nome"`
	Page int    `query:"page"`
	Size int    `query:"size"`
}

func (qf *QueryFilter) Clean() {
	qf.Nome = core.CleanString(qf.Nome)
	if qf.Page < 0 {
		qf.Page = DefaultPage
	}
	if qf.Size <= 0 {
		qf.Size = DefaultSize
	}
}

func (qf *QueryFilter) Match(c Curso) bool {
	return qf.Nome == "" || core.ContainsFold(c.Nome, qf.Nome)
}

// Paginate returns the page of cursos selected by the filter.
func (qf *QueryFilter) Paginate(cursos []Curso) []Curso {
	// compare pages rather than offsets: page*size may overflow
	if len(cursos) == 0 || qf.Page < 0 || qf.Size <= 0 || qf.Page > (len(cursos)-1)/qf.Size {
		return []Curso{}
	}
	start := qf.Page * qf.Size
	end := len(cursos)
	if qf.Size < end-start {
		end = start + qf.Size
	}
	return cursos[start:end]
}

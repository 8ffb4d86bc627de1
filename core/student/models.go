package student

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
)

// Aluno is a student record.
type Aluno struct {
	ID        string `json:"id" yaml:"id,omitempty" toml:"id,omitempty"`
	Nome      string `json:"nome" yaml:"nome,omitempty" toml:"nome,omitempty" validate:"required"`
	CPF       string `json:"cpf" yaml:"cpf,omitempty" toml:"cpf,omitempty" validate:"required,cpf"`
	Matricula string `json:"matricula" yaml:"matricula,omitempty" toml:"matricula,omitempty" validate:"required,alphanum,max=20"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty" validate:"omitempty,email"`
}

func (a Aluno) GetID() string { return a.ID }

// Validate cleans and validates an Aluno before it is sent to the API.
func (a *Aluno) Validate(validate *validator.Validate, translator ut.Translator) error {
	a.Nome = core.CleanString(a.Nome)
	a.CPF = core.CleanString(a.CPF)
	a.Matricula = strings.ToUpper(core.CleanString(a.Matricula))
	a.Email = core.CleanString(a.Email, true /* lower */)
	return core.TranslateErrors(validate.Struct(a), translator)
}

// QueryFilter holds the optional student search filters. Empty fields impose no constraint.
type QueryFilter struct {
	Nome      string `query:"nome"`
	CPF       string `query:"cpf"`
	Matricula string `query:"matricula"`
}

func (qf *QueryFilter) Clean() {
	qf.Nome = core.CleanString(qf.Nome)
	qf.CPF = core.CleanString(qf.CPF)
	qf.Matricula = core.CleanString(qf.Matricula)
}

// Match does a case-insensitive "contains" on nome and exact matches on cpf (digits only) & matricula.
func (qf *QueryFilter) Match(a Aluno) bool {
	if qf.Nome != "" && !core.ContainsFold(a.Nome, qf.Nome) {
		return false
	}
	if qf.CPF != "" && core.NormalizeCPF(a.CPF) != core.NormalizeCPF(qf.CPF) {
		return false
	}
	if qf.Matricula != "" && !strings.EqualFold(a.Matricula, qf.Matricula) {
		return false
	}
	return true
}

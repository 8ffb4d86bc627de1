package permission

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
)

// Permissao is a permission granted to a role.
type Permissao struct {
	ID        string `json:"id" yaml:"id,omitempty" toml:"id,omitempty"`
	Descricao string `json:"descricao" yaml:"descricao,omitempty" toml:"descricao,omitempty" validate:"required,max=255"`
	Role      string `json:"role" yaml:"role,omitempty" toml:"role,omitempty" validate:"required,alphanum_"`
}

func (p Permissao) GetID() string { return p.ID }

// Validate cleans and validates a Permissao before it is sent to the API.
func (p *Permissao) Validate(validate *validator.Validate, translator ut.Translator) error {
	p.Descricao = core.CleanString(p.Descricao)
	p.Role = strings.ToUpper(core.CleanString(p.Role))
	return core.TranslateErrors(validate.Struct(p), translator)
}

type QueryFilter struct {
	Descricao string `query:"descricao"`
}

func (qf *QueryFilter) Clean() {
	qf.Descricao = core.CleanString(qf.Descricao)
}

func (qf *QueryFilter) Match(p Permissao) bool {
	return qf.Descricao == "" || core.ContainsFold(p.Descricao, qf.Descricao)
}

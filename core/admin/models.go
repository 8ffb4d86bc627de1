package admin

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/user"
)

// Admin is a back-office account. Admins live on the same endpoint as users.
type Admin struct {
	ID       string      `json:"id" yaml:"id,omitempty" toml:"id,omitempty"`
	Nome     string      `json:"nome" yaml:"nome,omitempty" toml:"nome,omitempty" validate:"required"`
	Username string      `json:"username" yaml:"username,omitempty" toml:"username,omitempty" validate:"required,min=4,alphanum_"`
	Email    string      `json:"email" yaml:"email,omitempty" toml:"email,omitempty" validate:"omitempty,email"`
	Telefone string      `json:"telefone,omitempty" yaml:"telefone,omitempty" toml:"telefone,omitempty" validate:"omitempty,min=8,max=20"`
	Senha    string      `json:"senha,omitempty" yaml:"senha,omitempty" toml:"senha,omitempty"`
	Tipo     string      `json:"tipo,omitempty" yaml:"tipo,omitempty" toml:"tipo,omitempty"`
	Status   user.Status `json:"status" yaml:"status,omitempty" toml:"status,omitempty"`
}

func (a Admin) GetID() string { return a.ID }

func (a *Admin) clean() {
	a.Nome = core.CleanString(a.Nome)
	a.Username = core.CleanString(a.Username, true /* lower */)
	a.Email = core.CleanString(a.Email, true /* lower */)
	a.Telefone = core.CleanString(a.Telefone)
	if a.Tipo == "" {
		a.Tipo = user.TipoAdministrador
	}
}

// Validate cleans and validates an Admin about to be edited. The password is optional.
func (a *Admin) Validate(validate *validator.Validate, translator ut.Translator) error {
	a.clean()
	return core.TranslateErrors(validate.Struct(a), translator)
}

// ValidateNew cleans and validates an Admin about to be created. The password is required.
func (a *Admin) ValidateNew(validate *validator.Validate, translator ut.Translator) error {
	a.clean()
	err := core.TranslateErrors(validate.Struct(a), translator)
	if a.Senha != "" {
		return err
	}

	fields := []core.FieldError{{Field: "senha", Error: requiredText}}
	if err != nil {
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			return err
		}
		fields = append(vErr.Fields, fields...)
	}
	return core.NewValidationError(nil, fields...)
}

// FromAccount returns the Admin view of a stored account. The password is never returned.
func FromAccount(acc user.Account) Admin {
	return Admin{
		ID:       acc.ID,
		Nome:     acc.Nome,
		Username: acc.Username,
		Email:    acc.Email,
		Telefone: acc.Telefone,
		Tipo:     acc.Tipo,
		Status:   acc.Status,
	}
}

// Account returns the account to store for the Admin, without its password.
func (a Admin) Account() user.Account {
	tipo := a.Tipo
	if tipo == "" {
		tipo = user.TipoAdministrador
	}
	return user.Account{
		User: user.User{
			ID:       a.ID,
			Username: a.Username,
			Nome:     a.Nome,
			Tipo:     tipo,
			Status:   a.Status,
		},
		Email:    a.Email,
		Telefone: a.Telefone,
	}
}

// Package validation builds the validator shared by every record type.
package validation

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/admin"
)

// New returns a validator with the english translator, the global custom validators
// and the admin password policy registered.
func New() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	admin.InitValidators(validate, translator)
	return validate, translator
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/admin"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "expected a *core.ValidationError, got %T: %v", err, err)
	flds := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func TestAdmin_ValidateNew(t *testing.T) {
	validate, translator := New()

	tests := []struct {
		name       string
		adm        admin.Admin
		wantFields map[string]string
	}{
		{
			name: "valid",
			adm:  admin.Admin{Nome: " Root ", Username: " ROOT_1 ", Email: "Root@Masomo.test", Senha: "S3cr3t!pass"},
		},
		{
			name: "missing fields",
			adm:  admin.Admin{},
			wantFields: map[string]string{
				"nome":     "this field is required",
				"username": "this field is required",
				"senha":    "this field is required",
			},
		},
		{
			name:       "bad username & email",
			adm:        admin.Admin{Nome: "Root", Username: "r-t!", Email: "nope", Senha: "S3cr3t!pass"},
			wantFields: map[string]string{"username": "only alphanumeric characters and underscores are allowed", "email": "email must be a valid email address"},
		},
		{
			name:       "short password",
			adm:        admin.Admin{Nome: "Root", Username: "root", Senha: "S3!a"},
			wantFields: map[string]string{"senha": "password must contain at least 8 characters"},
		},
		{
			name:       "numeric password",
			adm:        admin.Admin{Nome: "Root", Username: "root", Senha: "1234567890"},
			wantFields: map[string]string{"senha": "password cannot be entirely numeric"},
		},
		{
			name:       "simple password",
			adm:        admin.Admin{Nome: "Root", Username: "root", Senha: "abcdefghij"},
			wantFields: map[string]string{"senha": "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character"},
		},
		{
			name:       "password like username",
			adm:        admin.Admin{Nome: "Root", Username: "masomoadmin", Senha: "Masomoadmin1!"},
			wantFields: map[string]string{"senha": "password cannot be similar to user attributes"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adm := tt.adm
			err := adm.ValidateNew(validate, translator)
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, "Root", adm.Nome)
				assert.Equal(t, "root_1", adm.Username)
				assert.Equal(t, "root@masomo.test", adm.Email)
				return
			}
			assert.Equal(t, tt.wantFields, fieldErrors(t, err))
		})
	}
}

func TestAdmin_Validate_passwordOptional(t *testing.T) {
	validate, translator := New()
	adm := admin.Admin{Nome: "Root", Username: "root"}
	assert.NoError(t, adm.Validate(validate, translator))
}

func TestAluno_Validate(t *testing.T) {
	validate, translator := New()

	a := student.Aluno{Nome: "Ana", CPF: "529.982.247-25", Matricula: " m12345 "}
	require.NoError(t, a.Validate(validate, translator))
	assert.Equal(t, "M12345", a.Matricula)

	a = student.Aluno{Nome: "Ana", CPF: "111.111.111-11", Matricula: "M1"}
	assert.Equal(t, map[string]string{"cpf": "invalid CPF"}, fieldErrors(t, a.Validate(validate, translator)))
}

func TestCurso_Validate(t *testing.T) {
	validate, translator := New()

	c := course.Curso{Nome: "Física", Modalidade: "ead"}
	require.NoError(t, c.Validate(validate, translator))
	assert.Equal(t, course.ModalidadeEAD, c.Modalidade)

	c = course.Curso{Modalidade: "remoto"}
	flds := fieldErrors(t, c.Validate(validate, translator))
	assert.Contains(t, flds, "nome")
	assert.Contains(t, flds, "modalidade")
}

func TestPermissao_Validate(t *testing.T) {
	validate, translator := New()

	p := permission.Permissao{Descricao: "Ler notas", Role: "admin"}
	require.NoError(t, p.Validate(validate, translator))
	assert.Equal(t, "ADMIN", p.Role)
}

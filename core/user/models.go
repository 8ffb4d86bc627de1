package user

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

// Tipos (roles) a User can have.
const (
	TipoAluno         = "Aluno"
	TipoAdministrador = "Administrador"
)

// Edit views a User is sent to, depending on its Tipo.
const (
	EditAlunoRoute = "/alunos/editar-aluno"
	EditAdminRoute = "/administradores/editar-administrador"
)

var errInvalidStatus = errors.New("invalid status")

// Status is active/inactive. The API sends it either as a boolean or as a string code;
// it is always sent back as a boolean.
type Status bool

const (
	Active   Status = true
	Inactive Status = false
)

// ParseStatus accepts true/false, 1/0, ATIVO/INATIVO and A/I (case-insensitive).
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(core.CleanString(s)) {
	case "TRUE", "1", "ATIVO", "A", "ACTIVE":
		return Active, nil
	case "FALSE", "0", "INATIVO", "I", "INACTIVE":
		return Inactive, nil
	}
	return Inactive, errors.Wrapf(errInvalidStatus, "%q", s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(s))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Inactive
		return nil
	}
	var str string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
	} else {
		str = string(data)
	}
	st, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// QueryValue is the Status as sent in a query string.
func (s Status) QueryValue() string {
	return strconv.FormatBool(bool(s))
}

func (s Status) String() string {
	if s {
		return "Ativo"
	}
	return "Inativo"
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nome     string `json:"nome"`
	Tipo     string `json:"tipo"`
	Status   Status `json:"status"`
}

func (u User) GetID() string { return u.ID }

// IsAluno reports whether the User is a student account.
func (u User) IsAluno() bool {
	return u.Tipo == TipoAluno
}

// EditRoute is the view a User gets edited in.
func (u User) EditRoute() string {
	if u.IsAluno() {
		return EditAlunoRoute
	}
	return EditAdminRoute
}

// QueryFilter holds the optional user search filters. Empty fields impose no constraint.
type QueryFilter struct {
	Username string `query:"username"`
	Nome     string `query:"nome"`
	Status   string `query:"status"`
}

func (qf *QueryFilter) Clean() {
	qf.Username = core.CleanString(qf.Username)
	qf.Nome = core.CleanString(qf.Nome)
	qf.Status = core.CleanString(qf.Status)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Username == "" && qf.Nome == "" && qf.Status == ""
}

// Match does a case-insensitive "contains" on username & nome and an exact match on status.
func (qf *QueryFilter) Match(usr User) bool {
	if qf.Username != "" && !core.ContainsFold(usr.Username, qf.Username) {
		return false
	}
	if qf.Nome != "" && !core.ContainsFold(usr.Nome, qf.Nome) {
		return false
	}
	if qf.Status != "" {
		st, err := ParseStatus(qf.Status)
		if err != nil || st != usr.Status {
			return false
		}
	}
	return true
}


// Package seed reads datasets of records (admins, alunos, cursos & permissoes) from YAML or TOML files.
package seed

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/masomo-admin/core/admin"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/user"
)

var errUnknownFormat = errors.New("unknown dataset format (expected .yaml, .yml or .toml)")

// Dataset is the content of a seed file.
type Dataset struct {
	Admins     []admin.Admin          `yaml:"admins" toml:"admins"`
	Alunos     []student.Aluno        `yaml:"alunos" toml:"alunos"`
	Cursos     []course.Curso         `yaml:"cursos" toml:"cursos"`
	Permissoes []permission.Permissao `yaml:"permissoes" toml:"permissoes"`
}

func (ds *Dataset) Len() int {
	return len(ds.Admins) + len(ds.Alunos) + len(ds.Cursos) + len(ds.Permissoes)
}

// Load reads a dataset; the format is given by the file extension.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading dataset")
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses data as YAML (".yaml", ".yml") or TOML (".toml").
func Decode(data []byte, ext string) (*Dataset, error) {
	ds := new(Dataset)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(ds); err != nil {
			return nil, errors.Wrap(err, "decoding yaml dataset")
		}
	case ".toml":
		md, err := toml.Decode(string(data), ds)
		if err != nil {
			return nil, errors.Wrap(err, "decoding toml dataset")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("decoding toml dataset: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.Wrapf(errUnknownFormat, "%q", ext)
	}
	return ds, nil
}

type Repositories struct {
	Users       user.Repository
	Students    student.Repository
	Courses     course.Repository
	Permissions permission.Repository
}

// Apply stores every record of ds. Admin passwords are hashed; records are not validated.
func Apply(ctx context.Context, ds *Dataset, repos Repositories) error {
	for _, adm := range ds.Admins {
		acc := adm.Account()
		if adm.Senha != "" {
			if err := acc.SetPassword(adm.Senha); err != nil {
				return err
			}
		}
		if _, err := repos.Users.Create(ctx, acc); err != nil {
			return errors.Wrapf(err, "seeding admin %q", adm.Username)
		}
	}
	for _, a := range ds.Alunos {
		if _, err := repos.Students.Create(ctx, a); err != nil {
			return errors.Wrapf(err, "seeding aluno %q", a.Matricula)
		}
	}
	for _, c := range ds.Cursos {
		if _, err := repos.Courses.Create(ctx, c); err != nil {
			return errors.Wrapf(err, "seeding curso %q", c.Nome)
		}
	}
	for _, p := range ds.Permissoes {
		if _, err := repos.Permissions.Create(ctx, p); err != nil {
			return errors.Wrapf(err, "seeding permissao %q", p.Descricao)
		}
	}
	return nil
}

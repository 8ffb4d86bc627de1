package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/storage/seed"
)

// importFile adds every record of a dataset through the store, stopping at the first failure.
func (cli *commandLine) importFile(ctx context.Context, args []string) error {
	importCmd := cli.newFlagSet("import")
	file := importCmd.String("file", "", "The dataset to import (.yaml, .yml or .toml).")
	if err := parseFlags(importCmd, args); err != nil {
		return err
	}
	if *file == "" {
		importCmd.Usage()
		return errHelp
	}

	ds, err := seed.Load(*file)
	if err != nil {
		return err
	}

	s := cli.store
	count := 0
	for _, adm := range ds.Admins {
		if err := adm.ValidateNew(cli.validate, cli.translator); err != nil {
			return errors.Wrapf(err, "admin %q", adm.Username)
		}
		if _, err := s.AddAdmin(ctx, adm); err != nil {
			return errors.Wrapf(err, "admin %q", adm.Username)
		}
		count++
	}
	for _, a := range ds.Alunos {
		if err := a.Validate(cli.validate, cli.translator); err != nil {
			return errors.Wrapf(err, "aluno %q", a.Matricula)
		}
		if _, err := s.AddStudent(ctx, a); err != nil {
			return errors.Wrapf(err, "aluno %q", a.Matricula)
		}
		count++
	}
	for _, c := range ds.Cursos {
		if err := c.Validate(cli.validate, cli.translator); err != nil {
			return errors.Wrapf(err, "curso %q", c.Nome)
		}
		if _, err := s.AddCourse(ctx, c); err != nil {
			return errors.Wrapf(err, "curso %q", c.Nome)
		}
		count++
	}
	for _, p := range ds.Permissoes {
		if err := p.Validate(cli.validate, cli.translator); err != nil {
			return errors.Wrapf(err, "permissao %q", p.Descricao)
		}
		if _, err := s.AddPermission(ctx, p); err != nil {
			return errors.Wrapf(err, "permissao %q", p.Descricao)
		}
		count++
	}
	return cli.print(map[string]int{"imported": count})
}

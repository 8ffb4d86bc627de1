package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/services/auth"
	"github.com/trezcool/masomo-admin/store"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store      *store.Store
	transport  core.Transport
	validate   *validator.Validate
	translator ut.Translator
	openDB     func() (*sqlx.DB, error)
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME                    - print an API token (the password is prompted)")
	fmt.Fprintln(cli.out, "  cursos list|search|add|edit|delete [flags]  - manage cursos")
	fmt.Fprintln(cli.out, "  alunos list|search|add|edit|delete [flags]  - manage alunos")
	fmt.Fprintln(cli.out, "  permissoes list|search|add|edit|delete      - manage permissoes")
	fmt.Fprintln(cli.out, "  usuarios list|search|delete [flags]         - manage users")
	fmt.Fprintln(cli.out, "  admins add|edit|delete [flags]              - manage admins")
	fmt.Fprintln(cli.out, "  import -file FILE                           - add every record of a YAML or TOML dataset")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                      - run sandbox DB migrations (goose commands)")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "cursos", "alunos", "permissoes", "usuarios", "admins":
		return cli.resource(ctx, args[1], args[2:])
	case "import":
		return cli.importFile(ctx, args[2:])
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := cli.newFlagSet("login")
	uname := loginCmd.String("username", "", "The admin's username. The password will be prompted next.")
	if err := parseFlags(loginCmd, args); err != nil {
		return err
	}
	if *uname == "" {
		loginCmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		loginCmd.Usage()
		return errHelp
	}

	token, err := auth.Login(ctx, cli.transport, *uname, string(pwd))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}

func (cli *commandLine) print(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, string(data))
	return err
}

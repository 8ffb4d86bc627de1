package main

import (
	"context"

	"github.com/trezcool/masomo-admin/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	db, err := cli.openDB()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	return gooseRunFunc(ctx, db, args[0], args[1:]...)
}

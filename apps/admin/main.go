package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/validation"
	"github.com/trezcool/masomo-admin/services/auth"
	"github.com/trezcool/masomo-admin/services/logger"
	"github.com/trezcool/masomo-admin/services/transport"
	"github.com/trezcool/masomo-admin/storage/database"
	"github.com/trezcool/masomo-admin/store"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds), conf)

	policy, err := store.ParseEditPolicy(conf.Store.EditPolicy)
	if err != nil {
		log.Fatal(err)
	}

	var tokens auth.TokenSource
	if conf.API.Token != "" {
		tokens = auth.StaticToken(conf.API.Token)
	}
	tr := transport.NewFromConfig(conf, tokens)
	validate, translator := validation.New()

	cli := commandLine{
		store:      store.New(store.Options{Transport: tr, Logger: logger, EditPolicy: policy}),
		transport:  tr,
		validate:   validate,
		translator: translator,
		openDB:     func() (*sqlx.DB, error) { return database.Open(conf) },
		out:        os.Stdout,
	}
	if err := cli.run(context.Background(), os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

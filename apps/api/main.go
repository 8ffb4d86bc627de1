// Command api runs the sandbox back-office API the store can be pointed at.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/apps/api/echo"
	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/validation"
	"github.com/trezcool/masomo-admin/services/logger"
	"github.com/trezcool/masomo-admin/storage/database"
	sqlxrepos "github.com/trezcool/masomo-admin/storage/database/sqlx"
	"github.com/trezcool/masomo-admin/storage/inmem"
	"github.com/trezcool/masomo-admin/storage/seed"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "", log.LstdFlags), conf)

	if err := run(conf, logger); err != nil {
		logger.Error(err.Error(), err)
		log.Fatalf("%+v", err)
	}
}

func run(conf *core.Config, logger core.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeDB, err := openRepositories(ctx, conf)
	if err != nil {
		return err
	}
	defer closeDB()

	if path := conf.Sandbox.SeedFile; path != "" {
		ds, err := seed.Load(path)
		if err != nil {
			return err
		}
		if err := seed.Apply(ctx, ds, repos); err != nil {
			return err
		}
		logger.Info("seeded", map[string]interface{}{"file": path, "records": ds.Len()})
	}

	validate, translator := validation.New()
	app := echoapi.NewServer(&echoapi.Options{
		Address:     conf.Sandbox.Address,
		Debug:       conf.Debug,
		AppName:     conf.AppName,
		SecretKey:   []byte(conf.API.SecretKey),
		TokenTTL:    conf.API.JWTExpirationDelta,
		Logger:      logger,
		Validate:    validate,
		Translator:  translator,
		Users:       repos.Users,
		Students:    repos.Students,
		Courses:     repos.Courses,
		Permissions: repos.Permissions,
	})

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", map[string]interface{}{"address": conf.Sandbox.Address, "storage": conf.Sandbox.Storage})
		errc <- app.Start()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "app.Start()")
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Sandbox.ShutdownTimeout)
	defer cancel()
	return errors.Wrap(app.Stop(shutdownCtx), "app.Stop()")
}

// openRepositories returns the repositories of the configured storage ("memory" or "postgres").
func openRepositories(ctx context.Context, conf *core.Config) (seed.Repositories, func(), error) {
	switch strings.ToLower(conf.Sandbox.Storage) {
	case "", "memory":
		return seed.Repositories{
			Users:       inmemdb.NewUserRepository(),
			Students:    inmemdb.NewStudentRepository(),
			Courses:     inmemdb.NewCourseRepository(),
			Permissions: inmemdb.NewPermissionRepository(),
		}, func() {}, nil

	case "postgres":
		if conf.Database.AdminUser != "" {
			if err := database.CreateIfNotExist(conf); err != nil {
				return seed.Repositories{}, nil, err
			}
		}
		db, err := database.Open(conf)
		if err != nil {
			return seed.Repositories{}, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return seed.Repositories{}, nil, err
		}
		return postgresRepositories(db), func() { _ = db.Close() }, nil
	}
	return seed.Repositories{}, nil, errors.Errorf("unknown sandbox storage %q", conf.Sandbox.Storage)
}

func postgresRepositories(db *sqlx.DB) seed.Repositories {
	return seed.Repositories{
		Users:       sqlxrepos.NewUserRepository(db),
		Students:    sqlxrepos.NewStudentRepository(db),
		Courses:     sqlxrepos.NewCourseRepository(db),
		Permissions: sqlxrepos.NewPermissionRepository(db),
	}
}

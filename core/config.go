package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string

		API      APIConfig
		Store    StoreConfig
		Sandbox  SandboxConfig
		Database DatabaseConfig
	}

	APIConfig struct {
		BaseURL            string
		Timeout            time.Duration
		Token              string
		SecretKey          string
		JWTExpirationDelta time.Duration
	}

	StoreConfig struct {
		EditPolicy string // append | replace
	}

	SandboxConfig struct {
		Address         string
		Storage         string // memory | postgres
		SeedFile        string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

// Address returns the database "host:port".
func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
}

// NewConfig loads the configuration for the current ENV (DEV by default).
// Values come from the environment (prefixed with the env name, eg. DEV_API_BASEURL),
// after loading config/.env.<env> when that file exists.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Masomo Admin")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("api.baseURL", "http://localhost:8000/api")
	conf.SetDefault("api.timeout", 15*time.Second)
	conf.SetDefault("api.token", "")
	conf.SetDefault("api.secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("api.jwtExpirationDelta", time.Hour)

	conf.SetDefault("store.editPolicy", "append")

	conf.SetDefault("sandbox.address", ":8000")
	conf.SetDefault("sandbox.storage", "memory")
	conf.SetDefault("sandbox.seedFile", "")
	conf.SetDefault("sandbox.shutdownTimeout", 10*time.Second)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", 5432)
	conf.SetDefault("database.name", "masomo")
	conf.SetDefault("database.user", "masomo")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.adminUser", "")
	conf.SetDefault("database.adminPassword", "")
	conf.SetDefault("database.disableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: APIConfig{
			BaseURL:            conf.GetString("api.baseURL"),
			Timeout:            conf.GetDuration("api.timeout"),
			Token:              conf.GetString("api.token"),
			SecretKey:          conf.GetString("api.secretKey"),
			JWTExpirationDelta: conf.GetDuration("api.jwtExpirationDelta"),
		},
		Store: StoreConfig{
			EditPolicy: conf.GetString("store.editPolicy"),
		},
		Sandbox: SandboxConfig{
			Address:         conf.GetString("sandbox.address"),
			Storage:         conf.GetString("sandbox.storage"),
			SeedFile:        conf.GetString("sandbox.seedFile"),
			ShutdownTimeout: conf.GetDuration("sandbox.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetInt("database.port"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: no .env loading, no Rollbar.
func NewTestConfig() *Config {
	return &Config{
		Env:      "TEST",
		Debug:    true,
		TestMode: true,
		AppName:  "Masomo Admin",
		Build:    "test",
		API: APIConfig{
			Timeout:            5 * time.Second,
			SecretKey:          "secret",
			JWTExpirationDelta: 10 * time.Minute,
		},
		Store:   StoreConfig{EditPolicy: "append"},
		Sandbox: SandboxConfig{Storage: "memory", ShutdownTimeout: time.Second},
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("%s (env=%s, build=%s, api=%s)", c.AppName, c.Env, c.Build, c.API.BaseURL)
}

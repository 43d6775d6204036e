package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type App struct {
	Name string
	Env  string
	Port int
}

type Log struct {
	Level string
	JSON  bool
	File  string
}

type JWT struct {
	Secret            string
	AccessTokenTTLMin int
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
}

type Config struct {
	App App
	Log Log
	JWT JWT
	DB  DB
}

// Load reads configuration from the given yaml file, with APP_-prefixed
// environment variables overriding file values (APP_JWT_SECRET, APP_DB_DSN…).
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = "./configs/config.yaml"
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only surfaces keys that already exist in defaults or the
	// file, so keys without a default must be bound by hand or env-only
	// deployments lose them.
	for _, key := range []string{"jwt.secret", "db.dsn", "log.file"} {
		if err := v.BindEnv(key); err != nil {
			log.Fatalf("bind env for %s: %v", key, err)
		}
	}

	v.SetDefault("app.name", "task-tracker-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("jwt.accesstokenttlmin", 60)
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)

	if err := v.ReadInConfig(); err != nil {
		// Env-only configuration is fine; a present-but-broken file is not.
		// SetConfigFile reports a missing file as fs.ErrNotExist, not as
		// viper's ConfigFileNotFoundError.
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config file %s not readable, using env/defaults: %v", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

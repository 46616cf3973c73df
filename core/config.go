package core

import (
	"log"
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
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		WorkDir      string
		RollbarToken string

		Server   ServerConfig
		Logs     LogsConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host            string
		Port            int
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	// LogsConfig controls how student log entries are date-stamped.
	LogsConfig struct {
		DateLayout string
		TimeZone   string
	}

	DatabaseConfig struct {
		Engine   string // memory | file | mongo | postgres | redis
		File     FileConfig
		Mongo    MongoConfig
		Postgres PostgresConfig
		Redis    RedisConfig
	}

	FileConfig struct {
		Path  string
		Watch bool
	}

	MongoConfig struct {
		URI     string
		Name    string
		Timeout time.Duration
	}

	PostgresConfig struct {
		Engine        string
		Host          string
		Port          int
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Name          string
		DisableTLS    bool
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
		Timeout  time.Duration
	}
)

// Address returns the "host:port" the API server listens on.
func (c ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func (c PostgresConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Location returns the time zone log dates are stamped in. Falls back to time.Local.
func (c LogsConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Student Logs")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.debugHost", "localhost:4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("logs.dateLayout", "1/2/2006, 3:04:05 PM")
	v.SetDefault("logs.timeZone", "")

	v.SetDefault("database.engine", "file")
	v.SetDefault("database.file.path", filepath.Join("data", "db.json"))
	v.SetDefault("database.file.watch", false)
	v.SetDefault("database.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongo.name", "studentlogs")
	v.SetDefault("database.mongo.timeout", 10*time.Second)
	v.SetDefault("database.postgres.engine", "postgres")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "studentlogs")
	v.SetDefault("database.postgres.password", "studentlogs")
	v.SetDefault("database.postgres.adminUser", "")
	v.SetDefault("database.postgres.adminPassword", "")
	v.SetDefault("database.postgres.name", "studentlogs")
	v.SetDefault("database.postgres.disableTLS", true)
	v.SetDefault("database.redis.addr", "localhost:6379")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("database.redis.timeout", 5*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	// optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(wd, "config"))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("config.ReadInConfig: %v", err)
		}
	}
	v.AutomaticEnv()

	return &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		WorkDir:      wd,
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Logs: LogsConfig{
			DateLayout: v.GetString("logs.dateLayout"),
			TimeZone:   v.GetString("logs.timeZone"),
		},
		Database: DatabaseConfig{
			Engine: strings.ToLower(v.GetString("database.engine")),
			File: FileConfig{
				Path:  resolvePath(wd, v.GetString("database.file.path")),
				Watch: v.GetBool("database.file.watch"),
			},
			Mongo: MongoConfig{
				URI:     v.GetString("database.mongo.uri"),
				Name:    v.GetString("database.mongo.name"),
				Timeout: v.GetDuration("database.mongo.timeout"),
			},
			Postgres: PostgresConfig{
				Engine:        v.GetString("database.postgres.engine"),
				Host:          v.GetString("database.postgres.host"),
				Port:          v.GetInt("database.postgres.port"),
				User:          v.GetString("database.postgres.user"),
				Password:      v.GetString("database.postgres.password"),
				AdminUser:     v.GetString("database.postgres.adminUser"),
				AdminPassword: v.GetString("database.postgres.adminPassword"),
				Name:          v.GetString("database.postgres.name"),
				DisableTLS:    v.GetBool("database.postgres.disableTLS"),
			},
			Redis: RedisConfig{
				Addr:     v.GetString("database.redis.addr"),
				Password: v.GetString("database.redis.password"),
				DB:       v.GetInt("database.redis.db"),
				Timeout:  v.GetDuration("database.redis.timeout"),
			},
		},
	}
}

func resolvePath(wd, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(wd, p)
}

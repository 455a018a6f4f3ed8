package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"employees/internal/utils/logger"
)

const (
	envPath  = ".env"
	EnvLocal = logger.EnvLocal
	EnvDev   = logger.EnvDev
	EnvProd  = logger.EnvProd

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const defaultAllowedOrigins = "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173," +
	"https://employee-management-system-mern-*.vercel.app"

type Config struct {
	Env     string
	DB      db
	Server  server
	Log     logging
	Storage storage
}

type db struct {
	DatabaseURI string
	Migrations  string
}

type storage struct {
	Driver     string
	SQLitePath string
}

type server struct {
	RunAddress      string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// logging.Level пустой — уровень выбирается по APP_ENV.
type logging struct {
	Level string
}

// MustLoad читает .env (если есть) и переменные окружения.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return Load(viper.New())
}

// Load builds the configuration from an already prepared viper instance.
func Load(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":5050")
	v.SetDefault("storage_driver", DriverPostgres)
	v.SetDefault("sqlite_path", "employees.db")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("allowed_origins", defaultAllowedOrigins)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("log_level", "")

	return &Config{
		Env: v.GetString("app_env"),
		DB: db{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Storage: storage{
			Driver:     strings.ToLower(v.GetString("storage_driver")),
			SQLitePath: v.GetString("sqlite_path"),
		},
		Server: server{
			RunAddress:      v.GetString("run_address"),
			AllowedOrigins:  splitList(v.GetString("allowed_origins")),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Log: logging{Level: v.GetString("log_level")},
	}
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

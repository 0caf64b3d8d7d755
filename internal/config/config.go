package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	Addr         string
	DBDSN        string
	TemplatesDir string
	LogFile      string
}

// Load resolves configuration from, in increasing precedence: built-in
// defaults, a .env file if present, environment variables, and
// command-line flags.
func Load(args []string) Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         getenv("ADDR", ":8080"),
		DBDSN:        getenv("DB_DSN", "storefront.db"),
		TemplatesDir: getenv("TEMPLATES_DIR", "./web/templates"),
		LogFile:      getenv("LOG_FILE", ""),
	}

	fs := pflag.NewFlagSet("storefront", pflag.ExitOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DBDSN, "db", cfg.DBDSN, "sqlite dsn")
	fs.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "html templates directory")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append logs to this file as well as stdout")
	_ = fs.Parse(args)

	log.Printf("[config] ADDR=%s DB_DSN=%s TEMPLATES_DIR=%s LOG_FILE=%s",
		cfg.Addr, cfg.DBDSN, cfg.TemplatesDir, cfg.LogFile)
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

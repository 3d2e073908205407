// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is read from the environment (optionally seeded from a .env file).
// Google credentials and ids are not required at startup: the invoice
// handler reports them as a configuration error per request instead.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR,default=:8080"`
	ShopName   string `env:"SHOP_NAME,default=Shree Designer"`
	AccessCode string `env:"ACCESS_CODE"`

	DB       DBConfig
	Google   GoogleConfig
	Storage  StorageConfig
	RedisURL string `env:"REDIS_ADDR"`
	AMQPURL  string `env:"AMQP_URL"`

	CatalogPath    string        `env:"CATALOG_PATH"`
	InvoiceTimeout time.Duration `env:"INVOICE_TIMEOUT,default=0s"`
	InvoiceRate    float64       `env:"INVOICE_RATE_PER_SECOND,default=1"`
	InvoiceBurst   int           `env:"INVOICE_RATE_BURST,default=5"`
	CacheTTL       time.Duration `env:"CUSTOMER_CACHE_TTL,default=5m"`
}

type DBConfig struct {
	User     string `env:"DB_USER,default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST,default=localhost"`
	Port     string `env:"DB_PORT,default=5432"`
	Name     string `env:"DB_NAME,default=tailorbook"`
	URL      string `env:"DATABASE_URL"`
}

// DSN prefers DATABASE_URL when it is set.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}

type GoogleConfig struct {
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	TemplateID      string `env:"TEMPLATE_ID"`
	FolderID        string `env:"FOLDER_ID"`
}

type StorageConfig struct {
	Driver        string `env:"STORAGE_DRIVER,default=drive"`
	SFTPAddr      string `env:"SFTP_ADDR"`
	SFTPUser      string `env:"SFTP_USER"`
	SFTPPassword  string `env:"SFTP_PASSWORD"`
	SFTPHostKey   string `env:"SFTP_HOST_KEY"`
	SFTPDir       string `env:"SFTP_DIR,default=/invoices"`
	PublicBaseURL string `env:"SFTP_PUBLIC_BASE_URL"`
}

// Load reads .env (if present) and decodes the environment into a Config.
// It reports whether a .env file was found so the caller can log it.
func Load() (*Config, bool, error) {
	envFound := godotenv.Load() == nil

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, envFound, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, envFound, nil
}

// MissingInvoiceSettings lists the settings the invoice chain cannot run without.
func (g GoogleConfig) MissingInvoiceSettings() []string {
	var missing []string
	if g.CredentialsFile == "" {
		missing = append(missing, "GOOGLE_APPLICATION_CREDENTIALS")
	}
	if g.TemplateID == "" {
		missing = append(missing, "TEMPLATE_ID")
	}
	if g.FolderID == "" {
		missing = append(missing, "FOLDER_ID")
	}
	return missing
}

package postgres

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/enumerate/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

// CxnConfig holds connection information used to connect to a PostgreSQL database.
type CxnConfig struct {
	IsTestDB bool
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// NewCxnConfig reads a *CxnConfig from environment variables:
// DATABASE_URL, or DATABASE_HOST, DATABASE_PORT, DATABASE_NAME, DATABASE_USER, DATABASE_PASSWORD and DATABASE_SSLMODE.
//
// In the Testing Environment, the TEST_DATABASE_ variants are read instead
// and the database is marked as a test database.
func NewCxnConfig(env config.Environment) *CxnConfig {
	prefix := "DATABASE_"
	if env.IsTesting() {
		prefix = "TEST_DATABASE_"
	}

	return &CxnConfig{
		IsTestDB: env.IsTesting(),
		URL:      config.EnvVarOrString(prefix+"URL", ""),
		Host:     config.EnvVarOrString(prefix+"HOST", "localhost"),
		Port:     config.EnvVarOrString(prefix+"PORT", "5432"),
		Name:     config.EnvVarOrString(prefix+"NAME", "enumerate"),
		User:     config.EnvVarOrString(prefix+"USER", "enumerate"),
		Password: config.EnvVarOrString(prefix+"PASSWORD", ""),
		SSLMode:  config.EnvVarOrString(prefix+"SSLMODE", ""),
	}
}

// Connect creates a database connection through GORM according to the connection config.
func Connect(cfg *CxnConfig, env config.Environment) (*DB, error) {
	db, err := Open(postgres.Open(buildCxnStr(cfg)), env)
	if err != nil {
		return nil, err
	}

	if cfg.IsTestDB {
		if err := db.DB().Exec("DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;").Error; err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Open creates a database connection through GORM with dialector,
// configuring GORM the same way regardless of the database.
func Open(dialector gorm.Dialector, env config.Environment) (*DB, error) {
	// https://gorm.io/docs/logger.html
	c := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	}

	if env.IsDevelopment() {
		c.Colorful = true
	}

	if env.IsTesting() {
		c.LogLevel = logger.Silent
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), c),
		NamingStrategy: schema.NamingStrategy{
			NameReplacer: strings.NewReplacer("Table", ""),
		},
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, err
	}

	return NewDB(gdb), nil
}

func buildCxnStr(cfg *CxnConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	if cfg.SSLMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		cfg.SSLMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.User,
		cfg.Password,
		cfg.SSLMode,
	)
}

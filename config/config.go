package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/logger"
	"golang.org/x/text/language"
)

const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	LogLevelEnvVar     = "LOG_LEVEL"
	DefinitionsEnvVar  = "ENUMERATE_DEFINITIONS"
	TranslationsEnvVar = "ENUMERATE_TRANSLATIONS"
	LocaleEnvVar       = "ENUMERATE_LOCALE"
	HTTPAddrEnvVar     = "ENUMERATE_HTTP_ADDR"
	SortEnvVar         = "ENUMERATE_SORT"
	NoColorEnvVar      = "ENUMERATE_NO_COLOR"

	DefaultDefinitions = "enumerations.yml"
	DefaultHTTPAddr    = ":8080"
)

// A Config is the configuration of the enumerate command.
type Config struct {
	Env          Environment
	LogLevel     logger.LogLevel
	Definitions  string
	Translations string
	Locale       language.Tag
	HTTPAddr     string
	Sort         enumerate.SortBy
	NoColor      bool
}

// Load reads environment variables, after loading any in envFiles, into a Config.
// Missing envFiles are skipped.
//
// If ENUMERATE_LOCALE or ENUMERATE_SORT hold invalid values, ErrBadConfig returns.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		err := godotenv.Load(f)
		var pe *fs.PathError
		if err != nil && !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("%w: loading %s: %s", enumerate.ErrBadConfig, f, err)
		}
	}

	cfg := Config{
		Env:          EnvVarOrEnv(EnvironmentEnvVar, Development),
		LogLevel:     EnvVarOrLogLevel(LogLevelEnvVar, logger.LogLevelInfo),
		Definitions:  EnvVarOrString(DefinitionsEnvVar, DefaultDefinitions),
		Translations: EnvVarOrString(TranslationsEnvVar, ""),
		HTTPAddr:     EnvVarOrString(HTTPAddrEnvVar, DefaultHTTPAddr),
		NoColor:      EnvVarOrBool(NoColorEnvVar, false),
	}

	locale, err := language.Parse(EnvVarOrString(LocaleEnvVar, enumerate.DefaultLocale.String()))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %s", enumerate.ErrBadConfig, LocaleEnvVar, err)
	}
	cfg.Locale = locale

	sort, err := enumerate.ParseSortBy(EnvVarOrString(SortEnvVar, ""))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", enumerate.ErrBadConfig, err)
	}
	cfg.Sort = sort

	return cfg, nil
}

// Logger constructs the logger.Logger cfg describes.
func (cfg Config) Logger() *logger.ColorLogger {
	return logger.New(logger.WithLevel(cfg.LogLevel))
}

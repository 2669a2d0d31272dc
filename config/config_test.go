package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/config"
	"github.com/xy-planning-network/enumerate/logger"
	"golang.org/x/text/language"
)

func TestEnvironmentValid(t *testing.T) {
	for _, tc := range []struct {
		env config.Environment
		err error
	}{
		{config.Development, nil},
		{config.Testing, nil},
		{config.Staging, nil},
		{config.Production, nil},
		{"", enumerate.ErrNotValid},
		{"development", enumerate.ErrNotValid},
		{"DEMO", enumerate.ErrNotValid},
	} {
		t.Run(tc.env.String(), func(t *testing.T) {
			require.ErrorIs(t, tc.env.Valid(), tc.err)
		})
	}

	require.Equal(t, "Production", config.Environments.Humanize(config.Production))
	require.True(t, config.Testing.IsTesting())
	require.True(t, config.Development.IsDevelopment())
	require.False(t, config.Staging.IsProduction())
}

func TestEnvVarOr(t *testing.T) {
	// Arrange
	t.Setenv("TEST_BOOL", "TRUE")
	t.Setenv("TEST_ENV", "staging")
	t.Setenv("TEST_BAD_ENV", "demo")
	t.Setenv("TEST_LEVEL", "warn")
	t.Setenv("TEST_STRING", "value")

	// Act + Assert
	require.True(t, config.EnvVarOrBool("TEST_BOOL", false))
	require.True(t, config.EnvVarOrBool("TEST_UNSET", true))
	require.Equal(t, config.Staging, config.EnvVarOrEnv("TEST_ENV", config.Development))
	require.Equal(t, config.Development, config.EnvVarOrEnv("TEST_BAD_ENV", config.Development))
	require.Equal(t, config.Testing, config.EnvVarOrEnv("TEST_UNSET", config.Testing))
	require.Equal(t, logger.LogLevelWarn, config.EnvVarOrLogLevel("TEST_LEVEL", logger.LogLevelInfo))
	require.Equal(t, logger.LogLevelInfo, config.EnvVarOrLogLevel("TEST_UNSET", logger.LogLevelInfo))
	require.Equal(t, "value", config.EnvVarOrString("TEST_STRING", "def"))
	require.Equal(t, "def", config.EnvVarOrString("TEST_UNSET", "def"))
}

func TestLoad(t *testing.T) {
	// Arrange
	for _, key := range []string{
		config.EnvironmentEnvVar,
		config.LogLevelEnvVar,
		config.DefinitionsEnvVar,
		config.TranslationsEnvVar,
		config.LocaleEnvVar,
		config.HTTPAddrEnvVar,
		config.SortEnvVar,
		config.NoColorEnvVar,
	} {
		t.Setenv(key, "")
		require.Nil(t, os.Unsetenv(key))
	}

	// Act
	cfg, err := config.Load("testdata/does-not-exist.env")

	// Assert
	require.Nil(t, err)
	require.Equal(t, config.Config{
		Env:         config.Development,
		LogLevel:    logger.LogLevelInfo,
		Definitions: config.DefaultDefinitions,
		Locale:      language.English,
		HTTPAddr:    config.DefaultHTTPAddr,
		Sort:        enumerate.SortNone,
	}, cfg)

	// Arrange
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	contents := "ENVIRONMENT=production\nENUMERATE_LOCALE=pt-BR\nENUMERATE_SORT=label\nENUMERATE_DEFINITIONS=defs.yml\nENUMERATE_NO_COLOR=true\n"
	require.Nil(t, os.WriteFile(envFile, []byte(contents), 0o600))

	// Act
	cfg, err = config.Load(envFile)

	// Assert
	require.Nil(t, err)
	require.Equal(t, config.Production, cfg.Env)
	require.Equal(t, language.BrazilianPortuguese, cfg.Locale)
	require.Equal(t, enumerate.SortLabel, cfg.Sort)
	require.Equal(t, "defs.yml", cfg.Definitions)
	require.True(t, cfg.NoColor)
	require.Equal(t, logger.LogLevelInfo, cfg.Logger().LogLevel())
}

func TestLoadBadConfig(t *testing.T) {
	for _, tc := range []struct {
		key string
		val string
	}{
		{config.LocaleEnvVar, "not a locale"},
		{config.SortEnvVar, "sideways"},
	} {
		t.Run(tc.key, func(t *testing.T) {
			// Arrange
			t.Setenv(tc.key, tc.val)

			// Act
			_, err := config.Load()

			// Assert
			require.ErrorIs(t, err, enumerate.ErrBadConfig)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestSetup_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	v := viper.New()
	require.NoError(t, Setup(v))

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, &Config{
		Database:   "company.db",
		File:       "records.yaml",
		Output:     "schemas",
		StudioPort: "8080",
	}, cfg)
}

func TestSetup_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TABLEGEN_DATABASE", "other.db")
	t.Setenv("TABLEGEN_STUDIO_PORT", "9090")
	t.Setenv("TABLEGEN_MODELS", "./models")

	v := viper.New()
	require.NoError(t, Setup(v))

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, "other.db", cfg.Database)
	require.Equal(t, "9090", cfg.StudioPort)
	require.Equal(t, "./models", cfg.Models)
}

func TestSetup_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tablegen.yaml"), []byte("database: from-file.db\noutput: out\n"), 0644))

	v := viper.New()
	require.NoError(t, Setup(v))

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, "from-file.db", cfg.Database)
	require.Equal(t, "out", cfg.Output)
}

func TestSetup_BrokenConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tablegen.yaml"), []byte("database: [unterminated\n"), 0644))

	require.Error(t, Setup(viper.New()))
}

func TestFromViper_Errors(t *testing.T) {
	v := viper.New()
	v.Set(KeyDatabase, "  ")
	v.Set(KeyFile, "records.yaml")
	_, err := FromViper(v)
	require.ErrorContains(t, err, "database location is empty")

	v = viper.New()
	v.Set(KeyDatabase, "x.db")
	_, err = FromViper(v)
	require.ErrorContains(t, err, "no record source")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, LoadEnv(), "missing .env is not an error")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TABLEGEN_TEST_VALUE=from-dotenv\n"), 0644))
	t.Setenv("TABLEGEN_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("TABLEGEN_TEST_VALUE"))
	require.NoError(t, LoadEnv())
	require.Equal(t, "from-dotenv", os.Getenv("TABLEGEN_TEST_VALUE"))
}

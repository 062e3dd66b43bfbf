package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("project-dir", "", "")
	flags.Bool("verbose", false, "")
	flags.Int("parallel", 0, "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	root := t.TempDir()
	flags := testFlags(t, "--project-dir", root)

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultExclude, cfg.Exclude)
	assert.Equal(t, 0, cfg.Parallel)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_File(t *testing.T) {
	root := t.TempDir()
	content := "output: json\nparallel: 4\nexclude:\n  - spec\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadConfig("", testFlags(t, "--project-dir", root))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, []string{"spec"}, cfg.Exclude)
}

func TestLoadConfig_PackagePaths(t *testing.T) {
	root := t.TempDir()
	content := "package_paths:\n  - components/*\n  - gems/*\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadConfig("", testFlags(t, "--project-dir", root))
	require.NoError(t, err)
	assert.Equal(t, []string{"components/*", "gems/*"}, cfg.PackagePaths)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("output: json\n"), 0o644))

	cfg, err := LoadConfig("", testFlags(t, "--project-dir", root, "--output", "text", "--parallel", "2"))
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, 2, cfg.Parallel)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("output: text\n"), 0o644))
	t.Setenv("PACKWERK_OUTPUT", "json")

	cfg, err := LoadConfig("", testFlags(t, "--project-dir", root))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadConfig_ExplicitConfigFilePinsRoot(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0o644))

	cfg, err := LoadConfig(cfgPath, testFlags(t))
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadConfig_InvalidOutput(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("output: yaml\n"), 0o644))

	_, err := LoadConfig("", testFlags(t, "--project-dir", root))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Output: "text"}
	assert.NoError(t, cfg.Validate())

	cfg.Parallel = -1
	assert.Error(t, cfg.Validate())
}

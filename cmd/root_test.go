package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gnames/gbifreport/internal/iofs"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "gbifreport", cmd.Use,
		"Command name should be gbifreport")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()

	// Set a test version
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "gbifreport",
		"Help should mention gbifreport")
	assert.Contains(t, helpText, "publishers.yaml",
		"Help should mention publishers file")
	assert.Contains(t, helpText, "GBIFREPORT_",
		"Help should mention environment variables")
	assert.Contains(t, helpText, "reconcile",
		"Help should mention subcommands")
}

// TestGetRootCmd_ShortDescription verifies
// short description.
func TestGetRootCmd_ShortDescription(t *testing.T) {
	cmd := getRootCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "GBIF",
		"Short description should mention GBIF")
	assert.Contains(t, cmd.Short, "publishers",
		"Short description should mention publishers")
}

// TestGetRootCmd_LongDescription verifies
// long description.
func TestGetRootCmd_LongDescription(t *testing.T) {
	cmd := getRootCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "download",
		"Long description should mention download")
	assert.Contains(t, cmd.Long, "reconcile",
		"Long description should mention reconcile")
	assert.Contains(t, cmd.Long, "literature",
		"Long description should mention literature")
	assert.Contains(t, cmd.Long, "GBIF_USER",
		"Long description should mention legacy variables")
}

// TestGetRootCmd_HasPreRun verifies bootstrap
// function is set.
func TestGetRootCmd_HasPreRun(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
}

// TestGetRootCmd_HasRunE verifies root has a run function.
// This is needed to handle the version flag after bootstrap.
func TestGetRootCmd_HasRunE(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set to handle version flag")
}

// TestGetRootCmd_ErrorSilencing verifies error and
// usage silencing.
func TestGetRootCmd_ErrorSilencing(t *testing.T) {
	cmd := getRootCmd()

	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestGetRootCmd_VersionTemplate verifies custom version template.
func TestGetRootCmd_VersionTemplate(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "test-version"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	// Should not have "gbifreport version" prefix due to
	// custom template
	assert.NotContains(t, output, "gbifreport version:",
		"Should use custom version template")
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	// Should be different instances
	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	// Modifying one shouldn't affect the other
	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	assert.Error(t, err,
		"Should error on invalid command")
	output := buf.String()
	assert.True(t,
		strings.Contains(output, "unknown") ||
			strings.Contains(output, "invalid") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

// TestGetRootCmd_Subcommands verifies that all pipelines are registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	for _, name := range []string{"download", "reconcile", "literature", "suggest"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	flag := cmd.PersistentFlags().Lookup("publishers")
	require.NotNil(t, flag,
		"--publishers flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
}

// TestInitConfig_EnvAliases verifies that variables of earlier report
// scripts configure the run, and that GBIFREPORT_* names win over them.
func TestInitConfig_EnvAliases(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	t.Setenv("GBIF_USER", "legacy-user")
	t.Setenv("GBIFREPORT_GBIF_USER", "jdoe")
	t.Setenv("GBIF_PASSWORD", "secret")
	t.Setenv("GBIF_EMAIL", "jdoe@example.org")
	t.Setenv("MAX_DATE", "2023-12-31")
	t.Setenv("ZIP_FOLDER_PATH", "/data/zip")
	t.Setenv("OUTPUT_FOLDER_PATH", "/data/reports")

	v, err := initConfig(home)
	require.NoError(t, err)
	cfg := config.New()
	cfg.Update(v.ToOptions())

	assert.Equal(t, "jdoe", cfg.GBIF.User)
	assert.Equal(t, "secret", cfg.GBIF.Password)
	assert.Equal(t, "jdoe@example.org", cfg.GBIF.Email)
	assert.Equal(t, "2023-12-31", cfg.Download.CutoffDate)
	assert.Equal(t, "/data/zip", cfg.Paths.ArchiveDir)
	assert.Equal(t, "/data/reports", cfg.Paths.OutputDir)
}

// TestInitConfig_BadFile verifies the error for a broken config.yaml.
func TestInitConfig_BadFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	path := config.ConfigFilePath(home)
	require.NoError(t, os.WriteFile(path, []byte("gbif: [\n"), 0644))

	_, err := initConfig(home)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ConfigFileError, gnErr.Code)
}

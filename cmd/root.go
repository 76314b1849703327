/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gbifreport/internal/iofs"
	"github.com/gnames/gbifreport/internal/iologger"
	app "github.com/gnames/gbifreport/pkg"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
// A new instance is created on every call.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gbifreport",
		Short:   "GBIFreport creates annual GBIF statistics for publishers",
		Long: `GBIFreport collects annual statistics of preserved specimens that
publishing organizations share through GBIF.

The work is done in three steps:
  - download:   request occurrence downloads of every publisher
  - reconcile:  count records per dataset and find duplicates
  - literature: find literature citing reconciled datasets

Publishers are listed in ~/.config/gbifreport/publishers.yaml,
use 'gbifreport suggest' to find their GBIF keys.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GBIFREPORT_*, also .env and .env.local)
  3. Config file (~/.config/gbifreport/config.yaml)
  4. Built-in defaults

Environment Variables:
  GBIFREPORT_GBIF_USER            GBIF user (or GBIF_USER)
  GBIFREPORT_GBIF_PASSWORD        GBIF password (or GBIF_PASSWORD)
  GBIFREPORT_GBIF_EMAIL           notification email (or GBIF_EMAIL)
  GBIFREPORT_DOWNLOAD_CUTOFF_DATE latest event date (or MAX_DATE)
  GBIFREPORT_PATHS_ARCHIVE_DIR    archive directory (or ZIP_FOLDER_PATH)
  GBIFREPORT_PATHS_OUTPUT_DIR     report directory (or OUTPUT_FOLDER_PATH)
  GBIFREPORT_LOG_LEVEL            log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gbifreport version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gbifreport")

	rootCmd.PersistentFlags().StringP(
		"publishers", "p", "",
		"publishers file (default ~/.config/gbifreport/publishers.yaml)",
	)

	rootCmd.AddCommand(
		getDownloadCmd(),
		getReconcileCmd(),
		getLiteratureCmd(),
		getSuggestCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsurePublishersFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	loadEnvFiles()

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if pubFile, _ := cmd.Flags().GetString("publishers"); pubFile != "" {
		cfg.Update([]config.Option{config.OptPublishersFile(pubFile)})
	}

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadEnvFiles loads .env and .env.local from the working directory.
// Variables that are already set are not overridden.
func loadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err == nil {
			slog.Info("Environment file loaded", "file", f)
		}
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ConfigFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ConfigFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	// The second name of a variable is the one used by earlier report scripts.
	v.SetEnvPrefix("GBIFREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// GBIF API configuration
	_ = v.BindEnv("gbif.base_url", "GBIFREPORT_GBIF_BASE_URL")
	_ = v.BindEnv("gbif.user", "GBIFREPORT_GBIF_USER", "GBIF_USER")
	_ = v.BindEnv("gbif.password", "GBIFREPORT_GBIF_PASSWORD", "GBIF_PASSWORD")
	_ = v.BindEnv("gbif.email", "GBIFREPORT_GBIF_EMAIL", "GBIF_EMAIL")
	_ = v.BindEnv("gbif.timeout", "GBIFREPORT_GBIF_TIMEOUT")
	_ = v.BindEnv("gbif.max_retries", "GBIFREPORT_GBIF_MAX_RETRIES")

	// Download configuration
	_ = v.BindEnv("download.cutoff_date", "GBIFREPORT_DOWNLOAD_CUTOFF_DATE", "MAX_DATE")
	_ = v.BindEnv("download.poll_interval", "GBIFREPORT_DOWNLOAD_POLL_INTERVAL")
	_ = v.BindEnv("download.poll_max_interval", "GBIFREPORT_DOWNLOAD_POLL_MAX_INTERVAL")
	_ = v.BindEnv("download.poll_max_wait", "GBIFREPORT_DOWNLOAD_POLL_MAX_WAIT")

	// Literature configuration
	_ = v.BindEnv("literature.year", "GBIFREPORT_LITERATURE_YEAR")
	_ = v.BindEnv("literature.page_size", "GBIFREPORT_LITERATURE_PAGE_SIZE")
	_ = v.BindEnv("literature.request_delay", "GBIFREPORT_LITERATURE_REQUEST_DELAY")

	// Paths configuration
	_ = v.BindEnv("paths.archive_dir", "GBIFREPORT_PATHS_ARCHIVE_DIR", "ZIP_FOLDER_PATH")
	_ = v.BindEnv("paths.output_dir", "GBIFREPORT_PATHS_OUTPUT_DIR", "OUTPUT_FOLDER_PATH")

	// Reconcile configuration
	_ = v.BindEnv("reconcile.file_pattern", "GBIFREPORT_RECONCILE_FILE_PATTERN")
	_ = v.BindEnv("reconcile.sqlite", "GBIFREPORT_RECONCILE_SQLITE")

	// Log configuration
	_ = v.BindEnv("log.level", "GBIFREPORT_LOG_LEVEL")
	_ = v.BindEnv("log.format", "GBIFREPORT_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "GBIFREPORT_LOG_DESTINATION")

	v.AutomaticEnv()
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/hajduko/SaWinHETUtility/internal/config"
	"github.com/hajduko/SaWinHETUtility/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var globalFlags struct {
	configPath string
	inboxDir   string
	outputDir  string
	dbPath     string
	workers    int
	keepInput  bool
	logLevel   string
	logFormat  string
}

// cfg is the effective configuration, resolved before any subcommand runs.
var cfg config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sawinhet",
		Short: "Convert flat energy-certificate exports into certificate documents",
		Long: "sawinhet turns the flat key/value records exported by the certificate\n" +
			"calculator into the nested document format expected by the national\n" +
			"energy-certificate registry, embedding the calculations PDF and photos.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			cfg = c
			level, _ := c.Level()
			logging.Init(level, c.LogFormat, cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&globalFlags.configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringVar(&globalFlags.inboxDir, "inbox", config.DefaultInboxDir, "Directory of pending flat records")
	pf.StringVar(&globalFlags.outputDir, "output", config.DefaultOutputDir, "Directory for converted documents")
	pf.StringVar(&globalFlags.dbPath, "db", config.DefaultDBPath, "Conversion ledger DB path")
	pf.IntVar(&globalFlags.workers, "workers", config.DefaultWorkers, "Parallel conversions in batch mode")
	pf.BoolVar(&globalFlags.keepInput, "keep-input", false, "Keep inbox records after a successful conversion")
	pf.StringVar(&globalFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&globalFlags.logFormat, "log-format", logging.FormatText, "Log format: text or json")

	root.AddCommand(
		newConvertCmd(),
		newBatchCmd(),
		newInboxCmd(),
		newInspectCmd(),
		newHistoryCmd(),
		newCategoriesCmd(),
	)
	return root
}

// resolveConfig layers defaults, the config file, SAWINHET_* variables and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	c := config.Default()
	if globalFlags.configPath != "" {
		loaded, err := config.LoadFromPath(globalFlags.configPath)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	if err := c.ApplyEnv(nil); err != nil {
		return c, err
	}

	f := cmd.Flags()
	if f.Changed("inbox") {
		c.InboxDir = globalFlags.inboxDir
	}
	if f.Changed("output") {
		c.OutputDir = globalFlags.outputDir
	}
	if f.Changed("db") {
		c.DBPath = globalFlags.dbPath
	}
	if f.Changed("workers") {
		c.Workers = globalFlags.workers
	}
	if f.Changed("keep-input") {
		c.KeepInput = globalFlags.keepInput
	}
	if f.Changed("log-level") {
		c.LogLevel = globalFlags.logLevel
	}
	if f.Changed("log-format") {
		c.LogFormat = globalFlags.logFormat
	}
	return c, c.Validate()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/waybill-match/internal/cli"
	"github.com/Veraticus/waybill-match/internal/common"
	"github.com/Veraticus/waybill-match/internal/config"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "reconcile",
		Short: "🚚 Match sales records to carrier waybills",
		Long: `reconcile links each sale in a dispatch ledger to the most similar
recipient in a carrier's waybill export, classifies shipments by type, and
writes the comparison to a new workbook.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/reconcile/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", common.FormatConsole, "log format (console, json)")
	flags.Float64("threshold", 0.6, "minimum similarity for a match, in (0, 1]")
	flags.Int("workers", 0, "parallel matching workers (0 = number of CPUs)")
	flags.Bool("archive", false, "record the run in the history database")
	flags.String("archive-path", "", "history database path")
	flags.Bool("no-progress", false, "disable the progress bar")

	config.SetDefaults(viper.GetViper())
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyThreshold, flags.Lookup("threshold"))
	_ = viper.BindPFlag(config.KeyWorkers, flags.Lookup("workers"))
	_ = viper.BindPFlag(config.KeyArchiveEnabled, flags.Lookup("archive"))
	_ = viper.BindPFlag(config.KeyArchivePath, flags.Lookup("archive-path"))

	rootCmd.AddCommand(monthsCmd())
	rootCmd.AddCommand(sheetCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		}
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RECONCILE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	return common.SetupLogger(os.Stderr, level, viper.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reconcile %s\n", version)
		},
	}
}

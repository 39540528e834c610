package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/derichenko12/BeyondHomeV3/internal/config"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "beyondhome",
		Short:        "Estimate the cost of an off-grid homestead, step by step",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./.beyondhome.yaml)")
	pf.String("catalog", "", "catalog YAML file (default: built-in catalog)")
	pf.String("pipeline", "full", "journey pipeline: full or compact")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	_ = viper.BindPFlag("catalog_path", pf.Lookup("catalog"))
	_ = viper.BindPFlag("pipeline", pf.Lookup("pipeline"))
	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))

	rootCmd.AddCommand(regionsCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tuiCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads the config file, if any, and wires env overrides.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".beyondhome")
		viper.SetConfigType("yaml")
	}
	config.SetupEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func regionsCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Rank the catalog's regions against preference tags",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRegions(tags)
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "preference tags, comma separated")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate the catalog, and a plan file if one is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			plan := ""
			if len(args) == 1 {
				plan = args[0]
			}
			return runValidate(plan)
		},
	}
}

func estimateCmd() *cobra.Command {
	var (
		format string
		export bool
	)

	cmd := &cobra.Command{
		Use:   "estimate [plan-file]",
		Short: "Run a plan file through the journey and print the receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = viper.BindPFlag("export_dir", cmd.Flags().Lookup("export-dir"))
			return runEstimate(args[0], format, export)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "receipt format: text, html or json")
	cmd.Flags().BoolVarP(&export, "export", "e", false, "also save the receipt under the export directory")
	cmd.Flags().String("export-dir", "receipts", "directory for exported receipts")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API around a single journey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
			_ = viper.BindPFlag("server.watch_catalog", cmd.Flags().Lookup("watch"))
			return runServe()
		},
	}

	cmd.Flags().IntP("port", "p", 3000, "HTTP server port")
	cmd.Flags().Bool("watch", false, "reload the catalog file when it changes")
	return cmd
}

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Walk the journey interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = viper.BindPFlag("default_mode", cmd.Flags().Lookup("mode"))
			_ = viper.BindPFlag("export_dir", cmd.Flags().Lookup("export-dir"))
			return runTUI()
		},
	}

	cmd.Flags().String("mode", "homestead", "initial food production mode")
	cmd.Flags().String("export-dir", "receipts", "directory for exported receipts")
	return cmd
}

// Package cmd implements the counterscan command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rodmarques/counterscan/cmd/report"
	"github.com/rodmarques/counterscan/cmd/scan"
	"github.com/rodmarques/counterscan/cmd/train"
	"github.com/rodmarques/counterscan/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands.
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "counterscan",
		Short: "Marketplace counterfeit listing scanner",
		Long: `Scans marketplace search results for counterfeit and grey-market
product listings, classifies them and reports the risky ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	_ = godotenv.Load()

	// Parse flags early so the debug flag is visible to initConfig.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", config.AppName, config.AppVersion)
		},
	})

	rootCmd.AddCommand(scan.Command())
	rootCmd.AddCommand(train.Command())
	rootCmd.AddCommand(report.Command())
}

// initConfig merges config file, environment variables and defaults.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults and environment cover it.
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v\n", err)
	}

	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := bindEnvVars(); err != nil {
		return err
	}

	if Debug || viper.GetBool("app.debug") {
		viper.Set("logger.level", "debug")
		viper.Set("logger.encoding", "console")
		viper.Set("logger.development", true)
	}
	return nil
}

func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":      {"APP_ENV"},
		"app.debug":            {"APP_DEBUG"},
		"logger.level":         {"LOG_LEVEL"},
		"logger.encoding":      {"LOG_FORMAT"},
		"scraper.base_url":     {"SCRAPER_BASE_URL"},
		"scan.query":           {"SCAN_QUERY"},
		"scan.model_path":      {"SCAN_MODEL_PATH"},
		"scan.database_path":   {"SCAN_DATABASE_PATH"},
		"scan.output_dir":      {"SCAN_OUTPUT_DIR"},
		"scan.reference_table": {"SCAN_REFERENCE_TABLE"},
	}
	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vaibhaw-/RecordR/internal/recordr/config"
	"github.com/vaibhaw-/RecordR/internal/recordr/logger"
)

var (
	cfgFile string
	Version = "v0.1"
	rootCmd = &cobra.Command{
		Use:   "recordr",
		Short: "RecordR - normalize captured DB session payloads into canonical records",
		Long:  "RecordR: map JSON, regex or CSV session payloads onto canonical audit records using a declarative field mapping.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// load config
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
			} else {
				// default: ./config.yaml
				viper.SetConfigFile("config.yaml")
			}
			config.BindEnv(viper.GetViper())
			if err := viper.ReadInConfig(); err != nil {
				// flags alone are enough for most runs
				fmt.Fprintf(os.Stderr, "Warning: could not read config (%v). Using defaults and flags.\n", err)
			}
			if err := config.Load(viper.GetViper()); err != nil {
				return err
			}

			// init logger
			cfg := config.Get()
			if err := logger.InitLogger(logger.LogConfig{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
			}); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(mappingCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

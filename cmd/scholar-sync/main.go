// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-sync CLI.
//
// scholar-sync pulls an author's publication list and citation metrics from
// the scholar profile provider and publishes them as the JSON, Jekyll, and
// HTML files the personal site is built from.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-sync/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the scholar-sync CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-sync",
	Short: "Sync an author's scholar profile into site data files",
	Long: `scholar-sync fetches an author's publication list and citation metrics
from the scholar profile provider and writes three output files: a JSON
snapshot, a Jekyll data file, and a self-contained HTML preview page.

The pipeline is a single sequential run: fetch, normalize, sort by year,
publish. Each output sink is independent; a failed sink never blocks the
others.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-sync.yaml or ~/.config/scholar-sync/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-sync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-sync"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_SYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

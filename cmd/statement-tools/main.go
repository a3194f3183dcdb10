// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the statement-tools CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-tools/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when it is set, else the secret value for
// key, else "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the statement-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "statement-tools",
	Short: "Extract structured data from bank statement PDFs",
	Long: `statement-tools reads bank statement PDFs and recovers the bank, account
holder, masked account number, statement period, summary totals and the
transaction table.

Subcommands cover the whole workflow: parse and extract read statements,
decrypt and check handle password-protected files, generate writes sample
statements for testing, and templates maintains the bank template database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./statement-tools.yaml or ~/.config/statement-tools/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files (pdf-password)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: could not load .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("statement-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "statement-tools"))
		}
	}

	viper.SetEnvPrefix("STATEMENT_TOOLS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setting resolves a string option: an explicit flag wins, then the config
// file or environment under key, then the flag default.
func setting(cmd *cobra.Command, flag, key string) string {
	v, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		return v
	}
	return viper.GetString(key)
}

// boolSetting is setting for boolean options.
func boolSetting(cmd *cobra.Command, flag, key string) bool {
	v, _ := cmd.Flags().GetBool(flag)
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		return v
	}
	return viper.GetBool(key)
}

// passwordSetting resolves the statement password: the --password flag, then
// extraction.password from config or env, then .secrets/pdf-password.
func passwordSetting(cmd *cobra.Command) string {
	return secretDefault(secrets.PDFPassword, setting(cmd, "password", "extraction.password"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

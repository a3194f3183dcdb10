// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-tools/internal/generate"
	"github.com/pdiddy/statement-tools/internal/secrets"
	"github.com/pdiddy/statement-tools/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sample bank statement PDFs",
	Long: `Generate writes sample statements for testing extraction: two Chase
statements and a Wells Fargo statement with simulated transactions. Use
--demo for the fixed January 2024 Chase statement and --encrypted for a
password-protected fixture.`,
	RunE: runGenerate,
}

func generationConfig(cmd *cobra.Command) (types.GenerationConfig, error) {
	cfg := types.GenerationConfig{OutputDir: setting(cmd, "out-dir", "generation.output_dir")}
	seed, _ := cmd.Flags().GetInt64("seed")
	if !cmd.Flags().Changed("seed") && viper.IsSet("generation.seed") {
		v, err := strconv.ParseInt(viper.GetString("generation.seed"), 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid generation.seed: %w", err)
		}
		seed = v
	}
	cfg.Seed = seed
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := generationConfig(cmd)
	if err != nil {
		return err
	}
	demo, _ := cmd.Flags().GetBool("demo")
	encrypted, _ := cmd.Flags().GetBool("encrypted")

	switch {
	case demo:
		_, err = generate.WriteDemo(cfg.OutputDir, os.Stdout)
	case encrypted:
		password, _ := cmd.Flags().GetString("password")
		password = secretDefault(secrets.PDFPassword, password)
		if password == "" {
			return fmt.Errorf("--encrypted requires --password or .secrets/%s", secrets.PDFPassword)
		}
		_, err = generate.WriteEncrypted(cfg.OutputDir, password, os.Stdout)
	default:
		_, err = generate.WritePresets(cfg.OutputDir, time.Now(), generate.NewFaker(cfg.Seed), os.Stdout)
	}
	return err
}

func init() {
	generateCmd.Flags().String("out-dir", "test_statements", "directory for generated PDFs")
	generateCmd.Flags().Int64("seed", 0, "random seed for reproducible statements (0 = random)")
	generateCmd.Flags().Bool("demo", false, "write the fixed demo statement")
	generateCmd.Flags().Bool("encrypted", false, "write the password-protected test statement")
	generateCmd.Flags().String("password", "", "password for --encrypted")

	rootCmd.AddCommand(generateCmd)
}

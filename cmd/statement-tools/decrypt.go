// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statement-tools/internal/encryption"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file.pdf]",
	Short: "Remove the password from an encrypted PDF",
	Long: `Decrypt opens a password-protected PDF and prints a JSON result. The
decrypted document is included as base64, or written to --out when given.
Unencrypted input passes through unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	data, err := pdfInput(cmd, args)
	if err != nil {
		return err
	}
	res := encryption.DecryptResult(data, passwordSetting(cmd))

	if out, _ := cmd.Flags().GetString("out"); out != "" && res.Success {
		plain, err := base64.StdEncoding.DecodeString(res.DecryptedBase64)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, plain, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		res.DecryptedBase64 = ""
		fmt.Fprintln(os.Stderr, "Decrypted PDF written to", out)
	}
	return printJSON(res)
}

var checkCmd = &cobra.Command{
	Use:   "check [file.pdf]",
	Short: "Report whether a PDF is encrypted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := pdfInput(cmd, args)
		if err != nil {
			return err
		}
		return printJSON(encryption.CheckResult(data))
	},
}

func init() {
	decryptCmd.Flags().String("password", "", "document password (default: .secrets/pdf-password)")
	decryptCmd.Flags().String("out", "", "write the decrypted PDF to this file")
	decryptCmd.Flags().Bool("stdin", false, "read base64 PDF data from stdin")
	checkCmd.Flags().Bool("stdin", false, "read base64 PDF data from stdin")

	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(checkCmd)
}

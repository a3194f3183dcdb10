// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statement-tools/internal/content"
	"github.com/pdiddy/statement-tools/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file.pdf]",
	Short: "Print the text and tables of a PDF as JSON",
	Long: `Parse runs a content backend over one PDF and prints the full text and
every page with its text and recovered tables as JSON. Failures are reported
in the JSON as {"success": false, "error": ...}.

With --stdin the PDF is read from standard input as base64.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := pdfInput(cmd, args)
	if err != nil {
		return err
	}
	provider, err := content.New(types.ContentBackend(setting(cmd, "backend", "extraction.backend")))
	if err != nil {
		return err
	}
	return printJSON(content.NewResult(provider.Extract(data)))
}

// pdfInput reads the PDF named by args[0] or, with --stdin, base64 data
// from standard input.
func pdfInput(cmd *cobra.Command, args []string) ([]byte, error) {
	useStdin, _ := cmd.Flags().GetBool("stdin")
	if useStdin {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("decoding base64 input: %w", err)
		}
		return data, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a PDF file or --stdin is required")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	parseCmd.Flags().String("backend", string(types.BackendPDF), "content backend: pdf, fitz, or markitdown")
	parseCmd.Flags().Bool("stdin", false, "read base64 PDF data from stdin")

	rootCmd.AddCommand(parseCmd)
}

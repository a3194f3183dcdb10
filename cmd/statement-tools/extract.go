// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statement-tools/internal/content"
	"github.com/pdiddy/statement-tools/internal/export"
	"github.com/pdiddy/statement-tools/internal/secrets"
	"github.com/pdiddy/statement-tools/internal/statement"
	"github.com/pdiddy/statement-tools/internal/templates"
	"github.com/pdiddy/statement-tools/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <files...>",
	Short: "Extract statement fields and transactions from PDFs",
	Long: `Extract reads each statement PDF, decrypting it when a password is
available, and recovers the bank name, account holder, masked account number,
statement period, summary totals and transactions.

Without --out-dir each record is printed to stdout. With --out-dir one file
per statement is written and existing outputs are skipped unless --force.
With --db each extracted statement is stored and the bank's template is
updated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func extractionConfig(cmd *cobra.Command) types.ExtractionConfig {
	return types.ExtractionConfig{
		Backend:   types.ContentBackend(setting(cmd, "backend", "extraction.backend")),
		Password:  passwordSetting(cmd),
		Format:    types.OutputFormat(setting(cmd, "format", "extraction.format")),
		OutputDir: setting(cmd, "out-dir", "extraction.output_dir"),
		Force:     boolSetting(cmd, "force", "extraction.force"),
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig(cmd)
	provider, err := content.New(cfg.Backend)
	if err != nil {
		return err
	}
	p := &statement.Processor{Provider: provider, Password: cfg.Password}

	var rec statement.Recorder
	if dbPath := setting(cmd, "db", "templates.db_path"); dbPath != "" {
		store, err := templates.Open(context.Background(), dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = &templateRecorder{ctx: context.Background(), store: store}
	}

	if cfg.OutputDir == "" {
		return extractToStdout(p, args, cfg.Format, rec)
	}

	result := p.ProcessBatch(args, statement.BatchOptions{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Force:     cfg.Force,
		Recorder:  rec,
	}, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d statement(s) failed extraction", result.Failed)
	}
	return nil
}

func extractToStdout(p *statement.Processor, paths []string, format types.OutputFormat, rec statement.Recorder) error {
	failed := 0
	for _, path := range paths {
		res, err := p.ProcessFile(path)
		if err != nil {
			failed++
			var f *statement.Failure
			if errors.As(err, &f) && f.NeedsPassword {
				fmt.Fprintf(os.Stderr, "%s: %s (use --password or .secrets/%s)\n", path, f.Message, secrets.PDFPassword)
				continue
			}
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		if err := export.Write(os.Stdout, format, res.Record); err != nil {
			return err
		}
		if rec != nil {
			if err := rec.Record(path, res); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s not recorded (%v)\n", path, err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d statement(s) failed extraction", failed)
	}
	return nil
}

// templateRecorder stores extracted statements and learns bank templates.
type templateRecorder struct {
	ctx   context.Context
	store *templates.Store
}

func (t *templateRecorder) Record(fileName string, res *statement.Result) error {
	if _, err := t.store.RecordStatement(t.ctx, fileName, res.Record); err != nil {
		return err
	}
	if res.Record.BankName == nil {
		return nil
	}
	_, err := t.store.Save(t.ctx, templates.Template{
		BankName:      *res.Record.BankName,
		Patterns:      recognizedFields(res.Record),
		ColumnMapping: res.Columns,
	}, statement.Completeness(res.Record))
	return err
}

// recognizedFields marks which header fields were found in the record.
func recognizedFields(r types.StatementRecord) map[string]string {
	status := func(found bool) string {
		if found {
			return "found"
		}
		return "missing"
	}
	return map[string]string{
		"account_holder":   status(r.AccountHolder != nil),
		"account_number":   status(r.AccountNumber != nil),
		"statement_period": status(r.StatementPeriod.From != nil),
		"opening_balance":  status(r.Summary.OpeningBalance != nil),
		"closing_balance":  status(r.Summary.ClosingBalance != nil),
	}
}

func init() {
	extractCmd.Flags().String("format", string(types.FormatJSON), "output format: json, yaml, csv, xlsx, or text")
	extractCmd.Flags().String("out-dir", "", "directory for one output file per statement (default: stdout)")
	extractCmd.Flags().String("password", "", "password for encrypted statements (default: .secrets/pdf-password)")
	extractCmd.Flags().String("backend", string(types.BackendPDF), "content backend: pdf, fitz, or markitdown")
	extractCmd.Flags().Bool("force", false, "re-extract statements whose output already exists")
	extractCmd.Flags().String("db", "", "template database to record statements in (e.g. db/custom.db)")

	rootCmd.AddCommand(extractCmd)
}

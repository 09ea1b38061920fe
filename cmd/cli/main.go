package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &clientOptions{}

	rootCmd := &cobra.Command{
		Use:           "bankrec-cli",
		Short:         "Bank reconciliation CLI tool",
		Long:          `A command line interface for the bank reconciliation API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("BANKREC_URL", "http://localhost:8080"), "Base URL of the API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("BANKREC_TOKEN"), "Bearer token")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(statementsCmd(opts), banksCmd(opts), tokenCmd(), migrateCmd())
	return rootCmd
}

func statementsCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Reconciliation statement operations",
	}

	var (
		search string
		all    bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List statements, newest number first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/statements"
			if all {
				path = "/api/v1/admin/statements"
			}
			var page statementList
			if err := opts.client().getJSON(cmd.Context(), path, searchQuery(search), &page); err != nil {
				return err
			}
			printStatements(cmd.OutOrStdout(), page)
			return nil
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "Filter by bank name, date or number")
	listCmd.Flags().BoolVar(&all, "all", false, "List every user's statements (admin)")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var s map[string]any
			if err := opts.client().getJSON(cmd.Context(), "/api/v1/statements/"+args[0], nil, &s); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}

	var (
		exportOut    string
		exportSearch string
		exportAll    bool
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Download statements as an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/statements/export.xlsx"
			if exportAll {
				path = "/api/v1/admin/statements/export.xlsx"
			}
			n, err := opts.client().download(cmd.Context(), path, searchQuery(exportSearch), exportOut)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", exportOut, n)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "reconciliations.xlsx", "Output file")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "Filter by bank name, date or number")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every user's statements (admin)")

	var pdfOut string
	pdfCmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download a reconciled statement as a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := pdfOut
			if out == "" {
				out = "reconciliation-" + args[0] + ".pdf"
			}
			n, err := opts.client().download(cmd.Context(), "/api/v1/statements/"+args[0]+"/pdf", nil, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, n)
			return nil
		},
	}
	pdfCmd.Flags().StringVarP(&pdfOut, "out", "o", "", "Output file")

	cmd.AddCommand(listCmd, getCmd, exportCmd, pdfCmd)
	return cmd
}

func banksCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Bank directory operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var banks []bank
			if err := opts.client().getJSON(cmd.Context(), "/api/v1/banks", nil, &banks); err != nil {
				return err
			}
			for _, b := range banks {
				fmt.Fprintln(cmd.OutOrStdout(), b.Label)
			}
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import banks from a workbook of code and name columns (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var result importResult
			if err := opts.client().upload(cmd.Context(), "/api/v1/banks/import", f, &result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d, errors %d\n", result.Imported, result.Skipped, result.Errors)
			return nil
		},
	}

	cmd.AddCommand(listCmd, importCmd)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

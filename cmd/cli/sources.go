package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gobudget/internal/adapter/http/dto"
)

// errDiscrepancies makes the reconcile command exit non-zero on drift.
var errDiscrepancies = errors.New("reconciliation found discrepancies")

func sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Source operations",
	}

	cmd.AddCommand(listSourcesCmd(), reconcileCmd(), recalculateCmd())
	return cmd
}

func listSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sources and their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sources []*dto.SourceResponse
			if err := apiCall(http.MethodGet, "/api/v1/sources", nil, &sources); err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBALANCE")
			for _, s := range sources {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, truncate(s.Name, 24), s.Balance.StringFixed(2))
			}
			return w.Flush()
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [source-id]",
		Short: "Compare stored balances with the transaction history",
		Long: `Reconcile one source, or every source of the user when no id is given.
Balances are never modified. Exits non-zero when any source has drifted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				var result dto.ReconciliationResponse
				if err := apiCall(http.MethodGet, "/api/v1/sources/"+url.PathEscape(args[0])+"/reconcile", nil, &result); err != nil {
					return err
				}
				printJSON(result)
				if !result.IsReconciled {
					return errDiscrepancies
				}
				return nil
			}

			var report dto.ReconciliationReportResponse
			if err := apiCall(http.MethodGet, "/api/v1/sources/reconciliation", nil, &report); err != nil {
				return err
			}
			printReport(&report)
			if len(report.Discrepancies) > 0 {
				return errDiscrepancies
			}
			return nil
		},
	}
}

func printReport(report *dto.ReconciliationReportResponse) {
	fmt.Printf("Reconciled %d of %d sources\n", report.ReconciledSources, report.TotalSources)
	if len(report.Discrepancies) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tRECORDED\tCALCULATED\tDIFFERENCE")
	for _, d := range report.Discrepancies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(d.SourceName, 24),
			d.RecordedBalance.StringFixed(2),
			d.CalculatedBalance.StringFixed(2),
			d.Difference.StringFixed(2),
		)
	}
	_ = w.Flush()
}

func recalculateCmd() *cobra.Command {
	var initialAmount string

	cmd := &cobra.Command{
		Use:   "recalculate <source-id>",
		Short: "Rebuild a source balance from its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if cmd.Flags().Changed("initial-amount") {
				amount, err := decimal.NewFromString(initialAmount)
				if err != nil {
					return fmt.Errorf("invalid initial amount %q: %w", initialAmount, err)
				}
				body = dto.RecalculateRequest{InitialAmount: &amount}
			}

			var result dto.BalanceResponse
			if err := apiCall(http.MethodPost, "/api/v1/sources/"+url.PathEscape(args[0])+"/recalculate", body, &result); err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&initialAmount, "initial-amount", "", "Replace the source's initial amount before recalculating")
	return cmd
}

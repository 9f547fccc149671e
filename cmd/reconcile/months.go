package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/waybill-match/internal/cli"
	"github.com/Veraticus/waybill-match/internal/engine"
)

func monthsCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "months",
		Short: "Match sales of one or more months against the waybill registry",
		Long: `Match every sale dated in the given YYYY-MM periods against the waybill
registry. Periods are processed in the order given and their rows are
concatenated into one sheet. Sales without a readable date are skipped.`,
		Example: `  reconcile months --sales ventas.xlsx --waybills guias.xlsx --output comparacion.xlsx \
    --period 2024-11 --period 2024-12`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.mode = engine.ModeMonths
			opts.progress = progressWriter(cmd)
			return runReconcile(cmd, opts)
		},
	}

	addIOFlags(cmd, &opts)
	cmd.Flags().StringArrayVarP(&opts.periods, "period", "p", nil, "month to reconcile as YYYY-MM (repeatable)")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func addIOFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVarP(&opts.sales, "sales", "s", "", "sales ledger workbook (.xlsx)")
	cmd.Flags().StringVarP(&opts.waybills, "waybills", "w", "", "carrier waybill workbook (.xlsx)")
	cmd.Flags().StringVar(&opts.waybillSheet, "waybill-sheet", "", "waybill sheet (default: first sheet)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output workbook (.xlsx)")
	_ = cmd.MarkFlagRequired("sales")
	_ = cmd.MarkFlagRequired("waybills")
	_ = cmd.MarkFlagRequired("output")
}

// runReconcile wires interrupt handling and the summary around reconcile.
func runReconcile(cmd *cobra.Command, opts runOptions) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := handler.HandleInterrupts(cmd.Context(), opts.output)
	defer stop()

	result, err := reconcile(ctx, viper.GetViper(), opts)
	if err != nil {
		if handler.WasInterrupted() {
			return ctx.Err()
		}
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSummary(result, opts.output))
	return err
}

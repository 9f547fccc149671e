package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/waybill-match/internal/engine"
)

func sheetCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Classify and match one sheet of a dispatch ledger",
		Long: `Classify every row of one dispatch ledger sheet as Forza, Mensajero,
Cargo or Unknown and match it against the waybill registry. Two sheets are
written: the original rows with their classification, and the comparison.`,
		Example: `  reconcile sheet --sales despachos.xlsx --sheet Diciembre --waybills guias.xlsx --output diciembre.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.mode = engine.ModeSheet
			opts.progress = progressWriter(cmd)
			return runReconcile(cmd, opts)
		},
	}

	addIOFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "sales sheet to classify")
	_ = cmd.MarkFlagRequired("sheet")

	return cmd
}

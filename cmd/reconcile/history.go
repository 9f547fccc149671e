package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/waybill-match/internal/cli"
	"github.com/Veraticus/waybill-match/internal/config"
	"github.com/Veraticus/waybill-match/internal/service"
	"github.com/Veraticus/waybill-match/internal/storage"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Long:  "List runs recorded with --archive, newest first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withArchive(cmd.Context(), func(ctx context.Context, store service.Archive) error {
				runs, err := store.ListRuns(ctx, limit)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderHistory(runs))
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 = all)")

	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show an archived run and its unmatched keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(cmd.Context(), func(ctx context.Context, store service.Archive) error {
				id, err := resolveRunID(ctx, store, args[0])
				if err != nil {
					return err
				}
				run, err := store.GetRun(ctx, id)
				if err != nil {
					return err
				}
				rows, err := store.GetRunRows(ctx, id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRunDetail(run, rows))
				return err
			})
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RUN_ID",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(cmd.Context(), func(ctx context.Context, store service.Archive) error {
				id, err := resolveRunID(ctx, store, args[0])
				if err != nil {
					return err
				}
				if err := store.DeleteRun(ctx, id); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted run "+id))
				return err
			})
		},
	}
}

func withArchive(ctx context.Context, fn func(context.Context, service.Archive) error) error {
	store, err := initArchive(ctx, viper.GetString(config.KeyArchivePath))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(ctx, store)
}

// resolveRunID accepts a full run ID or a unique prefix of one, as shown by
// the history table.
func resolveRunID(ctx context.Context, store service.Archive, prefix string) (string, error) {
	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		return "", err
	}

	var found []string
	for _, r := range runs {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			found = append(found, r.ID)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", storage.ErrRunNotFound, prefix)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("run ID prefix %q is ambiguous (%d runs)", prefix, len(found))
	}
}

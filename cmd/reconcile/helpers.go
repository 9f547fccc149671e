package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/waybill-match/internal/config"
	"github.com/Veraticus/waybill-match/internal/service"
	"github.com/Veraticus/waybill-match/internal/storage"
)

// initArchive opens and migrates the run history database.
func initArchive(ctx context.Context, path string) (service.Archive, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(path))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// progressWriter returns where the progress bar draws, nil when disabled.
func progressWriter(cmd *cobra.Command) io.Writer {
	if off, _ := cmd.Flags().GetBool("no-progress"); off {
		return nil
	}
	return cmd.ErrOrStderr()
}

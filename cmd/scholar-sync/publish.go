// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-sync/internal/publish"
	"github.com/pdiddy/scholar-sync/pkg/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Re-render outputs from an existing publications.json",
	Long: `Publish re-renders the Jekyll data file, the HTML preview, and the
optional archive from a previously fetched publications.json, without
touching the network. Useful after changing output paths or when the
preview template is updated.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("in", "", "snapshot to load (default <out-dir>/"+publish.SnapshotFile+")")
	publishCmd.Flags().String("out-dir", "", "directory for publications.json and the preview page (default .)")
	publishCmd.Flags().String("data-dir", "", "directory for the Jekyll data file (default _data)")
	publishCmd.Flags().Bool("archive", false, "also record the snapshot in the SQLite archive")
	publishCmd.Flags().String("archive-path", "", "SQLite archive path (default "+publish.DefaultArchivePath+")")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg := types.PublishConfig{
		OutDir:         stringSetting(cmd, "out-dir", "publish.out_dir", "."),
		DataDir:        stringSetting(cmd, "data-dir", "publish.data_dir", "_data"),
		ArchiveEnabled: boolSetting(cmd, "archive", "publish.archive_enabled"),
		ArchivePath:    stringSetting(cmd, "archive-path", "publish.archive_path", publish.DefaultArchivePath),
	}

	in, _ := cmd.Flags().GetString("in")
	if in == "" {
		in = filepath.Join(cfg.OutDir, publish.SnapshotFile)
	}

	snap, err := publish.ReadSnapshot(in)
	if err != nil {
		return err
	}

	res := publish.Publish(snap, publish.Sinks(cfg), os.Stdout)
	if res.HasFailures() {
		fmt.Fprintf(os.Stdout, "%d sink(s) failed\n", res.Failed)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-sync/internal/publish"
	"github.com/pdiddy/scholar-sync/internal/scholar"
	"github.com/pdiddy/scholar-sync/internal/secrets"
	"github.com/pdiddy/scholar-sync/pkg/types"
)

const (
	// defaultAuthorID is the profile this tool was built to track.
	defaultAuthorID = "B96GkdgAAAAJ"

	defaultTimeout   = 60 * time.Second
	defaultDelayMin  = 1 * time.Second
	defaultDelayMax  = 3 * time.Second
	defaultUserAgent = "scholar-sync/0.1"
)

var syncCmd = &cobra.Command{
	Use:   "sync [author-id]",
	Short: "Fetch the author profile and publish all outputs",
	Long: `Sync fetches the author's citation metrics and publication list from the
profile provider, expands each publication's details (with a politeness
delay between requests), sorts by year descending, and writes all output
sinks.

A failed author lookup aborts the run with a non-zero exit and writes
nothing. A failed detail expansion drops that one publication; a failed
sink is reported and the remaining sinks are still attempted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("author", "", "author profile ID (default from config, then "+defaultAuthorID+")")
	syncCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	syncCmd.Flags().Duration("delay-min", 0, "minimum politeness delay between detail requests (default 1s)")
	syncCmd.Flags().Duration("delay-max", 0, "maximum politeness delay between detail requests (default 3s)")
	syncCmd.Flags().Int("max-publications", 0, "cap on publications to expand (0 = all)")
	syncCmd.Flags().String("out-dir", "", "directory for publications.json and the preview page (default .)")
	syncCmd.Flags().String("data-dir", "", "directory for the Jekyll data file (default _data)")
	syncCmd.Flags().Bool("archive", false, "also record this run in the SQLite archive")
	syncCmd.Flags().String("archive-path", "", "SQLite archive path (default "+publish.DefaultArchivePath+")")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := buildConfig(cmd)
	if len(args) == 1 {
		cfg.Fetch.AuthorID = args[0]
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	provider := &scholar.HTTPProvider{
		Client:    client,
		APIKey:    cfg.Fetch.APIKey,
		UserAgent: cfg.Fetch.UserAgent,
	}

	fmt.Fprintf(os.Stdout, "Fetching publications for author %s...\n", cfg.Fetch.AuthorID)

	snap, report, err := scholar.FetchProfile(cmd.Context(), provider, cfg.Fetch, os.Stdout)
	if err != nil {
		// Nothing has been written; the failure propagates to a non-zero exit.
		return err
	}

	res := publish.Publish(snap, publish.Sinks(cfg.Publish), os.Stdout)

	fmt.Fprintf(os.Stdout, "\nTotal citations: %d\n", snap.Stats.Citations)
	fmt.Fprintf(os.Stdout, "h-index: %d\n", snap.Stats.HIndex)
	fmt.Fprintf(os.Stdout, "i10-index: %d\n", snap.Stats.I10Index)
	fmt.Fprintf(os.Stdout, "Publications processed: %d (%d skipped)\n", report.Filled, report.Skipped)
	fmt.Fprintf(os.Stdout, "Last updated: %s\n", snap.LastUpdated)
	if res.HasFailures() {
		fmt.Fprintf(os.Stdout, "%d sink(s) failed\n", res.Failed)
	}

	// Per-publication and per-sink failures are best-effort: reported above,
	// but the run still counts as a success.
	return nil
}

// buildConfig resolves settings with the usual precedence: flag, then
// config file / environment, then default. The provider API key may also
// come from .secrets/.
func buildConfig(cmd *cobra.Command) types.Config {
	var cfg types.Config

	cfg.Fetch.AuthorID = stringSetting(cmd, "author", "fetch.author_id", defaultAuthorID)
	cfg.Fetch.Timeout = durationSetting(cmd, "timeout", "fetch.timeout", defaultTimeout)
	cfg.Fetch.DelayMin = durationSetting(cmd, "delay-min", "fetch.delay_min", defaultDelayMin)
	cfg.Fetch.DelayMax = durationSetting(cmd, "delay-max", "fetch.delay_max", defaultDelayMax)
	cfg.Fetch.MaxPublications = intSetting(cmd, "max-publications", "fetch.max_publications", 0)
	cfg.Fetch.RequestsPerSecond = viper.GetFloat64("fetch.requests_per_second")
	cfg.Fetch.UserAgent = defaultUserAgent
	cfg.Fetch.APIKey = secrets.Get(loadedSecrets, secrets.ScholarAPIKey, viper.GetString("fetch.api_key"))

	cfg.Publish.OutDir = stringSetting(cmd, "out-dir", "publish.out_dir", ".")
	cfg.Publish.DataDir = stringSetting(cmd, "data-dir", "publish.data_dir", "_data")
	cfg.Publish.ArchiveEnabled = boolSetting(cmd, "archive", "publish.archive_enabled")
	cfg.Publish.ArchivePath = stringSetting(cmd, "archive-path", "publish.archive_path", publish.DefaultArchivePath)

	return cfg
}

func stringSetting(cmd *cobra.Command, flag, key, def string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}

func durationSetting(cmd *cobra.Command, flag, key string, def time.Duration) time.Duration {
	if v, _ := cmd.Flags().GetDuration(flag); v != 0 {
		return v
	}
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return def
}

func intSetting(cmd *cobra.Command, flag, key string, def int) int {
	if v, _ := cmd.Flags().GetInt(flag); v != 0 {
		return v
	}
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return def
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if v, _ := cmd.Flags().GetBool(flag); v {
		return true
	}
	return viper.GetBool(key)
}

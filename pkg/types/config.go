package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-sync/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the profile fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// AuthorID is the provider-assigned author profile identifier.
	AuthorID string `json:"author_id" yaml:"author_id"`

	// APIKey authenticates against the profile provider, if it requires one.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// DelayMin and DelayMax bound the randomized politeness delay between
	// per-publication detail requests (defaults 1s and 3s). The delay is a
	// courtesy to the provider, not a correctness requirement.
	DelayMin time.Duration `json:"delay_min" yaml:"delay_min"`
	DelayMax time.Duration `json:"delay_max" yaml:"delay_max"`

	// RequestsPerSecond caps the overall request rate against the provider
	// (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxPublications caps how many publications are expanded; 0 means all.
	MaxPublications int `json:"max_publications" yaml:"max_publications"`
}

// PublishConfig holds output paths and toggles for the snapshot sinks.
type PublishConfig struct {
	// OutDir is the directory for publications.json and
	// publications_preview.html (default ".").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// DataDir is the directory for the Jekyll data file (default "_data").
	// Created if absent.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ArchiveEnabled turns on the SQLite archive sink.
	ArchiveEnabled bool `json:"archive_enabled" yaml:"archive_enabled"`

	// ArchivePath is the SQLite database path (default "scholar-sync.db").
	ArchivePath string `json:"archive_path" yaml:"archive_path"`
}

// Config groups all stage configurations.
type Config struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Publish PublishConfig `json:"publish" yaml:"publish"`
}

package config

import (
	"time"

	"github.com/gaze-network/royalty-registry/internal/postgres"
)

// Unknown asset policies of RoyaltyInfo
const (
	UnknownAssetNotFound = "not_found" // fail with errs.NotFound
	UnknownAssetZero     = "zero"      // answer zero royalty to the zero address
)

// Notification policies of ReceivedRoyalties
const (
	NotificationPolicyOpen      = "open"
	NotificationPolicyAllowlist = "allowlist"
)

type Config struct {
	Database     string          `mapstructure:"database"` // Database to store royalty data. e.g. `postgres` | `memory`
	Postgres     postgres.Config `mapstructure:"postgres"`
	UnknownAsset string          `mapstructure:"unknown_asset"` // Unknown asset policy of royalty queries. e.g. `not_found` | `zero`

	// Mutable allows the asset creator to update the royalty after creation.
	Mutable bool `mapstructure:"mutable"`

	APIHandlers  []string           `mapstructure:"api_handlers"` // List of API handlers to enable. (e.g. `http`)
	Notification NotificationConfig `mapstructure:"notification"`
	Archive      ArchiveConfig      `mapstructure:"archive"`
}

type NotificationConfig struct {
	Policy string `mapstructure:"policy"` // `open` | `allowlist`

	// AllowedNotifiers is the list of caller addresses allowed to report payments when policy is `allowlist`.
	AllowedNotifiers []string `mapstructure:"allowed_notifiers"`
}

type ArchiveConfig struct {
	// Enabled runs the periodic archive worker. The `export` command works regardless.
	Enabled bool `mapstructure:"enabled"`

	// Output is the local directory of archive files. Ignored when S3 bucket is set.
	Output   string        `mapstructure:"output"`
	Interval time.Duration `mapstructure:"interval"`
	S3       S3Config      `mapstructure:"s3"`
}

type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"`
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"` // custom endpoint for S3 compatible storages
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

func Default() Config {
	return Config{
		Database:     "postgres",
		UnknownAsset: UnknownAssetNotFound,
		APIHandlers:  []string{"http"},
		Notification: NotificationConfig{
			Policy: NotificationPolicyOpen,
		},
		Archive: ArchiveConfig{
			Output:   "./archive",
			Interval: time.Hour,
		},
	}
}

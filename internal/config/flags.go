package config

import (
	"flag"
	"fmt"
	"time"
)

// parseFlags parses the client command-line flags from args.
//
// Flags:
//
//	-a remote API address
//	-d local database file
//	-c/-config json file path with configs
//	-token bearer token
//	-passphrase local key passphrase
//	-account-keys account key ring file
//	-request-timeout request timeout (e.g., "15s")
//	-page-size page size of paginated listings
//	-i sync interval (e.g., "30s")
//	-share-concurrency shares synchronized in parallel
//	-max-event-pages event pages drained per share per pass
//	-reachability-interval remote host probe interval
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-pass-sync", flag.ContinueOnError)

	var cfg StructuredConfig

	fs.StringVar(&cfg.Adapter.HTTPAddress, "a", "", "Remote API address")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Local database file")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.Adapter.Token, "token", "", "Bearer token")
	fs.StringVar(&cfg.App.LocalKeyPassphrase, "passphrase", "", "Local key passphrase")
	fs.StringVar(&cfg.App.AccountKeyFile, "account-keys", "", "Account key ring file")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.IntVar(&cfg.Adapter.PageSize, "page-size", 0, "Page size of paginated listings")
	fs.DurationVar(&cfg.Workers.SyncInterval, "i", 0, "Sync interval (e.g., 30s)")
	fs.IntVar(&cfg.Workers.ShareConcurrency, "share-concurrency", 0, "Shares synchronized in parallel")
	fs.IntVar(&cfg.Workers.MaxEventPages, "max-event-pages", 0, "Event pages drained per share per pass")
	fs.DurationVar(&cfg.Workers.ReachabilityInterval, "reachability-interval", time.Duration(0), "Remote host probe interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &cfg, nil
}

package config

import (
	"path"
	"time"

	"github.com/adrg/xdg"
	"github.com/scinet/mailris"
)

// Config for the mailris tools. Flags override the defaults.
type Config struct {
	// DataDir is the generic data dir for all mailris tools.
	DataDir string
	// ExportDir is where exports are written when no explicit output path
	// is given. Recommended to be a subdirectory of DataDir.
	ExportDir string
	// Folders restricts aggregation to these mailbox folders, empty means
	// all.
	Folders []string
	// MaxRetries and Timeout apply to fetching message batches over HTTP.
	MaxRetries int
	Timeout    time.Duration
}

// Default returns a config rooted under the XDG data home.
func Default() *Config {
	dataDir := path.Join(xdg.DataHome, mailris.AppName)
	return &Config{
		DataDir:    dataDir,
		ExportDir:  path.Join(dataDir, "exports"),
		MaxRetries: 3,
		Timeout:    time.Hour,
	}
}

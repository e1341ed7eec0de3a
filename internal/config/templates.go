package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Journal Configuration

[journal]
# Commission charged per unit. When positive, this supersedes the flat
# commission recorded on individual trades.
commission_per_unit = 0.0
# Display timezone offset in hours from UTC (fractional hours allowed,
# e.g. 5.5). Reports and time-of-day filters use this wall clock.
timezone_offset_hours = 0.0
# Path to the journal database (defaults next to this file)
# database_path = "/path/to/journal.db"

# Instrument point-value multipliers by symbol. Unlisted symbols use 1.
# [journal.multipliers]
# ES = 50.0
# NQ = 20.0

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Time format
time_format = "15:04"
`

// createTemplateConfig writes a starter config.toml so a first run has
// something to edit.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}

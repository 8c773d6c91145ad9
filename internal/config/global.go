// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride lets tests redirect the config directory.
// os.UserHomeDir() doesn't reliably respect the HOME environment variable on
// all platforms, so tests set this instead.
var configDirOverride string

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears all overrides. Call from test cleanup.
func Reset() {
	configDirOverride = ""
}

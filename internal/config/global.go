// SPDX-License-Identifier: MPL-2.0

package config

// configFilePathOverride allows the --config flag (and tests) to pin the
// config file instead of looking it up in the repository root.
var configFilePathOverride string

// SetConfigFilePathOverride sets a custom config file path.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configFilePathOverride = ""
}

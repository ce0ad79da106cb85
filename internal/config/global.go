// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects config lookup away from the user's real
// home. Tests set it because os.UserHomeDir ignores a faked HOME on
// some platforms.
var configDirOverride string

// SetConfigDirOverride points config lookup at dir. Test-only.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the override. Call from test cleanup.
func Reset() {
	configDirOverride = ""
}

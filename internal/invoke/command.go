// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"fmt"
	"strings"

	"hoards-cli/internal/catalog"
)

// SafeCommand is a fully planned package-manager invocation. Program
// and Args go straight to the process API; Display is the equivalent
// human-readable command line.
type SafeCommand struct {
	Program string
	Args    []string
	Display string
}

func newSafeCommand(program string, args ...string) *SafeCommand {
	return &SafeCommand{
		Program: program,
		Args:    args,
		Display: program + " " + strings.Join(args, " "),
	}
}

// NeedsSudo reports whether the plan escalates privileges.
func (c *SafeCommand) NeedsSudo() bool {
	return c.Program == "sudo"
}

// InstallCommand plans an install for the given source. Version is
// optional; managers that pin versions get name@v (name==v for pip),
// the rest ignore it. Sources without a managed install path (manual,
// flatpak-less hosts, unknown) yield (nil, nil).
func InstallCommand(name string, source catalog.Source, version string) (*SafeCommand, error) {
	if err := ValidatePackageName(name); err != nil {
		return nil, err
	}
	if version != "" {
		if err := ValidateVersion(version); err != nil {
			return nil, err
		}
	}

	switch source {
	case catalog.SourceCargo:
		if version != "" {
			return newSafeCommand("cargo", "install", name+"@"+version), nil
		}
		return newSafeCommand("cargo", "install", name), nil
	case catalog.SourcePip:
		if version != "" {
			return newSafeCommand("pip", "install", name+"=="+version), nil
		}
		return newSafeCommand("pip", "install", "--upgrade", name), nil
	case catalog.SourceNpm:
		if version != "" {
			return newSafeCommand("npm", "install", "-g", name+"@"+version), nil
		}
		return newSafeCommand("npm", "install", "-g", name), nil
	case catalog.SourceApt:
		return newSafeCommand("sudo", "apt", "install", "-y", name), nil
	case catalog.SourceBrew:
		if version != "" {
			return newSafeCommand("brew", "install", name+"@"+version), nil
		}
		return newSafeCommand("brew", "install", name), nil
	case catalog.SourceSnap:
		return newSafeCommand("sudo", "snap", "install", name), nil
	case catalog.SourceFlatpak:
		return newSafeCommand("flatpak", "install", "-y", name), nil
	default:
		return nil, nil
	}
}

// UninstallCommand plans a removal for the given source. Unknown and
// manual sources yield (nil, nil).
func UninstallCommand(name string, source catalog.Source) (*SafeCommand, error) {
	if err := ValidatePackageName(name); err != nil {
		return nil, err
	}

	switch source {
	case catalog.SourceCargo:
		return newSafeCommand("cargo", "uninstall", name), nil
	case catalog.SourcePip:
		return newSafeCommand("pip", "uninstall", "-y", name), nil
	case catalog.SourceNpm:
		return newSafeCommand("npm", "uninstall", "-g", name), nil
	case catalog.SourceApt:
		return newSafeCommand("sudo", "apt", "remove", "-y", name), nil
	case catalog.SourceBrew:
		return newSafeCommand("brew", "uninstall", name), nil
	case catalog.SourceSnap:
		return newSafeCommand("sudo", "snap", "remove", name), nil
	case catalog.SourceFlatpak:
		return newSafeCommand("flatpak", "uninstall", "-y", name), nil
	default:
		return nil, nil
	}
}

// DisplayInstallCommand renders the command string stored on catalog
// rows, without validating. Unknown sources yield "".
func DisplayInstallCommand(name string, source catalog.Source, version string) string {
	switch source {
	case catalog.SourceCargo:
		if version != "" {
			return fmt.Sprintf("cargo install %s@%s", name, version)
		}
		return "cargo install " + name
	case catalog.SourcePip:
		if version != "" {
			return fmt.Sprintf("pip install %s==%s", name, version)
		}
		return "pip install --upgrade " + name
	case catalog.SourceNpm:
		if version != "" {
			return fmt.Sprintf("npm install -g %s@%s", name, version)
		}
		return "npm install -g " + name
	case catalog.SourceApt:
		return "sudo apt install -y " + name
	case catalog.SourceBrew:
		if version != "" {
			return fmt.Sprintf("brew install %s@%s", name, version)
		}
		return "brew install " + name
	case catalog.SourceSnap:
		return "sudo snap install " + name
	case catalog.SourceFlatpak:
		return "flatpak install -y " + name
	default:
		return ""
	}
}

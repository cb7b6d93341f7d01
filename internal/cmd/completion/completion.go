// Package completion generates shell completion scripts and installs them
// where each shell looks for them.
package completion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/errors"
)

// Supported shells.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// Installable lists the shells Install can place a script for.
var Installable = []string{ShellBash, ShellZsh, ShellFish}

const program = "agentsgen"

// Locator resolves completion directories. BrewPrefix is empty when
// Homebrew is not installed.
type Locator struct {
	Home       string
	BrewPrefix string
}

// NewLocator inspects HOMEBREW_PREFIX, the usual Homebrew prefixes and the
// user's home directory.
func NewLocator(fs afero.Fs) (Locator, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Locator{}, errors.WrapIO("resolve", "home directory", err)
	}
	loc := Locator{Home: home, BrewPrefix: os.Getenv("HOMEBREW_PREFIX")}
	if loc.BrewPrefix == "" {
		for _, prefix := range []string{"/opt/homebrew", "/usr/local"} {
			if ok, _ := afero.Exists(fs, filepath.Join(prefix, "bin", "brew")); ok {
				loc.BrewPrefix = prefix
				break
			}
		}
	}
	return loc, nil
}

// Path returns where the completion script for shell is installed.
func (l Locator) Path(shell string) (string, error) {
	brew := l.BrewPrefix != ""
	switch shell {
	case ShellBash:
		if brew {
			return filepath.Join(l.BrewPrefix, "etc", "bash_completion.d", program), nil
		}
		return filepath.Join(l.Home, ".bash_completion.d", program), nil
	case ShellZsh:
		if brew {
			return filepath.Join(l.BrewPrefix, "share", "zsh", "site-functions", "_"+program), nil
		}
		return filepath.Join(l.Home, ".zsh", "completions", "_"+program), nil
	case ShellFish:
		if brew {
			return filepath.Join(l.BrewPrefix, "share", "fish", "vendor_completions.d", program+".fish"), nil
		}
		return filepath.Join(l.Home, ".config", "fish", "completions", program+".fish"), nil
	}
	return "", errors.NewValidationError("shell", shell, "unsupported shell for install")
}

// Generate writes the completion script for shell to w.
func Generate(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case ShellBash:
		return root.GenBashCompletionV2(w, true)
	case ShellZsh:
		return root.GenZshCompletion(w)
	case ShellFish:
		return root.GenFishCompletion(w, true)
	case ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return errors.NewValidationError("shell", shell, "unsupported shell")
}

// Install writes the completion script for shell and returns its path.
func Install(fs afero.Fs, root *cobra.Command, loc Locator, shell string) (string, error) {
	target, err := loc.Path(shell)
	if err != nil {
		return "", err
	}
	if err := fs.MkdirAll(filepath.Dir(target), constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", filepath.Dir(target), err)
	}

	f, err := fs.Create(target)
	if err != nil {
		return "", errors.WrapIO("create", target, err)
	}
	if err := Generate(root, shell, f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("generate %s completion: %w", shell, err)
	}
	if err := f.Close(); err != nil {
		return "", errors.WrapIO("close", target, err)
	}
	return target, nil
}

// Uninstall removes the completion script for shell from the install
// location and the common system locations. It returns the removed paths;
// nothing to remove is not an error.
func Uninstall(fs afero.Fs, loc Locator, shell string) ([]string, error) {
	target, err := loc.Path(shell)
	if err != nil {
		return nil, err
	}

	var removed []string
	seen := map[string]bool{}
	for _, p := range append([]string{target}, commonPaths(loc, shell)...) {
		if seen[p] {
			continue
		}
		seen[p] = true
		info, err := fs.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		if err := fs.Remove(p); err != nil {
			return removed, errors.WrapIO("remove", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}

func commonPaths(loc Locator, shell string) []string {
	switch shell {
	case ShellBash:
		return []string{
			"/etc/bash_completion.d/" + program,
			"/usr/local/etc/bash_completion.d/" + program,
			"/opt/homebrew/etc/bash_completion.d/" + program,
			"/usr/share/bash-completion/completions/" + program,
			filepath.Join(loc.Home, ".bash_completion.d", program),
		}
	case ShellZsh:
		return []string{
			"/usr/local/share/zsh/site-functions/_" + program,
			"/opt/homebrew/share/zsh/site-functions/_" + program,
			filepath.Join(loc.Home, ".zsh", "completions", "_"+program),
		}
	case ShellFish:
		return []string{
			filepath.Join(loc.Home, ".config", "fish", "completions", program+".fish"),
			"/usr/share/fish/completions/" + program + ".fish",
			"/usr/local/share/fish/completions/" + program + ".fish",
			"/opt/homebrew/share/fish/vendor_completions.d/" + program + ".fish",
		}
	}
	return nil
}

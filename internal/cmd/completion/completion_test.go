package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{Use: "agentsgen"}
	root.AddCommand(&cobra.Command{Use: "update", Run: func(*cobra.Command, []string) {}})
	return root
}

func TestLocatorPath(t *testing.T) {
	home := Locator{Home: "/home/dev"}
	brew := Locator{Home: "/home/dev", BrewPrefix: "/opt/homebrew"}

	tests := []struct {
		loc   Locator
		shell string
		want  string
	}{
		{home, ShellBash, "/home/dev/.bash_completion.d/agentsgen"},
		{home, ShellZsh, "/home/dev/.zsh/completions/_agentsgen"},
		{home, ShellFish, "/home/dev/.config/fish/completions/agentsgen.fish"},
		{brew, ShellBash, "/opt/homebrew/etc/bash_completion.d/agentsgen"},
		{brew, ShellZsh, "/opt/homebrew/share/zsh/site-functions/_agentsgen"},
		{brew, ShellFish, "/opt/homebrew/share/fish/vendor_completions.d/agentsgen.fish"},
	}
	for _, tt := range tests {
		got, err := tt.loc.Path(tt.shell)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := home.Path(ShellPowerShell)
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	for _, shell := range []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell} {
		var buf bytes.Buffer
		require.NoError(t, Generate(rootCmd(), shell, &buf), shell)
		assert.Contains(t, buf.String(), "agentsgen", shell)
	}
	assert.Error(t, Generate(rootCmd(), "tcsh", &bytes.Buffer{}))
}

func TestInstallUninstall(t *testing.T) {
	fs := afero.NewMemMapFs()
	loc := Locator{Home: "/home/dev"}

	path, err := Install(fs, rootCmd(), loc, ShellZsh)
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/.zsh/completions/_agentsgen", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#compdef agentsgen")

	removed, err := Uninstall(fs, loc, ShellZsh)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, removed)

	removed, err = Uninstall(fs, loc, ShellZsh)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

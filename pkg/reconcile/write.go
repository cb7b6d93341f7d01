package reconcile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/errors"
)

// GeneratedSibling returns the path written instead of a target that has no
// markers: AGENTS.md and RUNBOOK.md map to their fixed generated names, any
// other file gets suffix inserted before its extension.
func GeneratedSibling(path, suffix string) string {
	if suffix == "" {
		suffix = constants.DefaultGeneratedSuffix
	}
	dir, name := filepath.Split(path)
	if suffix == constants.DefaultGeneratedSuffix {
		switch name {
		case constants.AgentsFilename:
			return filepath.Join(dir, constants.AgentsGeneratedFilename)
		case constants.RunbookFilename:
			return filepath.Join(dir, constants.RunbookGeneratedFilename)
		}
	}
	ext := filepath.Ext(name)
	if ext == name {
		// dotfiles such as ".env" have no stem
		ext = ""
	}
	return filepath.Join(dir, strings.TrimSuffix(name, ext)+suffix+ext)
}

// WriteAtomic writes data to path by writing a temp file in the same
// directory and renaming it over the target. Parent directories are created.
// An existing file keeps its permissions.
func WriteAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.NewIOError("mkdir", dir, err)
	}

	mode := os.FileMode(constants.FilePermissions)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewIOError("create", path, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = fs.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.NewIOError("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.NewIOError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.NewIOError("write", path, err)
	}
	if err := fs.Chmod(tmpName, mode); err != nil {
		cleanup()
		return errors.NewIOError("write", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.NewIOError("rename", path, err)
	}
	return nil
}

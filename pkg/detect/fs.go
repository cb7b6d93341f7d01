package detect

import (
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/constants"
)

// repo is a read-only view of the repository being inspected.
type repo struct {
	fs   afero.Fs
	root string
}

func (r repo) path(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

func (r repo) isFile(rel string) bool {
	info, err := r.fs.Stat(r.path(rel))
	return err == nil && info.Mode().IsRegular()
}

func (r repo) isDir(rel string) bool {
	ok, err := afero.IsDir(r.fs, r.path(rel))
	return err == nil && ok
}

// read returns at most MaxDetectReadBytes of a file. Missing files read as "".
func (r repo) read(rel string) string {
	f, err := r.fs.Open(r.path(rel))
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, constants.MaxDetectReadBytes))
	if err != nil {
		return ""
	}
	return string(data)
}

// existing filters names down to the regular files present at the root.
func (r repo) existing(names ...string) []string {
	var out []string
	for _, n := range names {
		if r.isFile(n) {
			out = append(out, n)
		}
	}
	return out
}

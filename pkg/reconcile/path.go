package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/errors"
)

const maxLinkHops = 255

// resolve joins p onto the root and rejects results outside it, both as
// written and after following symlinks.
func (r *Reconciler) resolve(p string) (string, error) {
	joined := p
	if !filepath.IsAbs(p) {
		joined = filepath.Join(r.root, p)
	}
	joined = filepath.Clean(joined)
	if !within(r.root, joined) {
		return joined, errors.NewPathError(joined, r.root)
	}

	realRoot, err := realPath(r.fs, r.root)
	if err != nil {
		return joined, errors.NewIOError("resolve", r.root, err)
	}
	realTarget, err := realPath(r.fs, joined)
	if err != nil {
		return joined, errors.NewIOError("resolve", joined, err)
	}
	if !within(realRoot, realTarget) {
		return joined, errors.NewPathError(joined, r.root)
	}
	return joined, nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// realPath follows every symlink along p. Components from the first one that
// does not exist onward are appended as written. On a filesystem that cannot
// read links, p is returned cleaned.
func realPath(fs afero.Fs, p string) (string, error) {
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return filepath.Clean(p), nil
	}
	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return filepath.Clean(p), nil
	}
	if _, isOS := fs.(*afero.OsFs); isOS && !filepath.IsAbs(p) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		p = abs
	}

	p = filepath.Clean(p)
	resolved, rest := splitRoot(p)
	pending := components(rest)
	hops := 0
	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]
		switch name {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, linked, err := lstater.LstatIfPossible(next)
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.Join(append([]string{next}, pending...)...), nil
			}
			return "", err
		}
		if !linked || info.Mode()&os.ModeSymlink == 0 {
			resolved = next
			continue
		}

		if hops++; hops > maxLinkHops {
			return "", fmt.Errorf("%s: too many levels of symbolic links", p)
		}
		target, err := reader.ReadlinkIfPossible(next)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			resolved, target = splitRoot(filepath.Clean(target))
		}
		pending = append(components(target), pending...)
	}
	if resolved == "" {
		return ".", nil
	}
	return resolved, nil
}

// splitRoot separates the volume and leading separator of an absolute path
// from the rest. A relative path has an empty root.
func splitRoot(p string) (root, rest string) {
	if !filepath.IsAbs(p) {
		return "", p
	}
	vol := filepath.VolumeName(p)
	return vol + string(filepath.Separator), strings.TrimLeft(p[len(vol):], `/\`)
}

func components(p string) []string {
	return strings.FieldsFunc(p, func(c rune) bool {
		return c < 0x80 && os.IsPathSeparator(uint8(c))
	})
}

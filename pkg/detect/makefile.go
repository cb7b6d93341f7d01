package detect

import (
	"regexp"
	"slices"
	"strings"
)

var makeTarget = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9_.\-]*)\s*:`)

// MakefileInfo lists the targets of the root Makefile.
type MakefileInfo struct {
	Path    string
	Targets []string
}

// HasTarget reports whether the Makefile defines target.
func (m *MakefileInfo) HasTarget(target string) bool {
	return slices.Contains(m.Targets, target)
}

func detectMakefile(r repo) *MakefileInfo {
	for _, name := range []string{"Makefile", "makefile", "GNUmakefile"} {
		if !r.isFile(name) {
			continue
		}
		return &MakefileInfo{Path: name, Targets: parseTargets(r.read(name))}
	}
	return nil
}

// parseTargets returns the sorted explicit targets of a Makefile. Variable
// assignments (NAME := value), special targets and pattern rules are skipped.
func parseTargets(text string) []string {
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		loc := makeTarget.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		if loc[1] < len(line) && line[loc[1]] == '=' {
			continue
		}
		seen[line[loc[2]:loc[3]]] = true
	}
	targets := make([]string, 0, len(seen))
	for t := range seen {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

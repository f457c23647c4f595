package git

import (
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// StatusEntry is one line of `git status --porcelain` output.
type StatusEntry struct {
	Code    string // two-letter XY status, e.g. " M", "A ", "??"
	Path    string
	OldPath string // For renames and copies
	Line    string // the raw line
}

// parsePorcelain parses porcelain v1 output. Blank lines are skipped.
func parsePorcelain(out string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 4 {
			continue
		}
		entry := StatusEntry{Code: line[:2], Line: line}
		path := line[3:]
		if entry.Code[0] == 'R' || entry.Code[0] == 'C' {
			if old, newPath, ok := strings.Cut(path, " -> "); ok {
				entry.OldPath = unquotePath(old)
				path = newPath
			}
		}
		entry.Path = unquotePath(path)
		entries = append(entries, entry)
	}
	return entries
}

// unquotePath undoes git's C-style quoting of unusual paths.
func unquotePath(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}

// filterIgnored drops entries whose path matches one of the glob patterns.
func filterIgnored(entries []StatusEntry, patterns []string) []StatusEntry {
	if len(patterns) == 0 {
		return entries
	}
	kept := entries[:0:0]
	for _, e := range entries {
		if !matchesAny(e.Path, patterns) {
			kept = append(kept, e)
		}
	}
	return kept
}

func matchesAny(path string, patterns []string) bool {
	path = strings.ReplaceAll(path, "\\", "/")
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

func joinLines(entries []StatusEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line
	}
	return strings.Join(lines, "\n")
}

package git

import (
	"fmt"
	"strings"
)

// TagName is the canonical tag derived from a version identifier.
type TagName string

// TagNameFor derives the canonical tag for version. Every step that converts
// a version to a ref goes through here.
func TagNameFor(version string) TagName {
	return TagName("v" + version)
}

// Ref returns the fully qualified tag ref, e.g. refs/tags/v1.0.
func (t TagName) Ref() string {
	return "refs/tags/" + string(t)
}

func (t TagName) String() string {
	return string(t)
}

// Revision is a full object name as printed by rev-parse.
type Revision string

// ParseRevision validates rev-parse output. Empty, whitespace-only and
// non-hex output is rejected.
func ParseRevision(out string) (Revision, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return "", fmt.Errorf("empty revision")
	}
	if len(s) != 40 && len(s) != 64 {
		return "", fmt.Errorf("malformed revision %q: unexpected length %d", s, len(s))
	}
	for _, c := range s {
		if !isHex(c) {
			return "", fmt.Errorf("malformed revision %q: not hexadecimal", s)
		}
	}
	return Revision(strings.ToLower(s)), nil
}

func (r Revision) String() string {
	return string(r)
}

// Short returns the abbreviated form used in console output.
func (r Revision) Short() string {
	if len(r) > 12 {
		return string(r[:12])
	}
	return string(r)
}

func isHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

const branchRefPrefix = "refs/heads/"

// Branch is the symbolic ref HEAD points at.
type Branch struct {
	Ref string // e.g. refs/heads/main
}

// ParseBranch validates symbolic-ref output.
func ParseBranch(out string) (Branch, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return Branch{}, fmt.Errorf("empty branch ref")
	}
	if strings.ContainsAny(s, " \t\n") {
		return Branch{}, fmt.Errorf("malformed branch ref %q", s)
	}
	if !strings.HasPrefix(s, branchRefPrefix) || len(s) == len(branchRefPrefix) {
		return Branch{}, fmt.Errorf("%q is not a branch ref", s)
	}
	return Branch{Ref: s}, nil
}

// Short returns the branch name without refs/heads/.
func (b Branch) Short() string {
	return strings.TrimPrefix(b.Ref, branchRefPrefix)
}

func (b Branch) String() string {
	return b.Ref
}

// tagListed reports whether tag-listing output contains tag on a line of its
// own. Listing patterns are globs, so output is compared line by line.
func tagListed(out string, tag TagName) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == string(tag) {
			return true
		}
	}
	return false
}

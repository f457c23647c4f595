package git

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func genVersion() *rapid.Generator[string] {
	return rapid.StringMatching(`[0-9]{1,3}(\.[0-9]{1,3}){0,3}(-(rc|pre|post)[0-9]{0,2})?`)
}

// The same version must always map to the same tag, and that tag must be
// what every range query and existence check sees.
func TestTagNameFor_Consistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := genVersion().Draw(t, "version")

		first := TagNameFor(version)
		second := TagNameFor(version)
		if first != second {
			t.Fatalf("TagNameFor(%q) not deterministic: %q vs %q", version, first, second)
		}
		if string(first) != "v"+version {
			t.Fatalf("TagNameFor(%q) = %q", version, first)
		}
		if first.Ref() != "refs/tags/"+string(first) {
			t.Fatalf("Ref() = %q", first.Ref())
		}
		if !tagListed(string(first)+"\n", TagNameFor(version)) {
			t.Fatalf("tag %q not recognized in its own listing", first)
		}
	})
}

func TestTagListed_OnlyExactMatches(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := genVersion().Draw(t, "version")
		suffix := rapid.StringMatching(`[-.a-z0-9]{1,6}`).Draw(t, "suffix")

		tag := TagNameFor(version)
		listing := strings.Join([]string{string(tag) + suffix, "x" + string(tag)}, "\n")
		if tagListed(listing, tag) {
			t.Fatalf("tagListed(%q, %q) = true", listing, tag)
		}
		if !tagListed(listing+"\n"+string(tag), tag) {
			t.Fatalf("exact tag not found once appended")
		}
	})
}

func TestParseRevision_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hex := rapid.StringMatching(`[0-9a-f]{40}`).Draw(t, "sha")
		pad := rapid.StringMatching(`[ \t\n]{0,3}`).Draw(t, "pad")

		rev, err := ParseRevision(pad + hex + pad)
		if err != nil {
			t.Fatalf("ParseRevision: %v", err)
		}
		if rev.String() != hex {
			t.Fatalf("rev = %q, want %q", rev, hex)
		}
	})
}

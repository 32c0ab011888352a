package crawl

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/rangetable"
)

// UntitledPage is the title recorded for pages whose title is empty
// after cleaning.
const UntitledPage = "Untitled"

// invisible holds soft hyphen, zero-width space, byte order mark, word
// joiner and no-break space.
var invisible = runes.In(rangetable.New('\u00AD', '\u200B', '\uFEFF', '\u2060', '\u00A0'))

// CleanText removes invisible and non-breaking characters from text.
func CleanText(text string) string {
	out, _, err := transform.String(runes.Remove(invisible), text)
	if err != nil {
		return text
	}
	return out
}

// CleanTitle replaces invisible characters with spaces, removes every
// site suffix and trims the result. An empty title becomes UntitledPage.
func CleanTitle(title string, suffixes []string) string {
	out := spaceInvisible(title)
	for _, suffix := range suffixes {
		if suffix = spaceInvisible(suffix); suffix == "" {
			continue
		}
		out = strings.ReplaceAll(out, suffix, "")
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return UntitledPage
	}
	return out
}

func spaceInvisible(s string) string {
	t := runes.Map(func(r rune) rune {
		if invisible.Contains(r) {
			return ' '
		}
		return r
	})
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

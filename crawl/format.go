package crawl

import (
	"fmt"

	"github.com/fwojciec/docassist"
)

// TruncateURL shortens url to at most maxLen runes for display. The tail is
// kept because it names the page; the cut is marked with "...".
func TruncateURL(url string, maxLen int) string {
	r := []rune(url)
	switch {
	case maxLen <= 0:
		return ""
	case len(r) <= maxLen:
		return url
	case maxLen < 4:
		return string(r[:maxLen])
	}
	return "..." + string(r[len(r)-maxLen+3:])
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value, suffix := float64(n)/unit, "KB"
	if value >= unit {
		value, suffix = value/unit, "MB"
	}
	return fmt.Sprintf("%.1f %s", value, suffix)
}

// FormatTokens renders an approximate token count, in thousands from 1000 up.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}

// FormatSummary renders the one-line report printed after a crawl run.
func FormatSummary(path string, merged *docassist.MergeResult, failed int) string {
	return fmt.Sprintf("%d pages added/updated in %s (%d new, %d updated, %d failed)",
		merged.Added+merged.Updated, path, merged.Added, merged.Updated, failed)
}

package gemini

import (
	"unicode/utf8"

	"github.com/fwojciec/docassist"
)

// FitDocuments returns the documents that fit in budget bytes of title,
// URL and content, in index order. Documents that would overflow the
// budget are skipped so that smaller ones after them still fit. When none
// fits, the first document is returned with its content cut on a rune
// boundary. A budget below 1 means no limit.
func FitDocuments(docs []*docassist.Document, budget int) []*docassist.Document {
	if budget <= 0 {
		return docs
	}

	var out []*docassist.Document
	used := 0
	for _, doc := range docs {
		if n := docSize(doc); used+n <= budget {
			out = append(out, doc)
			used += n
		}
	}
	if len(out) == 0 && len(docs) > 0 {
		out = append(out, truncate(docs[0], budget))
	}
	return out
}

func docSize(doc *docassist.Document) int {
	return len(doc.Title) + len(doc.SourceURL) + len(doc.Content)
}

func truncate(doc *docassist.Document, budget int) *docassist.Document {
	cp := *doc
	keep := budget - len(doc.Title) - len(doc.SourceURL)
	if keep <= 0 {
		cp.Content = ""
		return &cp
	}
	for keep > 0 && !utf8.RuneStart(cp.Content[keep]) {
		keep--
	}
	cp.Content = cp.Content[:keep]
	return &cp
}

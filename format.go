package docassist

import "strings"

// documentSeparator divides documents rendered by FormatDocuments.
const documentSeparator = "\n\n---\n\n"

// FormatDocuments renders docs as one Markdown text: each document gets a
// heading (its title, or its URL when untitled) and a Source line ahead of
// its content.
func FormatDocuments(docs []*Document) string {
	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteString(documentSeparator)
		}
		heading := doc.Title
		if heading == "" {
			heading = doc.SourceURL
		}
		b.WriteString("# " + heading + "\n")
		if doc.SourceURL != "" {
			b.WriteString("Source: " + doc.SourceURL + "\n")
		}
		if doc.Content != "" {
			b.WriteString("\n" + doc.Content)
		}
	}
	return b.String()
}

package gemini

import (
	"fmt"
	"html"
	"strings"

	"github.com/fwojciec/docassist"
	"google.golang.org/genai"
)

const systemInstruction = `You answer questions about a product's documentation.
Use only the documents provided with the question. Cite the source URL of every document you rely on.
If the documents do not contain the answer, say that the documentation does not cover it.
Answer in the language of the question.`

const temperature = float32(0.2)

// GenerateConfig returns the generation settings shared by every question.
func GenerateConfig() *genai.GenerateContentConfig {
	t := temperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(systemInstruction)}},
		Temperature:       &t,
	}
}

// UserPrompt wraps docs in <document> elements numbered from 1 and
// appends the question. Untitled documents are titled by their URL.
func UserPrompt(docs []*docassist.Document, question string) string {
	var b strings.Builder
	b.WriteString("<documents>\n")
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(&b, "<document index=\"%d\" source=\"%s\">\n", i+1, html.EscapeString(doc.SourceURL))
		fmt.Fprintf(&b, "<title>%s</title>\n", title)
		b.WriteString(doc.Content)
		b.WriteString("\n</document>\n")
	}
	b.WriteString("</documents>\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

// Package gemini answers documentation questions with Google Gemini and
// counts tokens with the Gemini local tokenizer.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docassist"
	"google.golang.org/genai"
)

const (
	// DefaultModel answers questions unless WithModel overrides it.
	DefaultModel = "gemini-2.5-flash"

	// DefaultContextBudget caps the documentation sent with one question,
	// in bytes of title, URL and content.
	DefaultContextBudget = 600_000
)

var _ docassist.Asker = (*Asker)(nil)

// Asker answers a question from the indexed documents that fit its
// context budget.
type Asker struct {
	client *genai.Client
	docs   docassist.DocumentService
	model  string
	budget int
}

// Option configures an Asker.
type Option func(*Asker)

// WithModel selects the generation model. An empty name keeps DefaultModel.
func WithModel(model string) Option {
	return func(a *Asker) {
		if model != "" {
			a.model = model
		}
	}
}

// WithContextBudget sets how many bytes of documentation accompany a
// question. Values below 1 keep DefaultContextBudget.
func WithContextBudget(n int) Option {
	return func(a *Asker) {
		if n > 0 {
			a.budget = n
		}
	}
}

func NewAsker(client *genai.Client, docs docassist.DocumentService, opts ...Option) *Asker {
	a := &Asker{
		client: client,
		docs:   docs,
		model:  DefaultModel,
		budget: DefaultContextBudget,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model returns the generation model name.
func (a *Asker) Model() string { return a.model }

// ContextBudget returns the documentation budget per question.
func (a *Asker) ContextBudget() int { return a.budget }

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", docassist.Errorf(docassist.EINVALID, "question required")
	}

	docs, err := a.docs.FindDocuments(ctx, docassist.DocumentFilter{})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", docassist.Errorf(docassist.ENOTFOUND, "no documents indexed")
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(UserPrompt(FitDocuments(docs, a.budget), question)),
		GenerateConfig(),
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if resp == nil {
		return "", docassist.Errorf(docassist.EINTERNAL, "gemini returned no response")
	}
	return resp.Text(), nil
}

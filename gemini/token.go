package gemini

import (
	"context"

	"github.com/fwojciec/docassist"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docassist.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline with the tokenizer of a Gemini model,
// so indexing reports sizes without calling the API.
type TokenCounter struct {
	model string
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model. Models the local
// tokenizer does not know are EINVALID.
func NewTokenCounter(model string) (*TokenCounter, error) {
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, docassist.Errorf(docassist.EINVALID, "tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{model: model, local: local}, nil
}

// CountTokens returns the token count of text as a single user turn.
func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	res, err := c.local.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}

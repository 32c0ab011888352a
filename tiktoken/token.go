// Package tiktoken implements docassist.TokenCounter with an embedded BPE
// vocabulary, so counting works offline.
package tiktoken

import (
	"context"

	"github.com/fwojciec/docassist"
	"github.com/tiktoken-go/tokenizer"
)

var _ docassist.TokenCounter = (*TokenCounter)(nil)

// DefaultEncoding is used when no encoding is named.
const DefaultEncoding = "cl100k_base"

// TokenCounter counts tokens with a tiktoken encoding. Counts approximate
// other model families.
type TokenCounter struct {
	codec tokenizer.Codec
}

// NewTokenCounter creates a TokenCounter for the named encoding.
func NewTokenCounter(encoding string) (*TokenCounter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	var enc tokenizer.Encoding
	switch encoding {
	case "cl100k_base":
		enc = tokenizer.Cl100kBase
	case "o200k_base":
		enc = tokenizer.O200kBase
	case "p50k_base":
		enc = tokenizer.P50kBase
	case "r50k_base":
		enc = tokenizer.R50kBase
	default:
		return nil, docassist.Errorf(docassist.EINVALID, "unknown encoding %q", encoding)
	}

	codec, err := tokenizer.Get(enc)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{codec: codec}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	ids, _, err := tc.codec.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

package docassist

import "context"

// Asker provides natural language question answering over indexed documentation.
type Asker interface {
	// Ask answers a natural language question about the indexed documents.
	// Returns ENOTFOUND if nothing has been indexed.
	Ask(ctx context.Context, question string) (string, error)
}

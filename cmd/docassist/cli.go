package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docassist"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Documents docassist.DocumentService
	Store     docassist.PageStore
	Tokens    docassist.TokenCounter
	Asker     docassist.Asker
	Writer    docassist.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"warn" help:"Log level (debug, info, warn, error)"`
	DB       string `name:"db" env:"DOCASSIST_DB" type:"path" default:"${default_db}" help:"SQLite index location"`

	Index  IndexCmd  `cmd:"" help:"Load the crawled page store into the document index"`
	Docs   DocsCmd   `cmd:"" help:"List indexed documents"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the indexed documentation"`
	Export ExportCmd `cmd:"" help:"Write indexed documents as markdown files"`
	Delete DeleteCmd `cmd:"" help:"Delete a document from the index"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	DataPath  string `name:"data-path" env:"DATA_PATH" required:"" help:"JSON page store written by the crawler"`
	Tokenizer string `env:"TOKENIZER" enum:"gemini,tiktoken" default:"gemini" help:"Token counter for the index summary (gemini, tiktoken)"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Full   bool `help:"Show full document content"`
	Limit  int  `help:"Show at most this many documents (0 for all)"`
	Offset int  `help:"Skip this many documents"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question   string `arg:"" help:"Question to ask about the documentation"`
	Model      string `env:"GEMINI_MODEL" help:"Gemini model to answer with"`
	MaxContext int    `name:"max-context" env:"ASK_MAX_CONTEXT" default:"600000" help:"Bytes of documentation sent with the question; documents past the budget are left out"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" type:"path" help:"Output directory"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URLs  []string `arg:"" name:"url" help:"Source URLs of the documents to delete"`
	Force bool     `help:"Confirm deletion"`
}

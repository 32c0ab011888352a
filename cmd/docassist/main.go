package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/fs"
	"github.com/fwojciec/docassist/gemini"
	daslog "github.com/fwojciec/docassist/slog"
	"github.com/fwojciec/docassist/sqlite"
	"github.com/fwojciec/docassist/tiktoken"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewMain().Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main wires the docassist binary. Services left nil are built from
// configuration; tests inject their own.
type Main struct {
	// DBPath is the index location used when neither --db nor
	// DOCASSIST_DB is given.
	DBPath string

	DB *sqlite.DB

	DocumentService docassist.DocumentService
	TokenCounter    docassist.TokenCounter
	Asker           docassist.Asker
}

func NewMain() *Main {
	return &Main{DBPath: defaultDBPath()}
}

// Close releases the index database, if Run opened one.
func (m *Main) Close() error {
	if m.DB == nil {
		return nil
	}
	return m.DB.Close()
}

// Run parses args and executes the selected command.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{Ctx: ctx, Stdout: stdout, Stderr: stderr}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docassist"),
		kong.Description("Index crawled documentation and ask questions about it"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_db": m.DBPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("create parser: %w", err)
	}

	switch {
	case len(args) == 0:
		_, _ = parser.Parse([]string{"--help"})
		return docassist.Errorf(docassist.EINVALID, "no command specified. Run 'docassist --help' to see available commands")
	case args[0] == "help" || args[0] == "--help" || args[0] == "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if deps.Logger, err = daslog.NewLogger(stderr, cli.LogLevel); err != nil {
		return err
	}

	if err := m.openIndex(cli.DB, stderr); err != nil {
		return err
	}
	defer m.Close()
	deps.Documents = m.DocumentService

	switch kongCtx.Command() {
	case "index":
		deps.Store = daslog.NewLoggingStore(fs.NewJSONStore(cli.Index.DataPath), deps.Logger)
		if m.TokenCounter == nil {
			if m.TokenCounter, err = newTokenCounter(cli.Index.Tokenizer); err != nil {
				return fmt.Errorf("create token counter: %w", err)
			}
		}
		deps.Tokens = m.TokenCounter
	case "ask <question>":
		if m.Asker == nil {
			if m.Asker, err = m.newAsker(ctx, &cli.Ask, stderr); err != nil {
				return err
			}
		}
		deps.Asker = daslog.NewLoggingAsker(m.Asker, deps.Logger)
	case "export <dir>":
		deps.Writer = fs.NewWriter(cli.Export.Dir)
	}

	return kongCtx.Run(deps)
}

// openIndex opens the SQLite index at path unless a DocumentService was
// injected.
func (m *Main) openIndex(path string, stderr io.Writer) error {
	if m.DocumentService != nil {
		return nil
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintln(stderr, "Hint: pass --db or set DOCASSIST_DB to use a different index location")
		return fmt.Errorf("open index at %q: %w", path, err)
	}
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	return nil
}

func (m *Main) newAsker(ctx context.Context, cmd *AskCmd, stderr io.Writer) (docassist.Asker, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY is not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, docassist.Errorf(docassist.EINVALID, "GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("connect to Gemini API: %w", err)
	}
	return gemini.NewAsker(client, m.DocumentService,
		gemini.WithModel(cmd.Model),
		gemini.WithContextBudget(cmd.MaxContext),
	), nil
}

// tokenizerModel is the model whose tokenizer sizes the index. The local
// tokenizer does not know every generation model.
const tokenizerModel = "gemini-2.5-flash"

func newTokenCounter(name string) (docassist.TokenCounter, error) {
	if name == "tiktoken" {
		return tiktoken.NewTokenCounter(tiktoken.DefaultEncoding)
	}
	return gemini.NewTokenCounter(tokenizerModel)
}

// defaultDBPath places the index in the XDG data directory, falling back
// to the working directory.
func defaultDBPath() string {
	path, err := xdg.DataFile(filepath.Join("docassist", "docassist.db"))
	if err != nil {
		return "docassist.db"
	}
	return path
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/excelize"
	"github.com/fwojciec/pricescout/fs"
	"github.com/fwojciec/pricescout/goquery"
	pshttp "github.com/fwojciec/pricescout/http"
	"github.com/fwojciec/pricescout/rod"
	"github.com/fwojciec/pricescout/sqlite"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SourceService pricescout.SourceService

	logFile io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.logFile != nil {
		_ = m.logFile.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pricescout"),
		kong.Description("Extract product name, price and availability from shop pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pricescout --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = m.newLogger(cli, stderr)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PRICESCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SourceService = sqlite.NewSourceService(m.DB)
	deps.Sources = m.SourceService
	deps.Dispatcher = goquery.NewDefaultDispatcher()
	deps.NewFetcher = newFetcher
	deps.NewExporter = newExporter

	return kongCtx.Run(deps)
}

// newLogger logs to stderr, or to a rotating file when --log-file is set.
// Only warnings are shown unless --verbose.
func (m *Main) newLogger(cli *CLI, stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}

	w := stderr
	if cli.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cli.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		m.logFile = lj
		w = lj
		if !cli.Verbose {
			level = slog.LevelInfo
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newFetcher(cfg FetcherConfig) (pricescout.Fetcher, error) {
	if cfg.Browser {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cfg.Timeout),
			rod.WithStealth(cfg.Stealth),
		)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return pshttp.NewFetcher(pshttp.WithTimeout(cfg.Timeout)), nil
}

func newExporter(format, dir string) (pricescout.Exporter, error) {
	switch format {
	case "xlsx":
		return excelize.NewExporter(dir), nil
	case "csv":
		return fs.NewCSVExporter(dir), nil
	default:
		return nil, pricescout.Errorf(pricescout.EINVALID, "unsupported export format %q", format)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("PRICESCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pricescout.db"
	}
	dir := filepath.Join(home, ".pricescout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pricescout.db")
}

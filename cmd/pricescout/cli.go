package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pricescout"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Sources    pricescout.SourceService
	Dispatcher pricescout.Dispatcher

	// NewFetcher opens the fetcher a batch runs with. Callers close it.
	NewFetcher func(cfg FetcherConfig) (pricescout.Fetcher, error)

	// NewExporter returns the exporter for a tabular format writing into dir.
	NewExporter func(format, dir string) (pricescout.Exporter, error)
}

// FetcherConfig selects and configures a fetcher.
type FetcherConfig struct {
	Browser bool
	Stealth bool
	Timeout time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log every fetch and extraction"`
	LogFile string `name:"log-file" type:"path" help:"Write logs to a rotating file instead of stderr"`

	Add    AddCmd    `cmd:"" help:"Add a source with its URL list"`
	Import ImportCmd `cmd:"" help:"Create or update sources from a YAML file"`
	List   ListCmd   `cmd:"" help:"List registered sources"`
	Delete DeleteCmd `cmd:"" help:"Delete a source"`
	Run    RunCmd    `cmd:"" help:"Extract product data for every URL of a source"`
	Watch  WatchCmd  `cmd:"" help:"Run sources periodically until interrupted"`
	Probe  ProbeCmd  `cmd:"" help:"Detect which site template a product page uses"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name     string   `arg:"" help:"Source name"`
	Strategy string   `arg:"" enum:"title-block,product-card,catalog-detail" help:"Extraction strategy (title-block, product-card, catalog-detail)"`
	File     string   `short:"f" type:"existingfile" help:"Newline-delimited URL list"`
	URL      []string `short:"u" name:"url" sep:"none" help:"Product page URL (repeatable)"`
	Force    bool     `help:"Replace an existing source with the same name"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path string `arg:"" type:"existingfile" help:"YAML sources file"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Source name"`
	Force bool   `help:"Confirm deletion"`
}

// BatchFlags configure how a batch is fetched.
type BatchFlags struct {
	Concurrency  int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Timeout      time.Duration `default:"10s" help:"Per-page fetch timeout"`
	BatchTimeout time.Duration `name:"batch-timeout" help:"Bound for the whole batch (0 means none)"`
	Browser      bool          `help:"Fetch with headless Chrome instead of plain HTTP"`
	Stealth      bool          `help:"Hide headless browser fingerprints (with --browser)"`
	Retry        bool          `help:"Retry network and HTTP failures after 1s, 2s and 4s"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Name   string `arg:"" help:"Source name"`
	Format string `default:"text" enum:"text,xlsx,csv" help:"Output format (text, xlsx, csv)"`
	Out    string `short:"o" default:"." type:"path" help:"Directory for xlsx and csv exports"`
	BatchFlags
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Names  []string      `arg:"" help:"Source names"`
	Every  time.Duration `default:"1h" help:"Interval between runs"`
	Format string        `default:"text" enum:"text,xlsx,csv" help:"Output format (text, xlsx, csv)"`
	Out    string        `short:"o" default:"." type:"path" help:"Directory for xlsx and csv exports"`
	BatchFlags
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL     string        `arg:"" help:"Product page URL"`
	Browser bool          `help:"Fetch with headless Chrome instead of plain HTTP"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout"`
}

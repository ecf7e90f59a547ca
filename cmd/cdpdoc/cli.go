package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/crawl"
	"github.com/fwojciec/cdpdoc/engine"
	"github.com/fwojciec/cdpdoc/live"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *cdpdoc.Config
	Logger    *slog.Logger
	Store     cdpdoc.DocumentStore
	Crawler   *crawl.Crawler
	Engine    *engine.Engine
	Navigator *live.Navigator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `help:"Config file path (env CDPDOC_CONFIG)" type:"path"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl vendor documentation into document sets"`
	Search  SearchCmd  `cmd:"" help:"Rank documents against a query"`
	Compare CompareCmd `cmd:"" help:"Compare how platforms document a feature"`
	Ask     AskCmd     `cmd:"" help:"Answer a question from the indexed documentation"`
	Live    LiveCmd    `cmd:"" help:"Answer a question from the live documentation site"`
	Chat    ChatCmd    `cmd:"" help:"Ask questions interactively"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Platforms []string          `name:"platform" short:"p" help:"Platform to crawl (repeatable, default all)"`
	Seeds     map[string]string `name:"seed" help:"Override a platform's seed URL (platform=url)"`
	Sitemap   bool              `help:"Add sitemap URLs to the first frontier"`
	Browser   bool              `help:"Render pages with headless Chrome"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string   `arg:"" help:"Search query"`
	Limit     int      `short:"k" help:"Number of results (default from config)"`
	Platforms []string `name:"platform" short:"p" help:"Restrict to platform (repeatable)"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Feature string `arg:"" help:"Feature to compare across platforms"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about CDP documentation"`
}

// LiveCmd is the "live" subcommand.
type LiveCmd struct {
	Question string `arg:"" help:"Question naming a platform"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

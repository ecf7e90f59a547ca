package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/cache"
	"github.com/fwojciec/cdpdoc/crawl"
	"github.com/fwojciec/cdpdoc/engine"
	"github.com/fwojciec/cdpdoc/fs"
	"github.com/fwojciec/cdpdoc/goquery"
	cdphttp "github.com/fwojciec/cdpdoc/http"
	"github.com/fwojciec/cdpdoc/live"
	"github.com/fwojciec/cdpdoc/rod"
	"github.com/fwojciec/cdpdoc/search"
	cdpslog "github.com/fwojciec/cdpdoc/slog"
	"github.com/fwojciec/cdpdoc/sqlite"
	"github.com/fwojciec/cdpdoc/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// liveCacheName names the live lookup cache in a SQLite store.
const liveCacheName = "live"

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run(); the --config flag wins.
	ConfigPath string

	// Stdin feeds the chat command.
	Stdin io.Reader

	Config *cdpdoc.Config
	Logger *slog.Logger

	// SQLite database, open only with the sqlite store driver.
	DB *sqlite.DB

	// Browser, running only for crawls that render pages.
	Browser *rod.Fetcher

	logCloser io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: yaml.ConfigPath(),
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Browser != nil {
		if err := m.Browser.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil {
			return err
		}
	}
	if m.logCloser != nil {
		return m.logCloser.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cdpdoc"),
		kong.Description("Answer questions about Segment, mParticle, Lytics and Zeotap from their documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cdpdoc --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	if cli.Config != "" {
		m.ConfigPath = cli.Config
	}
	m.Config, err = yaml.LoadConfig(m.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", m.ConfigPath, err)
	}
	deps.Config = m.Config

	// Crawl progress goes to stdout; answers own stdout everywhere else.
	logOut := stderr
	if cmd == "crawl" {
		logOut = stdout
	}
	m.Logger, m.logCloser, err = cdpslog.NewLogger(m.Config.Log, logOut)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer m.Close()
	deps.Logger = m.Logger

	store, err := m.openStore()
	if err != nil {
		return err
	}
	deps.Store = cdpslog.NewLoggingDocumentStore(store, m.Logger)

	fetcher := cdpslog.NewLoggingFetcher(cdphttp.NewFetcher(
		cdphttp.WithTimeout(m.Config.Crawl.Timeout),
		cdphttp.WithUserAgent(m.Config.Crawl.UserAgent),
	), m.Logger)
	extractor := goquery.NewExtractor()

	switch cmd {
	case "crawl":
		pages := cdpdoc.Fetcher(fetcher)
		if cli.Crawl.Browser || m.Config.Crawl.Browser {
			m.Browser, err = rod.NewFetcher(
				rod.WithFetchTimeout(m.Config.Crawl.Timeout),
				rod.WithUserAgent(m.Config.Crawl.UserAgent),
			)
			if err != nil {
				return fmt.Errorf("failed to start browser: %w", err)
			}
			pages = cdpslog.NewLoggingFetcher(m.Browser, m.Logger)
		}
		deps.Crawler = &crawl.Crawler{
			Fetcher:   pages,
			Extractor: extractor,
			Limiter:   crawl.NewDomainLimiter(m.Config.Crawl.RequestsPerSecond, m.Config.Crawl.BatchSize),
			Logger:    m.Logger,
			BatchSize: m.Config.Crawl.BatchSize,
			Delay:     m.Config.Crawl.Delay,
			MaxPages:  m.Config.Crawl.MaxPages,
		}
		// Sitemap XML always goes over plain HTTP.
		if cli.Crawl.Sitemap || m.Config.Crawl.UseSitemap {
			deps.Crawler.Sitemaps = cdpslog.NewLoggingSitemapService(cdphttp.NewSitemapService(fetcher), m.Logger)
		}

	case "search", "compare", "ask", "chat":
		deps.Engine = engine.New(search.Build(nil))
		deps.Engine.Logger = m.Logger
		warnings, err := deps.Engine.Reload(ctx, deps.Store, search.WithMaxFeatures(m.Config.Search.MaxFeatures))
		if err != nil {
			return fmt.Errorf("failed to load documentation: %w", err)
		}
		for _, w := range warnings {
			fmt.Fprintf(stderr, "warning: %s\n", w)
		}
	}

	if cmd == "live" || cmd == "ask" || cmd == "chat" {
		cacheStore, err := m.openCacheStore()
		if err != nil {
			return err
		}
		deps.Navigator = &live.Navigator{
			Fetcher: fetcher,
			Finder:  extractor,
			Cache: cache.New(cacheStore,
				cache.WithExpiry(m.Config.Cache.Expiry),
				cache.WithLogger(m.Logger),
			),
			Logger: m.Logger,
		}
		if deps.Engine != nil {
			deps.Engine.Live = deps.Navigator
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openStore() (cdpdoc.DocumentStore, error) {
	if m.Config.Store.Driver != cdpdoc.StoreDriverSQLite {
		return fs.NewDocumentStore(m.Config.DocsDir), nil
	}
	m.DB = sqlite.NewDB(m.Config.Store.SQLitePath)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", m.Config.Store.SQLitePath, err)
	}
	return sqlite.NewDocumentStore(m.DB), nil
}

func (m *Main) openCacheStore() (cdpdoc.CacheStore[[]cdpdoc.Passage], error) {
	if m.DB != nil {
		return sqlite.NewCacheStore[[]cdpdoc.Passage](m.DB, liveCacheName), nil
	}
	return fs.NewCacheFile[[]cdpdoc.Passage](m.Config.Cache.Path), nil
}

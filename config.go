package cdpdoc

import "time"

// Config holds all application configuration.
type Config struct {
	DocsDir string       `yaml:"docs_dir"`
	Log     LogConfig    `yaml:"log"`
	Crawl   CrawlConfig  `yaml:"crawl"`
	Search  SearchConfig `yaml:"search"`
	Cache   CacheConfig  `yaml:"cache"`
	Store   StoreConfig  `yaml:"store"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File is the rotating log file written alongside the console.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// CrawlConfig configures the documentation crawler.
type CrawlConfig struct {
	BatchSize int           `yaml:"batch_size"`
	Delay     time.Duration `yaml:"delay"`
	Timeout   time.Duration `yaml:"timeout"`
	// MaxPages caps the URLs visited per platform. Zero crawls until the
	// frontier is empty.
	MaxPages          int     `yaml:"max_pages"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	UseSitemap        bool    `yaml:"use_sitemap"`
	UserAgent         string  `yaml:"user_agent"`
	// Browser renders pages with headless Chrome instead of plain HTTP.
	Browser bool `yaml:"browser"`
}

// SearchConfig configures the search index.
type SearchConfig struct {
	TopK        int `yaml:"top_k"`
	MaxFeatures int `yaml:"max_features"`
}

// CacheConfig configures the live lookup result cache.
type CacheConfig struct {
	Path   string        `yaml:"path"`
	Expiry time.Duration `yaml:"expiry"`
}

// Store drivers.
const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
)

// StoreConfig selects the storage backend for document sets and the cache.
type StoreConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Package yaml loads cdpdoc configuration from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/cdpdoc"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when CDPDOC_CONFIG is not set.
const DefaultConfigPath = "cdpdoc.yaml"

// LoadConfig reads configuration from path and applies defaults and
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*cdpdoc.Config, error) {
	cfg := &cdpdoc.Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "parse config yaml: %v", err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the config file path from the environment or the default.
func ConfigPath() string {
	if path := os.Getenv("CDPDOC_CONFIG"); path != "" {
		return path
	}
	return DefaultConfigPath
}

func applyDefaults(cfg *cdpdoc.Config) {
	if cfg.DocsDir == "" {
		cfg.DocsDir = "cdp_docs"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "scraping.log"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Crawl.BatchSize == 0 {
		cfg.Crawl.BatchSize = 5
	}
	if cfg.Crawl.Delay == 0 {
		cfg.Crawl.Delay = time.Second
	}
	if cfg.Crawl.Timeout == 0 {
		cfg.Crawl.Timeout = 10 * time.Second
	}
	if cfg.Crawl.RequestsPerSecond == 0 {
		cfg.Crawl.RequestsPerSecond = 10
	}
	if cfg.Crawl.UserAgent == "" {
		cfg.Crawl.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = cdpdoc.DefaultTopK
	}
	if cfg.Search.MaxFeatures == 0 {
		cfg.Search.MaxFeatures = 10000
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "doc_cache.gob"
	}
	if cfg.Cache.Expiry == 0 {
		cfg.Cache.Expiry = cdpdoc.DefaultCacheExpiry
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = cdpdoc.StoreDriverFile
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "cdpdoc.db"
	}
}

func applyEnvironmentOverrides(cfg *cdpdoc.Config) {
	if dir := os.Getenv("CDPDOC_DOCS_DIR"); dir != "" {
		cfg.DocsDir = dir
	}
	if path := os.Getenv("CDPDOC_CACHE_PATH"); path != "" {
		cfg.Cache.Path = path
	}
	if level := os.Getenv("CDPDOC_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

func validate(cfg *cdpdoc.Config) error {
	switch cfg.Store.Driver {
	case cdpdoc.StoreDriverFile, cdpdoc.StoreDriverSQLite:
	default:
		return cdpdoc.Errorf(cdpdoc.EINVALID, "store.driver must be %q or %q, got %q",
			cdpdoc.StoreDriverFile, cdpdoc.StoreDriverSQLite, cfg.Store.Driver)
	}
	if cfg.Crawl.BatchSize < 0 {
		return cdpdoc.Errorf(cdpdoc.EINVALID, "crawl.batch_size must not be negative")
	}
	if cfg.Crawl.MaxPages < 0 {
		return cdpdoc.Errorf(cdpdoc.EINVALID, "crawl.max_pages must not be negative")
	}
	if cfg.Crawl.Delay < 0 {
		return cdpdoc.Errorf(cdpdoc.EINVALID, "crawl.delay must not be negative")
	}
	if cfg.Search.TopK < 0 {
		return cdpdoc.Errorf(cdpdoc.EINVALID, "search.top_k must not be negative")
	}
	if cfg.Cache.Expiry < 0 {
		return cdpdoc.Errorf(cdpdoc.EINVALID, "cache.expiry must not be negative")
	}
	return nil
}

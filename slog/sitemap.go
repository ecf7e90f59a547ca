package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpdoc"
)

var _ cdpdoc.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService records how many URLs a platform's sitemap added to
// the first crawl frontier. A failed lookup is logged as a warning because
// the crawl then starts from the seed page alone.
type LoggingSitemapService struct {
	next   cdpdoc.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next cdpdoc.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, seedURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("sitemap discovery failed, crawling from seed only",
				"seed", seedURL,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("sitemap discovery",
			"seed", seedURL,
			"urls", len(urls),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, seedURL)
}

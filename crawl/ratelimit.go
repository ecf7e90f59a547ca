package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/cdpdoc"
	"golang.org/x/time/rate"
)

var _ cdpdoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter caps the fetch rate against each documentation host.
// CrawlAll walks the platforms one after another, so in practice one bucket
// is active at a time; the between-batch Delay is applied separately.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewDomainLimiter returns a limiter that lets burst fetches to a host start
// together and then refills at rps per second. Passing the crawl batch size
// as burst keeps a full batch concurrent. A non-positive rps disables
// limiting and burst below 1 is treated as 1.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   max(burst, 1),
	}
}

// Wait blocks until a fetch to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(host).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[host]
	if !ok {
		b = rate.NewLimiter(d.limit, d.burst)
		d.buckets[host] = b
	}
	return b
}

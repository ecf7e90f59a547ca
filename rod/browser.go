// Package rod fetches documentation pages through headless Chrome, for
// platforms whose pages only fill in their content with JavaScript.
package rod

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages a browser serves before it is
// replaced by a fresh one.
const DefaultRecycleAfter = 75

// browser is one running Chrome process and its control connection.
type browser struct {
	rod      *rod.Browser
	launcher *launcher.Launcher

	pages    int  // pages opened so far
	inflight int  // pages currently open
	retired  bool // replaced; closes when inflight drops to zero
	closed   bool
}

// launch starts headless Chrome with flags that keep background tabs from
// being throttled.
func launch() (*browser, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &browser{rod: b, launcher: l}, nil
}

// close shuts the browser down and kills its process. Closing twice is a
// no-op.
func (b *browser) close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	err := b.rod.Close()
	b.launcher.Kill()
	return err
}

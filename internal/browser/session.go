// Package browser drives a headless Chrome session for sources that have no
// usable API. It exposes a small navigate/extract/click surface; DOM
// structure knowledge stays in the fetchers that own it.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/kulugary/mediahub/internal/logger"
)

// Keyboard keys accepted by Session.Press.
const (
	KeyArrowDown = kb.ArrowDown
	KeyEnter     = kb.Enter
)

const defaultTimeout = 10 * time.Second

// Options configures the shared browser session.
type Options struct {
	Headless  bool
	UserAgent string
	// Timeout bounds every navigation, wait and extraction call. A timed-out
	// call resolves to an empty result; it never aborts the whole scrape.
	Timeout time.Duration
}

// Session owns one browser and one primary tab. The session is shared
// sequentially across buckets and sources; enrichment opens short-lived
// extra tabs that inherit its cookies.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	log         *logger.Logger
}

// NewSession launches the browser and waits until it is ready.
func NewSession(opts *Options, log *logger.Logger) (*Session, error) {
	if opts == nil {
		opts = &Options{Headless: true}
	}
	if log == nil {
		log = logger.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser now so the first Navigate doesn't pay for launch.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		timeout:     timeout,
		log:         log,
	}, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	tctx, tcancel := context.WithTimeout(ctx, s.timeout)
	defer tcancel()
	return chromedp.Run(tctx, actions...)
}

// Navigate loads url in the primary tab and, when waitSelector is non-empty,
// waits for it to appear. The wait is bounded by the session timeout.
func (s *Session) Navigate(url, waitSelector string) error {
	actions := []chromedp.Action{chromedp.Navigate(url)}
	if waitSelector != "" {
		actions = append(actions, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
	}
	if err := s.run(s.ctx, actions...); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Text extracts the text content of the first node matching selector.
// Absent nodes and timeouts report false rather than an error.
func (s *Session) Text(selector string) (string, bool) {
	var out string
	if err := s.run(s.ctx, chromedp.Text(selector, &out, chromedp.ByQuery)); err != nil {
		s.log.WithError(err).WithField("selector", selector).Debug("Text extraction failed")
		return "", false
	}
	return strings.TrimSpace(out), true
}

// Attr extracts an attribute from the first node matching selector.
func (s *Session) Attr(selector, name string) (string, bool) {
	var val string
	var ok bool
	if err := s.run(s.ctx, chromedp.AttributeValue(selector, name, &val, &ok, chromedp.ByQuery)); err != nil {
		s.log.WithError(err).WithField("selector", selector).Debug("Attribute extraction failed")
		return "", false
	}
	return val, ok
}

// OuterHTML returns the rendered HTML of the first node matching selector,
// for extraction with an HTML parser off the live page.
func (s *Session) OuterHTML(selector string) (string, error) {
	var html string
	if err := s.run(s.ctx, chromedp.OuterHTML(selector, &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read %q: %w", selector, err)
	}
	return html, nil
}

// Click clicks the first node matching selector. Callers treat failures as
// best effort: cookie banners and view toggles are not always present.
func (s *Session) Click(selector string) error {
	return s.run(s.ctx, chromedp.Click(selector, chromedp.ByQuery))
}

// Press sends a keyboard event to the focused element in the primary tab.
// Used to walk menus that only react to key navigation.
func (s *Session) Press(key string) error {
	return s.run(s.ctx, chromedp.KeyEvent(key))
}

// TabHTML opens url in a fresh tab sharing this session's cookies, waits for
// waitSelector, optionally clicks clickSelector (ignored when absent), and
// returns the outer HTML of htmlSelector. The tab is closed before returning.
func (s *Session) TabHTML(url, waitSelector, clickSelector, htmlSelector string) (string, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.ctx)
	defer tabCancel()

	tctx, tcancel := context.WithTimeout(tabCtx, s.timeout)
	defer tcancel()

	actions := []chromedp.Action{chromedp.Navigate(url)}
	if waitSelector != "" {
		actions = append(actions, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
	}
	if err := chromedp.Run(tctx, actions...); err != nil {
		return "", fmt.Errorf("failed to open %s: %w", url, err)
	}

	if clickSelector != "" {
		cctx, ccancel := context.WithTimeout(tabCtx, 2*time.Second)
		if err := chromedp.Run(cctx, chromedp.Click(clickSelector, chromedp.ByQuery)); err != nil {
			s.log.WithField("selector", clickSelector).Debug("Optional click skipped")
		}
		ccancel()
	}

	var html string
	hctx, hcancel := context.WithTimeout(tabCtx, s.timeout)
	defer hcancel()
	if err := chromedp.Run(hctx, chromedp.OuterHTML(htmlSelector, &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read %q from %s: %w", htmlSelector, url, err)
	}
	return html, nil
}

// CookieHeader renders the current session cookies as a Cookie header value,
// so a hybrid flow can bootstrap a browser login and continue over plain
// HTTP calls.
func (s *Session) CookieHeader() (string, error) {
	var cookies []*network.Cookie
	err := s.run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("failed to read session cookies: %w", err)
	}

	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; "), nil
}

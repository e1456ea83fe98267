package acquire

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"career-studio/internal/domain/analysis"

	"github.com/chromedp/chromedp"
)

// BrowserScraper is the expensive tier: a headless browser that executes
// JavaScript, which is what client-side-rendered job boards require. The
// browser contexts are scoped to a single Scrape call and torn down on every
// path, success or not.
type BrowserScraper struct {
	navTimeout  time.Duration
	settleDelay time.Duration
	logger      *log.Logger
}

func NewBrowserScraper(navTimeout, settleDelay time.Duration, logger *log.Logger) *BrowserScraper {
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}
	if settleDelay <= 0 {
		settleDelay = 3 * time.Second
	}
	return &BrowserScraper{navTimeout: navTimeout, settleDelay: settleDelay, logger: logger}
}

const stripAndReadBodyJS = `(() => {
	document.querySelectorAll('script, style, nav, header, footer').forEach(n => n.remove());
	return document.body ? document.body.innerText : '';
})()`

func (s *BrowserScraper) Scrape(ctx context.Context, pageURL string) (analysis.Posting, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(browserUserAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, s.navTimeout)
	defer reqCancel()

	started := time.Now()

	var bodyText string
	var pageHTML string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.settleDelay),
		chromedp.EvaluateAsDevTools(stripAndReadBodyJS, &bodyText),
		chromedp.OuterHTML("html", &pageHTML),
	)
	if err != nil {
		return analysis.Posting{}, fmt.Errorf("render %s: %w", pageURL, err)
	}

	if s.logger != nil {
		s.logger.Printf("headless render ok | url=%s chars=%d took=%s", pageURL, len(bodyText), time.Since(started).Round(time.Millisecond))
	}

	return analysis.Posting{
		Description:      strings.TrimSpace(bodyText),
		ApplicationEmail: PreferredEmail(pageHTML),
	}, nil
}

package acquire

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"career-studio/internal/domain/analysis"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const browserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// descriptionSelectors is probed in order against the fetched document. Class
// substrings cover the common ATS vendors; the id is Indeed's container.
var descriptionSelectors = []string{
	`[class*="job-description"]`,
	`[class*="jobDescription"]`,
	`#jobDescriptionText`,
	`[class*="job-details"]`,
	`[class*="jobDetails"]`,
	`[class*="posting-requirements"]`,
	`[class*="posting"]`,
	`[class*="description"]`,
	`[class*="vacancy"]`,
	`article`,
	`main`,
	`[role="main"]`,
	`.content`,
}

const (
	// A selector hit under this length is noise, not a description.
	selectorMinLen = 100
	// Below this, none of the selectors won and the whole body is used.
	selectorAcceptLen = 200
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// HTTPScraper is the cheap tier: one HTML fetch with a browser-like
// User-Agent, no JavaScript execution.
type HTTPScraper struct {
	timeout time.Duration
	logger  *log.Logger
}

func NewHTTPScraper(timeout time.Duration, logger *log.Logger) *HTTPScraper {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPScraper{timeout: timeout, logger: logger}
}

func (s *HTTPScraper) Scrape(ctx context.Context, pageURL string) (analysis.Posting, error) {
	c := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
	)
	c.SetRequestTimeout(s.timeout)

	var out analysis.Posting
	var reqErr error

	c.OnHTML("html", func(e *colly.HTMLElement) {
		out.Description = extractDescription(e.DOM)
	})

	c.OnResponse(func(r *colly.Response) {
		out.ApplicationEmail = PreferredEmail(string(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return analysis.Posting{}, ctx.Err()
	}
	if err := c.Visit(pageURL); err != nil {
		return analysis.Posting{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	c.Wait()
	if reqErr != nil {
		return analysis.Posting{}, fmt.Errorf("fetch %s: %w", pageURL, reqErr)
	}

	return out, nil
}

// extractDescription strips noise markup, probes the known description
// containers and keeps whichever yields the longest non-trivial text. When no
// selector produces enough, the whole body text is used instead.
func extractDescription(doc *goquery.Selection) string {
	doc.Find("script, style, nav, header, footer").Remove()

	best := ""
	for _, sel := range descriptionSelectors {
		text := collapseWhitespace(doc.Find(sel).Text())
		if len(text) > selectorMinLen && len(text) > len(best) {
			best = text
		}
	}
	if len(best) >= selectorAcceptLen {
		return best
	}

	return collapseWhitespace(doc.Find("body").Text())
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

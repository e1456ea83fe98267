// Package acquire turns a job-analysis input (pasted text or URL) into a
// plain-text posting body. URL inputs go through a two-tier scrape: a cheap
// HTML fetch first, escalating to headless rendering only when the cheap pass
// yields too little text.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"career-studio/internal/domain/analysis"
)

const (
	// minViableLen is the floor below which acquired text is useless for
	// analysis, on both the pasted-text and the URL path.
	minViableLen = 50

	// tierAcceptLen is the length at which a scrape tier's result is accepted
	// without escalating to the next, more expensive tier.
	tierAcceptLen = 300
)

// ErrInsufficientContent reports that no acquisition path produced enough
// text to analyze.
var ErrInsufficientContent = errors.New("insufficient posting content")

// Scraper fetches one job posting page and returns its plain text plus any
// contact email found in the page source.
type Scraper interface {
	Scrape(ctx context.Context, pageURL string) (analysis.Posting, error)
}

// Acquirer coordinates scrapers ordered from cheapest to most expensive.
type Acquirer struct {
	scrapers []Scraper
	logger   *log.Logger
}

func New(logger *log.Logger, scrapers ...Scraper) *Acquirer {
	return &Acquirer{scrapers: scrapers, logger: logger}
}

// Acquire resolves in to a posting body. For pasted text the content is the
// body; for URLs the scrape tiers are tried in cost order against the
// acceptance threshold, keeping the longest result when none reach it.
func (a *Acquirer) Acquire(ctx context.Context, in analysis.Input) (analysis.Posting, error) {
	if !in.IsURL {
		desc := strings.TrimSpace(in.Content)
		if len(desc) < minViableLen {
			return analysis.Posting{}, fmt.Errorf("%w: pasted text is %d chars, need at least %d", ErrInsufficientContent, len(desc), minViableLen)
		}
		return analysis.Posting{
			Description:      desc,
			ApplicationEmail: PreferredEmail(desc),
		}, nil
	}

	var best analysis.Posting
	for i, s := range a.scrapers {
		if ctx.Err() != nil {
			return analysis.Posting{}, ctx.Err()
		}

		p, err := s.Scrape(ctx, in.Content)
		if err != nil {
			if a.logger != nil {
				a.logger.Printf("scrape tier failed | tier=%d url=%s err=%v", i+1, in.Content, err)
			}
			continue
		}
		p.Description = strings.TrimSpace(p.Description)

		if len(p.Description) >= tierAcceptLen {
			return p, nil
		}
		if len(p.Description) > len(best.Description) {
			best = p
		}
		if a.logger != nil {
			a.logger.Printf("scrape tier thin, escalating | tier=%d chars=%d", i+1, len(p.Description))
		}
	}

	if len(best.Description) >= minViableLen {
		return best, nil
	}
	return analysis.Posting{}, fmt.Errorf("%w: all scrape tiers exhausted", ErrInsufficientContent)
}

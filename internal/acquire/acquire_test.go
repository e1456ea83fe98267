package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"career-studio/internal/domain/analysis"
)

type fakeScraper struct {
	posting analysis.Posting
	err     error
	calls   int
}

func (f *fakeScraper) Scrape(ctx context.Context, pageURL string) (analysis.Posting, error) {
	f.calls++
	return f.posting, f.err
}

func TestPreferredEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"contact noreply@example.com or careers@example.com", "careers@example.com"},
		{"send to jobs@acme.io today", "jobs@acme.io"},
		{"write to info@acme.io or sales@acme.io", "info@acme.io"},
		{"no emails here", ""},
	}
	for _, tc := range cases {
		if got := PreferredEmail(tc.in); got != tc.want {
			t.Fatalf("PreferredEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAcquire_PlainText(t *testing.T) {
	a := New(nil)
	in := analysis.Input{
		Content: "Senior Backend Engineer at Acme. 5+ years Python required. Remote, $140k-$160k. Apply: careers@acme.com",
		IsURL:   false,
	}

	p, err := a.Acquire(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Description != in.Content {
		t.Fatalf("description should be the pasted text verbatim")
	}
	if p.ApplicationEmail != "careers@acme.com" {
		t.Fatalf("unexpected email: %q", p.ApplicationEmail)
	}
}

func TestAcquire_PlainTextTooShort(t *testing.T) {
	a := New(nil)
	_, err := a.Acquire(context.Background(), analysis.Input{Content: "too short", IsURL: false})
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent, got %v", err)
	}
}

func TestAcquire_FirstTierAccepted(t *testing.T) {
	long := strings.Repeat("We move freight across the border every day. ", 10)
	tier1 := &fakeScraper{posting: analysis.Posting{Description: long}}
	tier2 := &fakeScraper{posting: analysis.Posting{Description: "should not be reached"}}

	a := New(nil, tier1, tier2)
	p, err := a.Acquire(context.Background(), analysis.Input{Content: "https://example.com/job", IsURL: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Description != strings.TrimSpace(long) {
		t.Fatalf("expected tier 1 result")
	}
	if tier2.calls != 0 {
		t.Fatalf("tier 2 should not run when tier 1 is accepted")
	}
}

func TestAcquire_EscalatesOnThinResult(t *testing.T) {
	long := strings.Repeat("Rendered job description content for a coordinator role. ", 10)
	tier1 := &fakeScraper{posting: analysis.Posting{Description: "thin"}}
	tier2 := &fakeScraper{posting: analysis.Posting{Description: long}}

	a := New(nil, tier1, tier2)
	p, err := a.Acquire(context.Background(), analysis.Input{Content: "https://example.com/job", IsURL: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tier2.calls != 1 {
		t.Fatalf("expected escalation to tier 2")
	}
	if p.Description != strings.TrimSpace(long) {
		t.Fatalf("expected tier 2 result")
	}
}

func TestAcquire_EscalatesOnError(t *testing.T) {
	long := strings.Repeat("Rendered description text with plenty of signal in it. ", 10)
	tier1 := &fakeScraper{err: fmt.Errorf("blocked")}
	tier2 := &fakeScraper{posting: analysis.Posting{Description: long}}

	a := New(nil, tier1, tier2)
	p, err := a.Acquire(context.Background(), analysis.Input{Content: "https://example.com/job", IsURL: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Description == "" {
		t.Fatalf("expected tier 2 result after tier 1 error")
	}
}

func TestAcquire_KeepsBestBelowThreshold(t *testing.T) {
	// Both tiers thin but above the viability floor: the longer one wins.
	medium := strings.Repeat("short but workable posting text ", 3)
	tier1 := &fakeScraper{posting: analysis.Posting{Description: medium}}
	tier2 := &fakeScraper{posting: analysis.Posting{Description: "tiny"}}

	a := New(nil, tier1, tier2)
	p, err := a.Acquire(context.Background(), analysis.Input{Content: "https://example.com/job", IsURL: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Description != strings.TrimSpace(medium) {
		t.Fatalf("expected the longer thin result, got %q", p.Description)
	}
}

func TestAcquire_AllTiersFail(t *testing.T) {
	tier1 := &fakeScraper{posting: analysis.Posting{Description: ""}}
	tier2 := &fakeScraper{err: fmt.Errorf("browser crashed")}

	a := New(nil, tier1, tier2)
	_, err := a.Acquire(context.Background(), analysis.Input{Content: "https://example.com/404", IsURL: true})
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent, got %v", err)
	}
}

func TestHTTPScraper_SelectorExtraction(t *testing.T) {
	desc := strings.Repeat("Coordinate import shipments and prepare customs documentation. ", 5)
	page := `<html><head><script>tracking()</script><style>.x{}</style></head><body>
		<nav>Home | Jobs | About</nav>
		<header>Acme Careers</header>
		<div class="job-description">` + desc + `</div>
		<footer>contact careers@acme.com or noreply@acme.com</footer>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	s := NewHTTPScraper(5*time.Second, nil)
	p, err := s.Scrape(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(p.Description, "Coordinate import shipments") {
		t.Fatalf("expected description container text, got %q", p.Description)
	}
	if strings.Contains(p.Description, "Home | Jobs") || strings.Contains(p.Description, "tracking()") {
		t.Fatalf("noise elements leaked into description: %q", p.Description)
	}
	if p.ApplicationEmail != "careers@acme.com" {
		t.Fatalf("expected email from raw HTML, got %q", p.ApplicationEmail)
	}
}

func TestHTTPScraper_BodyFallback(t *testing.T) {
	body := strings.Repeat("Plain page with the posting inline and no known containers. ", 6)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + body + "</p></body></html>"))
	}))
	defer server.Close()

	s := NewHTTPScraper(5*time.Second, nil)
	p, err := s.Scrape(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(p.Description, "Plain page with the posting inline") {
		t.Fatalf("expected body fallback text, got %q", p.Description)
	}
}

func TestHTTPScraper_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewHTTPScraper(5*time.Second, nil)
	if _, err := s.Scrape(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error on HTTP 404")
	}
}

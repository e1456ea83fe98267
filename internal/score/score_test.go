package score

import (
	"strings"
	"testing"
)

const samplePosting = `About Us
We are Acme Logistics, a growing freight forwarding company.

Responsibilities:
- Manage and coordinate import shipments
- Prepare customs documentation
- Review invoices in CargoWise and Excel

Requirements:
- 5+ years experience in freight forwarding
- Bachelor degree preferred
- Proficient with Excel, Outlook and SAP
- Strong knowledge of customs regulations

Benefits: health insurance, 401k, paid time off.
Salary: $65,000 - $75,000. Full-time, hybrid in Chicago, IL.
Apply by sending your resume to careers@acmelogistics.com.`

func TestScore_Deterministic(t *testing.T) {
	a := Score(samplePosting)
	b := Score(samplePosting)
	if a != b {
		t.Fatalf("score not deterministic: %d vs %d", a, b)
	}
}

func TestScore_Bounds(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"x",
		"short posting",
		samplePosting,
		strings.Repeat("python excel salary remote 5+ years apply benefits ", 500),
	}
	for _, in := range inputs {
		got := Score(in)
		if got < MinScore || got > MaxScore {
			t.Fatalf("score out of bounds for %q...: %d", firstN(in, 20), got)
		}
	}
}

func TestScore_EmptyStringHitsFloor(t *testing.T) {
	if got := Score(""); got != MinScore {
		t.Fatalf("expected floor %d for empty text, got %d", MinScore, got)
	}
}

func TestScore_CategoryCaps(t *testing.T) {
	// Repeating one tool 50 times still counts as one distinct tool.
	spam := strings.Repeat("python ", 50)
	if got := keywordScore(spam, strings.ToLower(spam)); got > 2 {
		t.Fatalf("repeated tool should contribute 2 points, got %d", got)
	}

	// Every list saturated at once must not break the per-category caps.
	loaded := samplePosting + strings.Repeat(" requirement qualification responsibilities skill experience education benefit about duties summary", 3)
	lower := strings.ToLower(loaded)
	if got := clarityScore(loaded, lower); got > clarityCap {
		t.Fatalf("clarity above cap: %d", got)
	}
	if got := specificityScore(loaded, lower); got > specificityCap {
		t.Fatalf("specificity above cap: %d", got)
	}
	if got := keywordScore(loaded, lower); got > keywordCap {
		t.Fatalf("keyword richness above cap: %d", got)
	}
	if got := contentScore(loaded, lower); got > contentCap {
		t.Fatalf("content quality above cap: %d", got)
	}
}

func TestScore_SpecificitySignals(t *testing.T) {
	text := "Senior Backend Engineer at Acme. 5+ years Python required. Remote, $140k-$160k. Apply: careers@acme.com"
	lower := strings.ToLower(text)

	got := specificityScore(text, lower)
	// years (+8), salary (+7), location (+5); no degree or employment-type signal.
	if got != 20 {
		t.Fatalf("expected specificity 20, got %d", got)
	}

	if total := Score(text); total < 26 {
		t.Fatalf("expected total >= 26, got %d", total)
	}
	if empty := Score("hello world"); Score(text) <= empty {
		t.Fatalf("signal-rich text should outscore a no-signal text")
	}
}

func TestScore_RichPostingScoresHigh(t *testing.T) {
	got := Score(samplePosting)
	if got < 70 {
		t.Fatalf("expected sample posting to score >= 70, got %d", got)
	}
}

func TestScore_ToolDedupCaseInsensitive(t *testing.T) {
	if got := distinctToolCount("Python PYTHON python Excel excel"); got != 2 {
		t.Fatalf("expected 2 distinct tools, got %d", got)
	}
}

func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

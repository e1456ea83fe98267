package analyze

import (
	"context"
	"fmt"
	"testing"
	"time"

	"career-studio/internal/acquire"
	"career-studio/internal/domain/analysis"
)

const testPosting = "Senior Backend Engineer at Acme. 5+ years Python required. Remote, $140k-$160k. Apply: careers@acme.com"

type fakeAcquirer struct {
	posting analysis.Posting
	err     error
}

func (f fakeAcquirer) Acquire(ctx context.Context, in analysis.Input) (analysis.Posting, error) {
	return f.posting, f.err
}

type fakeStructured struct {
	out   analysis.StructuredExtraction
	err   error
	delay time.Duration
}

func (f fakeStructured) Extract(ctx context.Context, text string) (analysis.StructuredExtraction, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return analysis.StructuredExtraction{}, ctx.Err()
		}
	}
	return f.out, f.err
}

type fakeInsight struct {
	out *analysis.InsightExtraction
	err error
}

func (f fakeInsight) Extract(ctx context.Context, text string) (*analysis.InsightExtraction, error) {
	return f.out, f.err
}

func TestAnalyzeJob_HappyPath(t *testing.T) {
	e := NewEngine(
		fakeAcquirer{posting: analysis.Posting{Description: testPosting, ApplicationEmail: "careers@acme.com"}},
		fakeStructured{out: *sampleStructured()},
		fakeInsight{out: sampleInsights()},
		time.Second,
		nil,
	)

	res := e.AnalyzeJob(context.Background(), analysis.Input{Content: testPosting, UserID: "u1"})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.AnalysisQuality.Confidence != analysis.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %q", res.AnalysisQuality.Confidence)
	}
	if res.PostingQuality < 25 || res.PostingQuality > 100 {
		t.Fatalf("posting quality out of bounds: %d", res.PostingQuality)
	}
	if res.ApplicationEmail != "careers@acme.com" {
		t.Fatalf("email lost: %q", res.ApplicationEmail)
	}
	if res.JobDetails.Title != "Import Coordinator" {
		t.Fatalf("structured details lost")
	}
}

func TestAnalyzeJob_AcquisitionFailure(t *testing.T) {
	e := NewEngine(
		fakeAcquirer{err: fmt.Errorf("%w: all scrape tiers exhausted", acquire.ErrInsufficientContent)},
		fakeStructured{},
		fakeInsight{},
		time.Second,
		nil,
	)

	res := e.AnalyzeJob(context.Background(), analysis.Input{Content: "https://example.com/404", IsURL: true})
	if res.Success {
		t.Fatalf("expected failure result")
	}
	if res.Error != urlFailureMessage {
		t.Fatalf("unexpected error message: %q", res.Error)
	}
	// Structural fields still present for safe destructuring.
	if res.ATSKeywords.HardSkills == nil || res.HiddenInsights.RedFlags == nil {
		t.Fatalf("failure result must keep collections non-nil")
	}
}

func TestAnalyzeJob_BothModelsFail(t *testing.T) {
	e := NewEngine(
		fakeAcquirer{posting: analysis.Posting{Description: testPosting}},
		fakeStructured{err: fmt.Errorf("http 500")},
		fakeInsight{err: fmt.Errorf("http 429")},
		time.Second,
		nil,
	)

	res := e.AnalyzeJob(context.Background(), analysis.Input{Content: testPosting})
	if !res.Success {
		t.Fatalf("model failures must degrade, not fail the analysis: %q", res.Error)
	}
	if res.AnalysisQuality.DataExtraction != analysis.TierFallback {
		t.Fatalf("expected fallback data tier")
	}
	if res.AnalysisQuality.InsightAnalysis != analysis.TierFallback {
		t.Fatalf("expected fallback insight tier")
	}
	if res.AnalysisQuality.Confidence != analysis.ConfidenceMedium {
		t.Fatalf("expected medium confidence")
	}
	// The deterministic score survives a double outage.
	if res.PostingQuality < 25 {
		t.Fatalf("expected scored result, got %d", res.PostingQuality)
	}
}

func TestAnalyzeJob_OneSideFails(t *testing.T) {
	e := NewEngine(
		fakeAcquirer{posting: analysis.Posting{Description: testPosting}},
		fakeStructured{out: *sampleStructured()},
		fakeInsight{err: fmt.Errorf("provider down")},
		time.Second,
		nil,
	)

	res := e.AnalyzeJob(context.Background(), analysis.Input{Content: testPosting})
	if !res.Success {
		t.Fatalf("expected success: %q", res.Error)
	}
	if res.AnalysisQuality.DataExtraction != analysis.TierHigh {
		t.Fatalf("structured side should be high")
	}
	if res.AnalysisQuality.InsightAnalysis != analysis.TierFallback {
		t.Fatalf("insight side should be fallback")
	}
	if len(res.ATSKeywords.HardSkills) != 1 {
		t.Fatalf("structured data lost on partial failure")
	}
}

func TestAnalyzeJob_InsightNilWithoutError(t *testing.T) {
	// The insight client signals unparseable output as (nil, nil).
	e := NewEngine(
		fakeAcquirer{posting: analysis.Posting{Description: testPosting}},
		fakeStructured{out: *sampleStructured()},
		fakeInsight{out: nil, err: nil},
		time.Second,
		nil,
	)

	res := e.AnalyzeJob(context.Background(), analysis.Input{Content: testPosting})
	if !res.Success {
		t.Fatalf("expected success: %q", res.Error)
	}
	if res.AnalysisQuality.InsightAnalysis != analysis.TierFallback {
		t.Fatalf("nil insights should read as fallback tier")
	}
	if res.StrategicAdvice.ShouldApply != "unknown" {
		t.Fatalf("expected fallback strategic advice")
	}
}

func TestAnalyzeJob_EmptyContent(t *testing.T) {
	e := NewEngine(fakeAcquirer{}, fakeStructured{}, fakeInsight{}, time.Second, nil)
	res := e.AnalyzeJob(context.Background(), analysis.Input{Content: "   "})
	if res.Success {
		t.Fatalf("expected failure for empty content")
	}
}

func TestAnalyzeJob_SlowProviderBounded(t *testing.T) {
	e := NewEngine(
		fakeAcquirer{posting: analysis.Posting{Description: testPosting}},
		fakeStructured{out: *sampleStructured(), delay: 5 * time.Second},
		fakeInsight{out: sampleInsights()},
		50*time.Millisecond,
		nil,
	)

	start := time.Now()
	res := e.AnalyzeJob(context.Background(), analysis.Input{Content: testPosting})
	if time.Since(start) > 2*time.Second {
		t.Fatalf("per-call timeout did not bound the slow provider")
	}
	if !res.Success {
		t.Fatalf("timeout on one side must degrade, not fail: %q", res.Error)
	}
	if res.AnalysisQuality.DataExtraction != analysis.TierFallback {
		t.Fatalf("timed-out side should be fallback")
	}
	if res.AnalysisQuality.InsightAnalysis != analysis.TierHigh {
		t.Fatalf("healthy side should still be high")
	}
}

// Package analyze hosts the job-posting analysis engine: content acquisition,
// the dual-model extraction pipeline, result fusion and normalization.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"career-studio/internal/acquire"
	"career-studio/internal/domain/analysis"
	"career-studio/internal/score"
)

// urlFailureMessage is surfaced when both scrape tiers fail: degrading
// silently to a low-quality analysis would be worse than asking the user to
// paste the text.
const urlFailureMessage = "Could not extract job posting content from URL. Please try pasting the job description directly."

// ContentAcquirer resolves an input to a plain-text posting body.
type ContentAcquirer interface {
	Acquire(ctx context.Context, in analysis.Input) (analysis.Posting, error)
}

// StructuredExtractor is the exhaustive, low-temperature extraction pass.
type StructuredExtractor interface {
	Extract(ctx context.Context, postingText string) (analysis.StructuredExtraction, error)
}

// InsightExtractor is the qualitative pass. A nil result with nil error means
// the model responded but its payload was unusable.
type InsightExtractor interface {
	Extract(ctx context.Context, postingText string) (*analysis.InsightExtraction, error)
}

// Engine runs one full analysis per call. It holds only immutable
// configuration, so a single Engine is safe for concurrent use.
type Engine struct {
	acquirer    ContentAcquirer
	structured  StructuredExtractor
	insight     InsightExtractor
	callTimeout time.Duration
	logger      *log.Logger
}

func NewEngine(acquirer ContentAcquirer, structured StructuredExtractor, insight InsightExtractor, callTimeout time.Duration, logger *log.Logger) *Engine {
	if callTimeout <= 0 {
		callTimeout = 60 * time.Second
	}
	return &Engine{
		acquirer:    acquirer,
		structured:  structured,
		insight:     insight,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// AnalyzeJob runs the full pipeline: acquire, extract on both models
// concurrently, score the raw text, fuse and normalize. It never returns an
// error or lets a panic escape; failures surface as a Result with
// Success=false and every structural field populated.
func (e *Engine) AnalyzeJob(ctx context.Context, in analysis.Input) (res analysis.Result) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Printf("analysis panic recovered | err=%v", r)
			}
			res = failureResult(fmt.Sprintf("unexpected analysis failure: %v", r))
		}
	}()

	if strings.TrimSpace(in.Content) == "" {
		return failureResult("job posting content is empty")
	}

	posting, err := e.acquirer.Acquire(ctx, in)
	if err != nil {
		if errors.Is(err, acquire.ErrInsufficientContent) && in.IsURL {
			return failureResult(urlFailureMessage)
		}
		return failureResult(err.Error())
	}

	// The deterministic score depends only on the acquired text, never on
	// model output, so a double model outage still yields a scored result.
	postingScore := score.Score(posting.Description)

	structured, insights := e.extractBoth(ctx, posting.Description)

	res = buildResult(fuse(structured, insights), posting.ApplicationEmail, postingScore)

	if e.logger != nil {
		e.logger.Printf("analysis done | user=%s url=%t score=%d confidence=%s",
			in.UserID, in.IsURL, postingScore, res.AnalysisQuality.Confidence)
	}
	return res
}

// extractBoth runs the two model calls concurrently and settles both: one
// side failing must not cancel or abort the other. Each call gets its own
// deadline so a hung provider cannot stall the analysis indefinitely.
func (e *Engine) extractBoth(ctx context.Context, postingText string) (*analysis.StructuredExtraction, *analysis.InsightExtraction) {
	var (
		wg sync.WaitGroup

		structured    analysis.StructuredExtraction
		structuredErr error
		insights      *analysis.InsightExtraction
		insightErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
		structured, structuredErr = e.structured.Extract(callCtx, postingText)
	}()
	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
		insights, insightErr = e.insight.Extract(callCtx, postingText)
	}()
	wg.Wait()

	var structuredPtr *analysis.StructuredExtraction
	if structuredErr != nil {
		if e.logger != nil {
			e.logger.Printf("structured extraction degraded | err=%v", structuredErr)
		}
	} else {
		structuredPtr = &structured
	}
	if insightErr != nil {
		if e.logger != nil {
			e.logger.Printf("insight extraction degraded | err=%v", insightErr)
		}
		insights = nil
	}
	return structuredPtr, insights
}

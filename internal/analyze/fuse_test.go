package analyze

import (
	"testing"

	"career-studio/internal/domain/analysis"
)

func sampleStructured() *analysis.StructuredExtraction {
	return &analysis.StructuredExtraction{
		JobDetails: analysis.JobDetails{
			Title:        "Import Coordinator",
			Company:      "Acme Logistics",
			Requirements: []string{"customs experience"},
		},
		HardSkills: []analysis.Skill{
			{Skill: "customs clearance", Frequency: 2, Importance: "required"},
		},
		Technologies: []analysis.Technology{
			{Technology: "CargoWise", Frequency: 3, ProficiencyLevel: "must have"},
		},
		ActionWords: []string{"coordinate"},
	}
}

func sampleInsights() *analysis.InsightExtraction {
	return &analysis.InsightExtraction{
		HiddenInsights: analysis.HiddenInsights{
			RedFlags:        []string{"wear many hats"},
			PositiveSignals: []string{"salary listed"},
		},
		StrategicAdvice: analysis.StrategicAdvice{
			ShouldApply:    "yes",
			RiskAssessment: "low",
		},
		IndustryContext: analysis.IndustryContext{
			Sector:        "logistics",
			HiringUrgency: "high",
		},
		CompanyIntelligence: map[string]any{"size": "mid-market"},
	}
}

func TestFuse_BothFailed(t *testing.T) {
	f := fuse(nil, nil)

	if f.Quality.DataExtraction != analysis.TierFallback {
		t.Fatalf("expected fallback data extraction, got %q", f.Quality.DataExtraction)
	}
	if f.Quality.InsightAnalysis != analysis.TierFallback {
		t.Fatalf("expected fallback insight analysis, got %q", f.Quality.InsightAnalysis)
	}
	if f.Quality.Confidence != analysis.ConfidenceMedium {
		t.Fatalf("expected medium confidence, got %q", f.Quality.Confidence)
	}

	// Every collection must be present and empty, never nil.
	if f.HardSkills == nil || f.SoftSkills == nil || f.Technologies == nil {
		t.Fatalf("skill collections must be non-nil")
	}
	if f.Certifications == nil || f.ActionWords == nil || f.IndustryTerms == nil || f.KeyPhrases == nil {
		t.Fatalf("keyword collections must be non-nil")
	}
	if f.JobDetails.Requirements == nil || f.JobDetails.Responsibilities == nil || f.JobDetails.Benefits == nil {
		t.Fatalf("job detail collections must be non-nil")
	}
	if f.HiddenInsights.RedFlags == nil || f.HiddenInsights.PositiveSignals == nil {
		t.Fatalf("hidden insight collections must be non-nil")
	}
	if f.CompanyIntelligence == nil {
		t.Fatalf("company intelligence must be non-nil")
	}

	if f.StrategicAdvice.RiskAssessment != "medium" {
		t.Fatalf("expected medium risk fallback, got %q", f.StrategicAdvice.RiskAssessment)
	}
	if f.IndustryContext.HiringUrgency != "unclear" {
		t.Fatalf("expected unclear urgency fallback, got %q", f.IndustryContext.HiringUrgency)
	}
}

func TestFuse_StructuredOnly(t *testing.T) {
	f := fuse(sampleStructured(), nil)

	if f.Quality.DataExtraction != analysis.TierHigh {
		t.Fatalf("expected high data extraction, got %q", f.Quality.DataExtraction)
	}
	if f.Quality.InsightAnalysis != analysis.TierFallback {
		t.Fatalf("expected fallback insight analysis, got %q", f.Quality.InsightAnalysis)
	}
	if f.Quality.Confidence != analysis.ConfidenceMedium {
		t.Fatalf("expected medium confidence, got %q", f.Quality.Confidence)
	}

	// Structured side preserved untouched.
	if f.JobDetails.Title != "Import Coordinator" {
		t.Fatalf("structured job details lost: %+v", f.JobDetails)
	}
	if len(f.HardSkills) != 1 || f.HardSkills[0].Skill != "customs clearance" {
		t.Fatalf("structured skills lost: %+v", f.HardSkills)
	}

	// Insight side filled with fallbacks only.
	if len(f.HiddenInsights.RedFlags) != 0 {
		t.Fatalf("expected empty red flags, got %v", f.HiddenInsights.RedFlags)
	}
	if f.StrategicAdvice.ShouldApply != "unknown" {
		t.Fatalf("expected unknown should_apply, got %q", f.StrategicAdvice.ShouldApply)
	}
}

func TestFuse_InsightOnly(t *testing.T) {
	f := fuse(nil, sampleInsights())

	if f.Quality.DataExtraction != analysis.TierFallback {
		t.Fatalf("expected fallback data extraction, got %q", f.Quality.DataExtraction)
	}
	if f.Quality.InsightAnalysis != analysis.TierHigh {
		t.Fatalf("expected high insight analysis, got %q", f.Quality.InsightAnalysis)
	}
	if f.IndustryContext.Sector != "logistics" {
		t.Fatalf("insight side lost: %+v", f.IndustryContext)
	}
	if f.JobDetails.Title != "" {
		t.Fatalf("expected empty job details, got %+v", f.JobDetails)
	}
}

func TestFuse_BothSucceeded(t *testing.T) {
	f := fuse(sampleStructured(), sampleInsights())

	if f.Quality.Confidence != analysis.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %q", f.Quality.Confidence)
	}
	if f.JobDetails.Company != "Acme Logistics" {
		t.Fatalf("structured side lost")
	}
	if len(f.HiddenInsights.RedFlags) != 1 {
		t.Fatalf("insight side lost")
	}
}

package analyze

import "career-studio/internal/domain/analysis"

// fuse merges the two extraction sides into one complete structure. A nil
// side failed (or returned unparseable output) and is replaced by its
// fallback stub. Pure function: no I/O, no failure mode, every field of the
// returned value is non-nil.
func fuse(structured *analysis.StructuredExtraction, insights *analysis.InsightExtraction) analysis.Fused {
	out := analysis.Fused{
		Quality: analysis.Quality{
			DataExtraction:  analysis.TierFallback,
			InsightAnalysis: analysis.TierFallback,
			Confidence:      analysis.ConfidenceMedium,
		},
	}

	if structured != nil {
		out.JobDetails = structured.JobDetails
		out.HardSkills = structured.HardSkills
		out.SoftSkills = structured.SoftSkills
		out.Technologies = structured.Technologies
		out.Certifications = structured.Certifications
		out.ExperienceRequirements = structured.ExperienceRequirements
		out.EducationRequirements = structured.EducationRequirements
		out.ActionWords = structured.ActionWords
		out.IndustryTerms = structured.IndustryTerms
		out.KeyPhrases = structured.KeyPhrases
		out.Quality.DataExtraction = analysis.TierHigh
	}

	if insights != nil {
		out.HiddenInsights = insights.HiddenInsights
		out.StrategicAdvice = insights.StrategicAdvice
		out.IndustryContext = insights.IndustryContext
		out.CompanyIntelligence = insights.CompanyIntelligence
		out.Quality.InsightAnalysis = analysis.TierHigh
	} else {
		out.StrategicAdvice = fallbackStrategicAdvice()
		out.IndustryContext = fallbackIndustryContext()
	}

	if structured != nil && insights != nil {
		out.Quality.Confidence = analysis.ConfidenceHigh
	}

	sanitize(&out)
	return out
}

// fallbackStrategicAdvice is the neutral stub used when the insight tier
// degrades: no recommendation either way, medium risk.
func fallbackStrategicAdvice() analysis.StrategicAdvice {
	return analysis.StrategicAdvice{
		ShouldApply:    "unknown",
		Reasoning:      "Insight analysis unavailable for this posting.",
		RiskAssessment: "medium",
	}
}

func fallbackIndustryContext() analysis.IndustryContext {
	return analysis.IndustryContext{
		CompetitionLevel: "medium",
		HiringUrgency:    "unclear",
	}
}

// sanitize replaces nil collections with empty ones so downstream consumers
// never see null where the contract promises an array or object.
func sanitize(f *analysis.Fused) {
	f.JobDetails.Requirements = emptyIfNil(f.JobDetails.Requirements)
	f.JobDetails.Responsibilities = emptyIfNil(f.JobDetails.Responsibilities)
	f.JobDetails.Benefits = emptyIfNil(f.JobDetails.Benefits)

	if f.HardSkills == nil {
		f.HardSkills = []analysis.Skill{}
	}
	if f.SoftSkills == nil {
		f.SoftSkills = []analysis.Skill{}
	}
	if f.Technologies == nil {
		f.Technologies = []analysis.Technology{}
	}
	if f.EducationRequirements == nil {
		f.EducationRequirements = []analysis.EducationRequirement{}
	}
	f.Certifications = emptyIfNil(f.Certifications)
	f.ExperienceRequirements.SpecificExperience = emptyIfNil(f.ExperienceRequirements.SpecificExperience)
	f.ActionWords = emptyIfNil(f.ActionWords)
	f.IndustryTerms = emptyIfNil(f.IndustryTerms)
	f.KeyPhrases = emptyIfNil(f.KeyPhrases)

	f.HiddenInsights.RedFlags = emptyIfNil(f.HiddenInsights.RedFlags)
	f.HiddenInsights.PositiveSignals = emptyIfNil(f.HiddenInsights.PositiveSignals)
	f.HiddenInsights.CompensationClues = emptyIfNil(f.HiddenInsights.CompensationClues)
	f.HiddenInsights.CultureInsights = emptyIfNil(f.HiddenInsights.CultureInsights)

	f.StrategicAdvice.NegotiationLeverage = emptyIfNil(f.StrategicAdvice.NegotiationLeverage)
	f.StrategicAdvice.InterviewQuestions = emptyIfNil(f.StrategicAdvice.InterviewQuestions)
	f.StrategicAdvice.ResumeStrategy = emptyIfNil(f.StrategicAdvice.ResumeStrategy)

	f.IndustryContext.CurrentTrends = emptyIfNil(f.IndustryContext.CurrentTrends)

	if f.CompanyIntelligence == nil {
		f.CompanyIntelligence = map[string]any{}
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

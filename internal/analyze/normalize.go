package analyze

import (
	"strings"

	"career-studio/internal/domain/analysis"
)

// NormalizeImportance maps the free-text importance/proficiency strings the
// extraction model produces onto the closed {high, medium, low} vocabulary.
// Already-normalized values map to themselves; unrecognized text maps to low.
func NormalizeImportance(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(lower, "required"),
		strings.Contains(lower, "high"),
		strings.Contains(lower, "must"),
		strings.Contains(lower, "critical"):
		return analysis.ImportanceHigh
	case strings.Contains(lower, "preferred"),
		strings.Contains(lower, "medium"),
		strings.Contains(lower, "should"):
		return analysis.ImportanceMedium
	default:
		return analysis.ImportanceLow
	}
}

// buildResult reshapes the fused analysis plus the deterministic score into
// the final result: importance tiers closed, education flattened to display
// strings, every optional collection defaulted.
func buildResult(fused analysis.Fused, email string, postingScore int) analysis.Result {
	hard := normalizeSkills(fused.HardSkills)
	soft := normalizeSkills(fused.SoftSkills)

	techs := make([]analysis.Technology, len(fused.Technologies))
	for i, tech := range fused.Technologies {
		tech.ProficiencyLevel = NormalizeImportance(tech.ProficiencyLevel)
		techs[i] = tech
	}

	education := make([]string, 0, len(fused.EducationRequirements))
	for _, e := range fused.EducationRequirements {
		if d := e.Display(); d != "" {
			education = append(education, d)
		}
	}

	return analysis.Result{
		Success:    true,
		JobDetails: fused.JobDetails,
		ATSKeywords: analysis.Keywords{
			ATSScore:               postingScore,
			HardSkills:             hard,
			SoftSkills:             soft,
			Technologies:           techs,
			Certifications:         fused.Certifications,
			ExperienceRequirements: fused.ExperienceRequirements,
			EducationRequirements:  education,
			ActionWords:            fused.ActionWords,
			IndustryTerms:          fused.IndustryTerms,
			KeyPhrases:             fused.KeyPhrases,
		},
		HiddenInsights:       fused.HiddenInsights,
		IndustryIntelligence: fused.IndustryContext,
		CompanyIntelligence:  fused.CompanyIntelligence,
		StrategicAdvice:      fused.StrategicAdvice,
		PostingQuality:       postingScore,
		AnalysisQuality:      fused.Quality,
		ApplicationEmail:     email,
	}
}

func normalizeSkills(in []analysis.Skill) []analysis.Skill {
	out := make([]analysis.Skill, len(in))
	for i, s := range in {
		s.Importance = NormalizeImportance(s.Importance)
		out[i] = s
	}
	return out
}

// failureResult returns the all-fields-present-but-empty shape promised on
// analysis failure, so callers can destructure without nil checks.
func failureResult(msg string) analysis.Result {
	res := buildResult(fuse(nil, nil), "", 0)
	res.Success = false
	res.Error = msg
	res.StrategicAdvice = analysis.StrategicAdvice{
		RiskAssessment:      "medium",
		NegotiationLeverage: []string{},
		InterviewQuestions:  []string{},
		ResumeStrategy:      []string{},
	}
	return res
}

package analysis

import (
	"encoding/json"
	"strings"
)

// Quality tier labels recorded per extraction side.
const (
	TierHigh     = "high"
	TierFallback = "fallback"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Importance levels the normalizer maps free-text model output onto.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Input is one job-analysis request. Content is either the pasted posting text
// or a URL, depending on IsURL. The caller validates URL well-formedness.
type Input struct {
	Content string
	IsURL   bool
	UserID  string
}

// Posting is the acquired plain-text job posting body.
type Posting struct {
	Description      string
	ApplicationEmail string
}

type JobDetails struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Salary           string   `json:"salary"`
	JobType          string   `json:"job_type"`
	Schedule         string   `json:"schedule"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
}

type Skill struct {
	Skill      string `json:"skill"`
	Frequency  int    `json:"frequency"`
	Importance string `json:"importance"`
	Category   string `json:"category"`
	Context    string `json:"context"`
}

type Technology struct {
	Technology       string `json:"technology"`
	Frequency        int    `json:"frequency"`
	Category         string `json:"category"`
	ProficiencyLevel string `json:"proficiency_level"`
}

type ExperienceRequirements struct {
	YearsRequired      int      `json:"years_required"`
	YearsPreferred     int      `json:"years_preferred"`
	Level              string   `json:"level"`
	SpecificExperience []string `json:"specific_experience"`
}

// EducationRequirement tolerates both shapes the extraction model produces:
// a bare string or an object with degree/field/required keys. The prompt asks
// for strings, but model output shape is a hint, not a guarantee.
type EducationRequirement struct {
	Degree   string `json:"degree"`
	Field    string `json:"field"`
	Required bool   `json:"required"`

	text string
}

func (e *EducationRequirement) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		e.text = strings.TrimSpace(s)
		return nil
	}
	type plain EducationRequirement
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = EducationRequirement(p)
	return nil
}

// Display flattens the requirement into a single display string.
func (e EducationRequirement) Display() string {
	if strings.TrimSpace(e.text) != "" {
		return e.text
	}
	parts := make([]string, 0, 2)
	if strings.TrimSpace(e.Degree) != "" {
		parts = append(parts, strings.TrimSpace(e.Degree))
	}
	if strings.TrimSpace(e.Field) != "" {
		parts = append(parts, "in "+strings.TrimSpace(e.Field))
	}
	out := strings.Join(parts, " ")
	if out != "" && !e.Required {
		out += " (preferred)"
	}
	return out
}

// StructuredExtraction is the parse target for the structured-extraction model.
type StructuredExtraction struct {
	JobDetails             JobDetails             `json:"job_details"`
	HardSkills             []Skill                `json:"hard_skills"`
	SoftSkills             []Skill                `json:"soft_skills"`
	Technologies           []Technology           `json:"technologies"`
	Certifications         []string               `json:"certifications"`
	ExperienceRequirements ExperienceRequirements `json:"experience_requirements"`
	EducationRequirements  []EducationRequirement `json:"education_requirements"`
	ActionWords            []string               `json:"action_words"`
	IndustryTerms          []string               `json:"industry_terms"`
	KeyPhrases             []string               `json:"key_phrases"`
}

type HiddenInsights struct {
	RedFlags          []string `json:"red_flags"`
	PositiveSignals   []string `json:"positive_signals"`
	CompensationClues []string `json:"compensation_clues"`
	CultureInsights   []string `json:"culture_insights"`
}

type StrategicAdvice struct {
	ShouldApply         string   `json:"should_apply"`
	Reasoning           string   `json:"reasoning"`
	RiskAssessment      string   `json:"risk_assessment"`
	NegotiationLeverage []string `json:"negotiation_leverage"`
	InterviewQuestions  []string `json:"interview_questions"`
	ResumeStrategy      []string `json:"resume_strategy"`
}

type IndustryContext struct {
	Sector           string   `json:"sector"`
	CurrentTrends    []string `json:"current_trends"`
	SalaryBenchmark  string   `json:"salary_benchmark"`
	CompetitionLevel string   `json:"competition_level"`
	HiringUrgency    string   `json:"hiring_urgency"`
}

// InsightExtraction is the parse target for the insight model.
type InsightExtraction struct {
	HiddenInsights      HiddenInsights  `json:"hidden_insights"`
	StrategicAdvice     StrategicAdvice `json:"strategic_advice"`
	IndustryContext     IndustryContext `json:"industry_context"`
	CompanyIntelligence map[string]any  `json:"company_intelligence"`
}

// Quality describes which extraction sides succeeded.
type Quality struct {
	DataExtraction  string `json:"data_extraction"`
	InsightAnalysis string `json:"insight_analysis"`
	Confidence      string `json:"confidence"`
}

// Fused is the merged view of both extraction sides with fallback stubs
// substituted for any side that failed. Every field is non-nil.
type Fused struct {
	JobDetails             JobDetails
	HardSkills             []Skill
	SoftSkills             []Skill
	Technologies           []Technology
	Certifications         []string
	ExperienceRequirements ExperienceRequirements
	EducationRequirements  []EducationRequirement
	ActionWords            []string
	IndustryTerms          []string
	KeyPhrases             []string

	HiddenInsights      HiddenInsights
	StrategicAdvice     StrategicAdvice
	IndustryContext     IndustryContext
	CompanyIntelligence map[string]any

	Quality Quality
}

// Keywords is the normalized ATS-keyword block of the final result.
type Keywords struct {
	ATSScore               int                    `json:"ats_score"`
	HardSkills             []Skill                `json:"hard_skills"`
	SoftSkills             []Skill                `json:"soft_skills"`
	Technologies           []Technology           `json:"technologies"`
	Certifications         []string               `json:"certifications"`
	ExperienceRequirements ExperienceRequirements `json:"experience_requirements"`
	EducationRequirements  []string               `json:"education_requirements"`
	ActionWords            []string               `json:"action_words"`
	IndustryTerms          []string               `json:"industry_terms"`
	KeyPhrases             []string               `json:"key_phrases"`
}

// Result is the final analysis returned to callers. Constructed once per
// analysis and immutable after construction; every structural field is
// populated even on failure so callers can destructure safely.
type Result struct {
	Success              bool            `json:"success"`
	JobDetails           JobDetails      `json:"job_details"`
	ATSKeywords          Keywords        `json:"ats_keywords"`
	HiddenInsights       HiddenInsights  `json:"hidden_insights"`
	IndustryIntelligence IndustryContext `json:"industry_intelligence"`
	CompanyIntelligence  map[string]any  `json:"company_intelligence"`
	StrategicAdvice      StrategicAdvice `json:"strategic_advice"`
	PostingQuality       int             `json:"posting_quality"`
	AnalysisQuality      Quality         `json:"analysis_quality"`
	ApplicationEmail     string          `json:"application_email,omitempty"`
	Error                string          `json:"error,omitempty"`
}

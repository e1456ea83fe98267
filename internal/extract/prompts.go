package extract

import "fmt"

// structuredPrompt instructs the extraction model to inventory every skill,
// requirement and technology in the posting. Extraction, not creativity:
// the caller sends it at near-zero temperature with a generous token budget.
func structuredPrompt(posting string) string {
	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) analyst.
Extract EVERY skill, requirement, technology and qualification from the job posting below.
Categorize each item accurately. Be exhaustive: a missed keyword costs the candidate an interview.

Return ONLY a JSON object with exactly this structure, no prose, no markdown:
{
  "job_details": {
    "title": "", "company": "", "location": "", "salary": "", "job_type": "", "schedule": "",
    "requirements": [], "responsibilities": [], "benefits": []
  },
  "hard_skills": [{"skill": "", "frequency": 1, "importance": "required|preferred", "category": "", "context": ""}],
  "soft_skills": [{"skill": "", "frequency": 1, "importance": "required|preferred", "category": "", "context": ""}],
  "technologies": [{"technology": "", "frequency": 1, "category": "", "proficiency_level": ""}],
  "certifications": [],
  "experience_requirements": {"years_required": 0, "years_preferred": 0, "level": "", "specific_experience": []},
  "education_requirements": [],
  "action_words": [],
  "industry_terms": [],
  "key_phrases": []
}

education_requirements entries must be plain strings.
frequency is how many times the item appears in the posting.

JOB POSTING:
%s`, posting)
}

// insightPrompt instructs the second model to read between the lines. Field
// values are capped short and lists capped at 3-5 items to bound output
// tokens and latency; this pass is judged on insight, not completeness.
func insightPrompt(posting string) string {
	return fmt.Sprintf(`You are a veteran career strategist. Analyze the job posting below for what it
does NOT say out loud: red flags, hidden signals, leverage and strategy.

Rules:
- every string value under 100 characters
- every list 3 to 5 items, fewer if the posting gives you less
- return ONLY a JSON object, no prose, no markdown

{
  "hidden_insights": {
    "red_flags": [], "positive_signals": [], "compensation_clues": [], "culture_insights": []
  },
  "strategic_advice": {
    "should_apply": "yes|no|maybe", "reasoning": "", "risk_assessment": "low|medium|high",
    "negotiation_leverage": [], "interview_questions": [], "resume_strategy": []
  },
  "industry_context": {
    "sector": "", "current_trends": [], "salary_benchmark": "",
    "competition_level": "low|medium|high", "hiring_urgency": "low|medium|high|unclear"
  },
  "company_intelligence": {}
}

JOB POSTING:
%s`, posting)
}

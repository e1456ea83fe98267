// Package score computes the deterministic posting-quality score. The score is
// a pure function of the raw posting text so it stays reproducible and
// auditable even when every AI extraction tier fails.
package score

import (
	"regexp"
	"strings"
)

const (
	// Floor and ceiling of the final score. The floor guarantees no posting
	// is scored as worthless; some signal always exists merely from having text.
	MinScore = 25
	MaxScore = 100

	clarityCap     = 25
	specificityCap = 30
	keywordCap     = 25
	contentCap     = 20
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	wordSplitRe     = regexp.MustCompile(`\s+`)

	bulletRe   = regexp.MustCompile(`[•\-*]\s`)
	numberedRe = regexp.MustCompile(`(?m)^\s*\d+\.\s`)

	yearsRe      = regexp.MustCompile(`(?i)\d+\s*\+?\s*(?:years?|yrs?)`)
	salaryRe     = regexp.MustCompile(`(?i)\$\s?\d|\b\d+k\b|salary|compensation|\b\d{2,3},\d{3}\b`)
	locationRe   = regexp.MustCompile(`(?i)\bremote\b|\bhybrid\b|on-?site\b|\b\d{5}\b|\b[A-Z][a-z]+,\s?[A-Z]{2}\b`)
	employmentRe = regexp.MustCompile(`(?i)full[- ]?time|part[- ]?time|\bcontract\b|\btemporary\b|\bpermanent\b`)

	toolsRe = regexp.MustCompile(`(?i)\b(?:Excel|Word|Outlook|PowerPoint|Salesforce|SAP|Oracle|Jira|Slack|Zoom|Teams|SharePoint|QuickBooks|Tableau|Power BI|Python|JavaScript|Java|SQL|AWS|Azure|Google|Microsoft|Adobe|AutoCAD|CargoWise|Docker|Kubernetes)\b`)
)

var sectionKeywords = []string{
	"requirement", "qualification", "responsibilit", "skill", "experience",
	"education", "benefit", "about", "duties", "summary",
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "degree", "diploma", "certificate",
	"associate", "college",
}

var skillIndicators = []string{
	"experience", "knowledge", "proficient", "skilled", "ability", "capable",
	"familiar", "understanding", "expertise", "competent", "background",
}

var actionVerbs = []string{
	"manage", "lead", "develop", "create", "implement", "coordinate",
	"analyze", "design", "build", "maintain", "support", "ensure",
	"prepare", "review", "collaborate",
}

var companyPhrases = []string{
	"about us", "about the company", "who we are", "our company",
	"our team", "our mission", "we are",
}

var benefitSignals = []string{
	"benefit", "insurance", "401k", "paid time off", "pto", "vacation",
	"health", "dental", "vision", "retirement",
}

var applySignals = []string{
	"apply", "submit", "send", "resume", "cv", "application", "email",
	"click", "portal",
}

// Score returns the posting-quality score for text, always within
// [MinScore, MaxScore]. Same text in, same integer out; never panics,
// including on the empty string.
func Score(text string) int {
	lower := strings.ToLower(text)

	sum := clarityScore(text, lower) +
		specificityScore(text, lower) +
		keywordScore(text, lower) +
		contentScore(text, lower)

	return clamp(sum, MinScore, MaxScore)
}

func clarityScore(text, lower string) int {
	pts := 0

	if avg, ok := avgWordsPerSentence(text); ok {
		switch {
		case avg >= 10 && avg <= 30:
			pts += 10
		case avg > 5 && avg < 40:
			pts += 5
		}
	}

	sections := 0
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			sections++
		}
	}
	pts += minInt(sections*2, 10)

	if bulletRe.MatchString(text) || numberedRe.MatchString(text) {
		pts += 5
	}

	return minInt(pts, clarityCap)
}

func specificityScore(text, lower string) int {
	pts := 0

	if yearsRe.MatchString(text) {
		pts += 8
	}
	if containsAny(lower, degreeKeywords) {
		pts += 5
	}
	if salaryRe.MatchString(text) {
		pts += 7
	}
	if locationRe.MatchString(text) {
		pts += 5
	}
	if employmentRe.MatchString(text) {
		pts += 5
	}

	return minInt(pts, specificityCap)
}

func keywordScore(text, lower string) int {
	pts := 0

	indicators := 0
	for _, kw := range skillIndicators {
		if strings.Contains(lower, kw) {
			indicators++
		}
	}
	pts += minInt(indicators*2, 10)

	pts += minInt(distinctToolCount(text)*2, 10)

	verbs := 0
	for _, v := range actionVerbs {
		if strings.Contains(lower, v) {
			verbs++
		}
	}
	pts += minInt(verbs, 5)

	return minInt(pts, keywordCap)
}

func contentScore(text, lower string) int {
	pts := 0

	words := wordCount(text)
	switch {
	case words >= 200 && words <= 2000:
		pts += 8
	case words >= 100 && words <= 3000:
		pts += 4
	}

	if containsAny(lower, companyPhrases) {
		pts += 4
	}
	if containsAny(lower, benefitSignals) {
		pts += 4
	}
	if containsAny(lower, applySignals) {
		pts += 4
	}

	return minInt(pts, contentCap)
}

func distinctToolCount(text string) int {
	seen := map[string]struct{}{}
	for _, m := range toolsRe.FindAllString(text, -1) {
		seen[strings.ToLower(m)] = struct{}{}
	}
	return len(seen)
}

func avgWordsPerSentence(text string) (float64, bool) {
	sentences := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		return 0, false
	}
	return float64(wordCount(text)) / float64(sentences), true
}

func wordCount(text string) int {
	n := 0
	for _, w := range wordSplitRe.Split(text, -1) {
		if strings.TrimSpace(w) != "" {
			n++
		}
	}
	return n
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

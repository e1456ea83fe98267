package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeFenceRe     = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// decodeModelJSON extracts the first top-level JSON object from a model
// response and unmarshals it into out. Models wrap output in markdown code
// fences and prepend prose despite instructions, so the payload is located by
// a greedy brace match rather than trusting the response as-is. With repair
// set, trailing commas before closing braces/brackets are removed first;
// creative-text models produce those far more often than extraction models.
func decodeModelJSON(raw string, repair bool, out any) error {
	s := strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in model response")
	}
	s = s[start : end+1]

	if repair {
		s = trailingCommaRe.ReplaceAllString(s, "$1")
	}

	if err := json.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("unmarshal model response: %w", err)
	}
	return nil
}

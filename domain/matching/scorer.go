package matching

import (
	"math"
	"strings"

	"gradflow/domain"
)

type MatchResult struct {
	Score         int               `json:"score"`
	MatchedSkills domain.StringList `json:"matchedSkills"`
	MissingSkills domain.StringList `json:"missingSkills"`
	MatchLevel    string            `json:"matchLevel"`
}

const (
	bestFitThreshold = 70
	goodFitThreshold = 40
)

// Score rates a student's skill set against a project's required skills.
// Matching is case-insensitive on trimmed tokens. The result lists matched
// and missing skills in required-skill order, normalized to lower case.
func Score(studentSkills, requiredSkills []string) MatchResult {
	required := normalize(requiredSkills)
	if len(required) == 0 {
		return MatchResult{Score: 0, MatchedSkills: domain.StringList{}, MissingSkills: domain.StringList{},
			MatchLevel: domain.MatchLevelNoRequirements}
	}

	owned := map[string]bool{}
	for _, s := range normalize(studentSkills) {
		owned[s] = true
	}

	matched := domain.StringList{}
	missing := domain.StringList{}
	for _, skill := range required {
		if owned[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	score := int(math.Round(100 * float64(len(matched)) / float64(len(required))))
	return MatchResult{Score: score, MatchedSkills: matched, MissingSkills: missing, MatchLevel: levelOf(score)}
}

func levelOf(score int) string {
	if score >= bestFitThreshold {
		return domain.MatchLevelBestFit
	}
	if score >= goodFitThreshold {
		return domain.MatchLevelGoodFit
	}
	return domain.MatchLevelNeedsTraining
}

// normalize trims, lowers and dedupes, keeping first-seen order.
func normalize(skills []string) []string {
	seen := map[string]bool{}
	r := []string{}
	for _, s := range skills {
		token := strings.ToLower(strings.TrimSpace(s))
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		r = append(r, token)
	}
	return r
}

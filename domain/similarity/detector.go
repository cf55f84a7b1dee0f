package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fundwit/go-commons/types"
)

type CorpusEntry struct {
	ProjectID types.ID `json:"projectId"`
	Title     string   `json:"title"`
	Abstract  string   `json:"-"`
}

type Match struct {
	ProjectID  types.ID `json:"projectId"`
	Title      string   `json:"title"`
	Similarity int      `json:"similarity"`
}

type DuplicateReport struct {
	IsDuplicate bool    `json:"isDuplicate"`
	Matches     []Match `json:"matches"`

	// highest similarity seen across the whole corpus, even below threshold
	HighestSimilarity int `json:"highestSimilarity"`
}

// Similarity computes the Jaccard index of the token sets of two texts,
// as a percentage. It is symmetric, and 0 when the union is empty.
func Similarity(textA, textB string) int {
	a := tokenSet(textA)
	b := tokenSet(textB)

	union := map[string]bool{}
	intersection := 0
	for t := range a {
		union[t] = true
	}
	for t := range b {
		if a[t] {
			intersection++
		}
		union[t] = true
	}
	if len(union) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(intersection) / float64(len(union))))
}

// CheckDuplicate rates an abstract against every corpus entry. Advisory only,
// the caller decides whether to block anything.
func CheckDuplicate(abstract string, corpus []CorpusEntry, threshold int) DuplicateReport {
	report := DuplicateReport{Matches: []Match{}}
	for _, entry := range corpus {
		score := Similarity(abstract, entry.Abstract)
		if score > report.HighestSimilarity {
			report.HighestSimilarity = score
		}
		if score >= threshold {
			report.Matches = append(report.Matches, Match{ProjectID: entry.ProjectID, Title: entry.Title, Similarity: score})
		}
	}
	sort.SliceStable(report.Matches, func(i, j int) bool {
		return report.Matches[i].Similarity > report.Matches[j].Similarity
	})
	report.IsDuplicate = len(report.Matches) > 0
	return report
}

// tokenSet lowers the text, strips punctuation to whitespace, splits, and
// drops tokens of length <= 2.
func tokenSet(text string) map[string]bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	set := map[string]bool{}
	for _, token := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		set[token] = true
	}
	return set
}

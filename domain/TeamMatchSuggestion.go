package domain

import (
	"github.com/fundwit/go-commons/types"
)

const (
	MatchLevelBestFit        = "best_fit"
	MatchLevelGoodFit        = "good_fit"
	MatchLevelNeedsTraining  = "needs_training"
	MatchLevelNoRequirements = "no_requirements"
)

type TeamMatchSuggestion struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	ProjectID  types.ID `json:"projectId"`
	Generation int64    `json:"-"`

	StudentID  types.ID `json:"studentId"`
	MatchScore int      `json:"matchScore"`

	MatchedSkills StringList `json:"matchedSkills" sql:"type:TEXT"`
	MissingSkills StringList `json:"missingSkills" sql:"type:TEXT"`
	MatchLevel    string     `json:"matchLevel"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

// MatchSnapshot points at the suggestion generation readers should see.
// Suggestions are written under a fresh generation first, then the pointer
// is flipped, so a concurrent reader never observes an empty interval.
type MatchSnapshot struct {
	ProjectID  types.ID `json:"projectId" gorm:"primary_key" sql:"type:BIGINT UNSIGNED NOT NULL"`
	Generation int64    `json:"generation"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type MatchQuery struct {
	MinScore int `form:"minScore" binding:"omitempty,gte=0,lte=100"`
	Limit    int `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

type TeamMatchResult struct {
	Suggestions []TeamMatchSuggestion            `json:"suggestions"`
	Grouped     map[string][]TeamMatchSuggestion `json:"grouped"`
}

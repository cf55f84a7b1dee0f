package team

import (
	"sort"

	"gradflow/account"
	"gradflow/domain"
	"gradflow/domain/matching"
	"gradflow/idgen"
	"gradflow/persistence"
	"gradflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const DefaultMatchLimit = 20

var (
	FindMatchesFunc        = FindMatches
	QueryCachedMatchesFunc = QueryCachedMatches
)

// FindMatches scores every student outside the team against the project's
// required skills and returns the ranked result. The persisted suggestion set
// is a cache: the truncated ranking is written under a fresh snapshot
// generation, the pointer is flipped and older generations are removed, so a
// concurrent reader never observes an empty interval.
func FindMatches(projectId types.ID, query *domain.MatchQuery, sec *session.Session) (*domain.TeamMatchResult, error) {
	limit := query.Limit
	if limit == 0 {
		limit = DefaultMatchLimit
	}

	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	p := domain.Project{}
	if err := db.Where(&domain.Project{ID: projectId}).First(&p).Error; err != nil {
		return nil, err
	}

	// no requirements, nothing to rank and nothing to cache
	if len(p.RequiredSkills) == 0 {
		return &domain.TeamMatchResult{Suggestions: []domain.TeamMatchSuggestion{},
			Grouped: map[string][]domain.TeamMatchSuggestion{}}, nil
	}

	students, err := account.QueryStudentsFunc(db)
	if err != nil {
		return nil, err
	}

	now := types.CurrentTimestamp()
	scored := []domain.TeamMatchSuggestion{}
	for _, student := range students {
		if p.StudentIDs.Contains(student.ID) {
			continue
		}
		r := matching.Score(student.Skills, p.RequiredSkills)
		if r.Score < query.MinScore {
			continue
		}
		scored = append(scored, domain.TeamMatchSuggestion{
			ProjectID: p.ID, StudentID: student.ID,
			MatchScore: r.Score, MatchedSkills: r.MatchedSkills, MissingSkills: r.MissingSkills,
			MatchLevel: r.MatchLevel, CreateTime: now,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	if err := replaceSnapshot(db, p.ID, scored); err != nil {
		return nil, err
	}

	grouped := map[string][]domain.TeamMatchSuggestion{}
	for _, s := range scored {
		grouped[s.MatchLevel] = append(grouped[s.MatchLevel], s)
	}
	return &domain.TeamMatchResult{Suggestions: scored, Grouped: grouped}, nil
}

// replaceSnapshot writes the truncated ranking under the next generation,
// flips the snapshot pointer and garbage-collects older generations.
func replaceSnapshot(db *gorm.DB, projectId types.ID, suggestions []domain.TeamMatchSuggestion) error {
	return db.Transaction(func(tx *gorm.DB) error {
		now := types.CurrentTimestamp()
		snapshot := domain.MatchSnapshot{}
		err := tx.Where(&domain.MatchSnapshot{ProjectID: projectId}).First(&snapshot).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		nextGeneration := snapshot.Generation + 1

		for i := range suggestions {
			suggestions[i].ID = idgen.NextID(idWorker)
			suggestions[i].Generation = nextGeneration
			if err := tx.Create(&suggestions[i]).Error; err != nil {
				return err
			}
		}

		if err == gorm.ErrRecordNotFound {
			if err := tx.Create(&domain.MatchSnapshot{ProjectID: projectId, Generation: nextGeneration, CreateTime: now}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&domain.MatchSnapshot{}).Where(&domain.MatchSnapshot{ProjectID: projectId}).
				Update(map[string]interface{}{"generation": nextGeneration}).Error; err != nil {
				return err
			}
		}

		return tx.Where("project_id = ? AND generation < ?", projectId, nextGeneration).
			Delete(&domain.TeamMatchSuggestion{}).Error
	})
}

// QueryCachedMatches returns the suggestion set of the current snapshot generation.
func QueryCachedMatches(projectId types.ID, sec *session.Session) (*[]domain.TeamMatchSuggestion, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	snapshot := domain.MatchSnapshot{}
	if err := db.Where(&domain.MatchSnapshot{ProjectID: projectId}).First(&snapshot).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &[]domain.TeamMatchSuggestion{}, nil
		}
		return nil, err
	}

	var suggestions []domain.TeamMatchSuggestion
	if err := db.Where(&domain.TeamMatchSuggestion{ProjectID: projectId, Generation: snapshot.Generation}).
		Order("match_score DESC").Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return &suggestions, nil
}

package similarity

import (
	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/persistence"
	"gradflow/session"
)

const (
	DefaultThreshold  = 60
	MinAbstractLength = 50
)

type DuplicateChecking struct {
	Abstract  string `json:"abstract" binding:"required"`
	Threshold int    `json:"threshold" binding:"omitempty,gte=1,lte=100"`

	// excluded from the corpus, set when re-checking an edited draft
	ProjectID int64 `json:"projectId,string,omitempty"`
}

var CheckProjectAbstractFunc = CheckProjectAbstract

// CheckProjectAbstract rates a candidate abstract against every non-archived
// project's abstract. Advisory only, it never blocks a submission by itself.
func CheckProjectAbstract(c *DuplicateChecking, sec *session.Session) (*DuplicateReport, error) {
	if !sec.IsStudent() {
		return nil, bizerror.ErrForbidden
	}
	if len(c.Abstract) < MinAbstractLength {
		return nil, bizerror.AbstractTooShort(MinAbstractLength)
	}
	threshold := c.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	var projects []domain.Project
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	q := db.Model(&domain.Project{}).Where("status != ?", domain.ProjectStatusArchived)
	if c.ProjectID != 0 {
		q = q.Where("id != ?", c.ProjectID)
	}
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}

	corpus := make([]CorpusEntry, 0, len(projects))
	for _, p := range projects {
		if p.Abstract == "" {
			continue
		}
		corpus = append(corpus, CorpusEntry{ProjectID: p.ID, Title: p.Title, Abstract: p.Abstract})
	}

	report := CheckDuplicate(c.Abstract, corpus, threshold)
	return &report, nil
}

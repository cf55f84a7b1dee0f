package milestone

import (
	"gradflow/domain"
	"gradflow/idgen"
	"gradflow/persistence"
	"gradflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	idWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	QueryMilestonesFunc = QueryMilestones
)

// EnsureMilestone creates or refreshes the record keyed (projectId, phase).
// The tracker has no transition table of its own, callers drive it inside
// their own transactions so project status and milestone move together.
func EnsureMilestone(tx *gorm.DB, projectID types.ID, phase, status string, reviewerID types.ID) (*domain.ProjectMilestone, error) {
	now := types.CurrentTimestamp()
	record := domain.ProjectMilestone{}
	err := tx.Where(&domain.ProjectMilestone{ProjectID: projectID, Phase: phase}).First(&record).Error
	if err == gorm.ErrRecordNotFound {
		record = domain.ProjectMilestone{
			ID: idgen.NextID(idWorker), ProjectID: projectID, Phase: phase,
			Status: status, ReviewerID: reviewerID, CreateTime: now, UpdateTime: now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return nil, err
		}
		return &record, nil
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&domain.ProjectMilestone{}).Where(&domain.ProjectMilestone{ID: record.ID}).
		Update(map[string]interface{}{"status": status, "reviewer_id": reviewerID, "update_time": now}).Error; err != nil {
		return nil, err
	}
	record.Status = status
	record.ReviewerID = reviewerID
	record.UpdateTime = now
	return &record, nil
}

func CompleteMilestone(tx *gorm.DB, projectID types.ID, phase string, reviewerID types.ID, feedback string) error {
	return closeMilestone(tx, projectID, phase, domain.MilestoneStatusCompleted, reviewerID, feedback)
}

func RejectMilestone(tx *gorm.DB, projectID types.ID, phase string, reviewerID types.ID, feedback string) error {
	return closeMilestone(tx, projectID, phase, domain.MilestoneStatusRejected, reviewerID, feedback)
}

func closeMilestone(tx *gorm.DB, projectID types.ID, phase, status string, reviewerID types.ID, feedback string) error {
	now := types.CurrentTimestamp()
	if _, err := EnsureMilestone(tx, projectID, phase, status, reviewerID); err != nil {
		return err
	}
	updates := map[string]interface{}{"feedback": feedback, "update_time": now}
	if status == domain.MilestoneStatusCompleted {
		updates["completed_at"] = now
	}
	return tx.Model(&domain.ProjectMilestone{}).
		Where(&domain.ProjectMilestone{ProjectID: projectID, Phase: phase}).
		Update(updates).Error
}

func QueryMilestones(query *domain.MilestoneQuery, sec *session.Session) (*[]domain.ProjectMilestone, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	var records []domain.ProjectMilestone
	if err := db.Where(&domain.ProjectMilestone{ProjectID: query.ProjectID}).
		Order("create_time ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return &records, nil
}

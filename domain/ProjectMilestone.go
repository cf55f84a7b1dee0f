package domain

import (
	"github.com/fundwit/go-commons/types"
)

const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
	MilestoneStatusRejected   = "rejected"
)

// MilestonePhaseProposal is the phase recorded when a proposal enters review.
const MilestonePhaseProposal = "proposal"

type ProjectMilestone struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	ProjectID types.ID `json:"projectId" gorm:"unique_index:milestone_phase_unique" sql:"type:BIGINT UNSIGNED NOT NULL"`
	Phase     string   `json:"phase" gorm:"unique_index:milestone_phase_unique"`

	Status     string   `json:"status"`
	ReviewerID types.ID `json:"reviewerId"`
	Feedback   string   `json:"feedback" sql:"type:TEXT"`

	CompletedAt types.Timestamp `json:"completedAt" sql:"type:DATETIME(6)"`
	CreateTime  types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime  types.Timestamp `json:"updateTime" sql:"type:DATETIME(6)"`
}

type MilestoneQuery struct {
	ProjectID types.ID `form:"projectId" binding:"required"`
}

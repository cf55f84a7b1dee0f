package domain

import (
	"github.com/fundwit/go-commons/types"
)

const (
	RoleStudent    = "student"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

const (
	ProjectStatusDraft            = "draft"
	ProjectStatusPendingProposal  = "pending_proposal"
	ProjectStatusSupervisorReview = "supervisor_review"
	ProjectStatusChangesRequested = "changes_requested"
	ProjectStatusApproved         = "approved"
	ProjectStatusMidDefense       = "mid_defense"
	ProjectStatusFinalSubmission  = "final_submission"
	ProjectStatusCompleted        = "completed"
	ProjectStatusArchived         = "archived"
)

type Project struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Title    string `json:"title"`
	Abstract string `json:"abstract" sql:"type:TEXT"`

	Status   string   `json:"status"`
	AuthorID types.ID `json:"authorId"`

	// zero until a supervisor request is approved
	SupervisorID types.ID `json:"supervisorId"`

	StudentIDs     IDList     `json:"studentIds" sql:"type:TEXT"`
	RequiredSkills StringList `json:"requiredSkills" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type ProjectCreating struct {
	Title          string     `json:"title" binding:"required,lte=128"`
	Abstract       string     `json:"abstract" binding:"omitempty,lte=4000"`
	RequiredSkills StringList `json:"requiredSkills"`
}

type ProjectQuery struct {
	Status   string    `form:"status"`
	AuthorID *types.ID `form:"authorId"`
}

type ProposalReview struct {
	Action   string `json:"action" binding:"required,oneof=approve request_changes reject"`
	Feedback string `json:"feedback" binding:"omitempty,lte=2000"`
}

type PhaseAdvancing struct {
	Target string `json:"target" binding:"required"`
}

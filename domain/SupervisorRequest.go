package domain

import (
	"github.com/fundwit/go-commons/types"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

const (
	RequestActionApprove = "approve"
	RequestActionReject  = "reject"
)

type SupervisorRequest struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	StudentID    types.ID `json:"studentId"`
	SupervisorID types.ID `json:"supervisorId"`
	// zero when the student asks for supervision without a concrete project
	ProjectID types.ID `json:"projectId"`

	Message string `json:"message" sql:"type:TEXT"`

	Status             string `json:"status"`
	SupervisorResponse string `json:"supervisorResponse" sql:"type:TEXT"`

	CreateTime  types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	RespondedAt types.Timestamp `json:"respondedAt" sql:"type:DATETIME(6)"`
}

type SupervisorRequestCreating struct {
	SupervisorID types.ID `json:"supervisorId" binding:"required"`
	ProjectID    types.ID `json:"projectId"`
	Message      string   `json:"message" binding:"omitempty,lte=2000"`
}

type SupervisorRequestResponding struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Message string `json:"message" binding:"omitempty,lte=2000"`
}

type SupervisorRequestQuery struct {
	StudentID    *types.ID `form:"studentId"`
	SupervisorID *types.ID `form:"supervisorId"`
	Status       string    `form:"status"`
}

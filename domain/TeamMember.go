package domain

import (
	"github.com/fundwit/go-commons/types"
)

const (
	TeamRoleLeader = "leader"
	TeamRoleMember = "member"
)

const (
	MemberStatusInvited = "invited"
	MemberStatusActive  = "active"
	MemberStatusLeft    = "left"
)

const (
	InvitationActionAccept = "accept"
	InvitationActionReject = "reject"
)

type TeamMember struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	ProjectID types.ID `json:"projectId"`
	UserID    types.ID `json:"userId"`

	Role   string `json:"role"`
	Status string `json:"status"`

	InviteMessage string `json:"inviteMessage" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	JoinedAt   types.Timestamp `json:"joinedAt" sql:"type:DATETIME(6)"`
}

type TeamMemberDetail struct {
	TeamMember

	UserName string `json:"userName"`
}

type MemberInviting struct {
	UserID  types.ID `json:"userId" binding:"required"`
	Message string   `json:"message" binding:"omitempty,lte=2000"`
}

type InvitationResponding struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

type TeamMemberQuery struct {
	ProjectID types.ID `form:"projectId" binding:"required"`
	Status    string   `form:"status"`
}

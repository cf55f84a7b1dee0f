package account

import (
	"gradflow/domain"

	"github.com/fundwit/go-commons/types"
)

type User struct {
	ID     types.ID `json:"id" gorm:"primary_key"`
	Name   string   `json:"name" gorm:"unique_index:name_unique"`
	Secret string   `json:"-"`

	Nickname string `json:"nickname"`

	// student, supervisor or admin
	Role string `json:"role"`

	Skills domain.StringList `json:"skills" sql:"type:TEXT"`

	// projects this user supervises, maintained on request approval
	SupervisedProjectIDs domain.IDList `json:"supervisedProjectIds" sql:"type:TEXT"`
}

type UserInfo struct {
	ID       types.ID          `json:"id"`
	Name     string            `json:"name"`
	Nickname string            `json:"nickname"`
	Role     string            `json:"role"`
	Skills   domain.StringList `json:"skills"`
}

type UserCreation struct {
	Name     string            `json:"name" binding:"required,lte=32"`
	Secret   string            `json:"secret" binding:"required,gte=6,lte=32"`
	Nickname string            `json:"nickname" binding:"omitempty,gte=1,lte=32"`
	Role     string            `json:"role" binding:"required,oneof=student supervisor admin"`
	Skills   domain.StringList `json:"skills"`
}

type UserUpdation struct {
	Nickname string            `json:"nickname" binding:"required,lte=32"`
	Skills   domain.StringList `json:"skills"`
}

type BasicAuthUpdating struct {
	OriginalSecret string `json:"originalSecret"`
	NewSecret      string `json:"newSecret" binding:"required,gte=6,lte=32"`
}

func (u User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Name
}

func (u UserInfo) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Name
}

package session

import (
	"context"
	"time"

	"gradflow/authority"
	"gradflow/domain"

	"github.com/fundwit/go-commons/types"
)

type Identity struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`
	Role     string   `json:"role"`
}

type Session struct {
	Token    string                `json:"token"`
	Identity Identity              `json:"identity"`
	Perms    authority.Permissions `json:"perms"`

	SigningTime time.Time `json:"-"`

	Context context.Context `json:"-"`
}

func (s *Session) Clone() Session {
	c := *s
	c.Perms = append(authority.Permissions{}, s.Perms...)
	return c
}

func (s *Session) IsAdmin() bool {
	return s.Perms.HasRole(domain.RoleAdmin)
}

func (s *Session) IsStudent() bool {
	return s.Perms.HasRole(domain.RoleStudent)
}

func (s *Session) IsSupervisor() bool {
	return s.Perms.HasRole(domain.RoleSupervisor)
}
